package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal Model
type Goal struct {
	ID            uuid.UUID       `gorm:"type:char(36);primaryKey"`     // Primary key
	UserID        uuid.UUID       `gorm:"type:char(36);index;not null"` // Owner
	Name          string          `gorm:"not null"`                     // Goal name
	Description   string          // Free-form description
	TargetAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Amount to reach
	CurrentAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Running total of contributions
	TargetDate    *time.Time      // Optional deadline
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Contribution Model. Creating or deleting one adjusts the parent goal's
// running total inside the same unit of work.
type Contribution struct {
	ID            uuid.UUID       `gorm:"type:char(36);primaryKey"`     // Primary key
	GoalID        uuid.UUID       `gorm:"type:char(36);index;not null"` // Foreign key to Goal
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Contributed amount, always positive
	Note          string          // Optional note
	ContributedAt time.Time       `gorm:"not null"`                     // When the money was put aside
	CreatedAt     time.Time
}

// ApplyContribution adds a contribution amount to the running total.
func (g *Goal) ApplyContribution(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
}

// RemoveContribution subtracts a deleted contribution's amount from the
// running total, the compensating action for a child delete.
func (g *Goal) RemoveContribution(amount decimal.Decimal) {
	g.CurrentAmount = g.CurrentAmount.Sub(amount)
}

// ProgressPercent returns how far along the goal is, rounded to two places.
// A zero target reads as zero progress rather than dividing by zero.
func (g *Goal) ProgressPercent() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
}

// RemainingAmount returns what is still missing toward the target.
func (g *Goal) RemainingAmount() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}
