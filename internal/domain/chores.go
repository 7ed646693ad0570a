package domain

import (
	"time"

	"github.com/google/uuid"
)

// FamilyMember Model
type FamilyMember struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`     // Primary key
	UserID        uuid.UUID `gorm:"type:char(36);index;not null"` // Owner (household account)
	Name          string    `gorm:"not null"`                     // Member display name
	PointsBalance int       `gorm:"not null;default:0"`           // Earned minus redeemed points
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Chore Model
type Chore struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`     // Primary key
	UserID      uuid.UUID `gorm:"type:char(36);index;not null"` // Owner
	Name        string    `gorm:"not null"`                     // Chore name
	Description string    // What needs doing
	Points      int       `gorm:"not null;default:0"`           // Points awarded on completion
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assignment Model
type Assignment struct {
	ID             uuid.UUID  `gorm:"type:char(36);primaryKey"`     // Primary key
	ChoreID        uuid.UUID  `gorm:"type:char(36);index;not null"` // Foreign key to Chore
	FamilyMemberID uuid.UUID  `gorm:"type:char(36);index;not null"` // Foreign key to FamilyMember
	DueDate        time.Time  `gorm:"not null"`                     // When the chore is due
	IsCompleted    bool       `gorm:"not null;default:false"`       // Terminal completion flag
	CompletedAt    *time.Time // Stamped by Complete
	CreatedAt      time.Time
}

// Reward Model
type Reward struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey"`     // Primary key
	UserID       uuid.UUID  `gorm:"type:char(36);index;not null"` // Owner
	Name         string     `gorm:"not null"`                     // Reward name
	PointsCost   int        `gorm:"not null"`                     // Points needed to redeem
	IsRedeemed   bool       `gorm:"not null;default:false"`       // Terminal redemption flag
	RedeemedAt   *time.Time // Stamped by Redeem
	RedeemedByID *uuid.UUID `gorm:"type:char(36)"`                // Member who redeemed it
	CreatedAt    time.Time
}

// CreditPoints adds earned points to the balance.
func (m *FamilyMember) CreditPoints(points int) {
	m.PointsBalance += points
}

// DebitPoints removes redeemed points, rejecting an overdraw.
func (m *FamilyMember) DebitPoints(points int) error {
	if points > m.PointsBalance {
		return ErrInsufficientPoints
	}
	m.PointsBalance -= points
	return nil
}

// Complete marks the assignment done and stamps the completion time once.
// Completion is terminal; a second call is rejected.
func (a *Assignment) Complete(now time.Time) error {
	if a.IsCompleted {
		return ErrInvalidTransition
	}
	a.IsCompleted = true
	a.CompletedAt = &now
	return nil
}

// IsOverdue reports whether the assignment is past due and not completed.
// Not a stored column; list filtering on it happens post-load.
func (a *Assignment) IsOverdue(now time.Time) bool {
	return !a.IsCompleted && a.DueDate.Before(now)
}

// Redeem spends a member's points on the reward. The reward must not have
// been redeemed before and the member must afford the cost; both the debit
// and the stamp happen in the caller's unit of work.
func (r *Reward) Redeem(member *FamilyMember, now time.Time) error {
	if r.IsRedeemed {
		return ErrInvalidTransition
	}
	if err := member.DebitPoints(r.PointsCost); err != nil {
		return err
	}
	r.IsRedeemed = true
	r.RedeemedAt = &now
	r.RedeemedByID = &member.ID
	return nil
}
