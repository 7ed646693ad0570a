package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaseStatus of a lease
type LeaseStatus string

// Lease lifecycle: active -> terminated, one-way.
const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

// Property Model
type Property struct {
	ID              uuid.UUID       `gorm:"type:char(36);primaryKey"`     // Primary key
	UserID          uuid.UUID       `gorm:"type:char(36);index;not null"` // Owner
	Address         string          `gorm:"not null"`                     // Street address
	City            string          // City
	PurchasePrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Acquisition price
	MonthlyExpenses decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Taxes, insurance, upkeep per month
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Lease Model
type Lease struct {
	ID          uuid.UUID       `gorm:"type:char(36);primaryKey"`     // Primary key
	PropertyID  uuid.UUID       `gorm:"type:char(36);index;not null"` // Foreign key to Property
	TenantName  string          `gorm:"not null"`                     // Tenant display name
	MonthlyRent decimal.Decimal `gorm:"type:decimal(18,2);not null"`  // Rent per month
	StartDate   time.Time       `gorm:"not null"`                     // Lease start
	EndDate     *time.Time      // Stamped by Terminate
	Status      LeaseStatus     `gorm:"type:varchar(16);not null"`    // active or terminated
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MonthlyCashFlow is the sum of the given leases' rent (active ones only)
// minus the property's monthly expenses. Computed at mapping time.
func (p *Property) MonthlyCashFlow(leases []Lease) decimal.Decimal {
	rent := decimal.Zero
	for _, l := range leases {
		if l.Status == LeaseStatusActive {
			rent = rent.Add(l.MonthlyRent)
		}
	}
	return rent.Sub(p.MonthlyExpenses)
}

// IsActive reports whether the lease is still running.
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// Terminate ends an active lease and stamps the end date. Terminated is
// terminal; a second call is rejected rather than re-stamping.
func (l *Lease) Terminate(now time.Time) error {
	if l.Status != LeaseStatusActive {
		return ErrInvalidTransition
	}
	l.Status = LeaseStatusTerminated
	l.EndDate = &now
	return nil
}
