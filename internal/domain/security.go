package domain

import (
	"time"

	"github.com/google/uuid"
)

// PasswordStrength rating of a stored account credential
type PasswordStrength string

// Password strength ratings
const (
	StrengthWeak   PasswordStrength = "weak"
	StrengthFair   PasswordStrength = "fair"
	StrengthStrong PasswordStrength = "strong"
)

// AlertStatus of a breach alert
type AlertStatus string

// Alert lifecycle: new -> acknowledged -> resolved, or new -> dismissed.
const (
	AlertStatusNew          AlertStatus = "new"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
	AlertStatusDismissed    AlertStatus = "dismissed"
)

// AlertSeverity of a breach alert
type AlertSeverity string

// Alert severities
const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Passwords older than this are considered stale.
const passwordStaleAfterDays = 90

// Account Model
type Account struct {
	ID                  uuid.UUID        `gorm:"type:char(36);primaryKey"`     // Primary key
	UserID              uuid.UUID        `gorm:"type:char(36);index;not null"` // Owner
	ServiceName         string           `gorm:"not null"`                     // Name of the service the account belongs to
	Username            string           `gorm:"not null"`                     // Login name at the service
	PasswordLastChanged time.Time        `gorm:"not null"`                     // When the password was last rotated
	PasswordStrength    PasswordStrength `gorm:"type:varchar(16);not null"`    // weak, fair or strong
	TwoFactorEnabled    bool             `gorm:"not null;default:false"`       // 2FA flag
	Notes               string           // Free-form notes
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PasswordAgeDays returns how many whole days old the password is.
func (a *Account) PasswordAgeDays(now time.Time) int {
	return int(now.Sub(a.PasswordLastChanged).Hours() / 24)
}

// IsPasswordStale reports whether the password is past the rotation window.
// Not a stored column; list filtering on it happens post-load.
func (a *Account) IsPasswordStale(now time.Time) bool {
	return a.PasswordAgeDays(now) > passwordStaleAfterDays
}

// BreachAlert Model
type BreachAlert struct {
	ID             uuid.UUID     `gorm:"type:char(36);primaryKey"`     // Primary key
	AccountID      uuid.UUID     `gorm:"type:char(36);index;not null"` // Foreign key to Account
	Severity       AlertSeverity `gorm:"type:varchar(16);not null"`    // low, medium, high or critical
	Status         AlertStatus   `gorm:"type:varchar(16);not null"`    // Lifecycle status
	Source         string        // Where the breach was reported
	Description    string        // What happened
	DetectedAt     time.Time     `gorm:"not null"`                     // When the breach was detected
	AcknowledgedAt *time.Time    // Stamped by Acknowledge
	ResolvedAt     *time.Time    // Stamped by Resolve
	DismissedAt    *time.Time    // Stamped by Dismiss
	CreatedAt      time.Time
}

// Acknowledge moves a new alert to acknowledged. Any other starting state,
// including acknowledged itself, is rejected so the timestamp is stamped
// exactly once.
func (b *BreachAlert) Acknowledge(now time.Time) error {
	if b.Status != AlertStatusNew {
		return ErrInvalidTransition
	}
	b.Status = AlertStatusAcknowledged
	b.AcknowledgedAt = &now
	return nil
}

// Resolve moves an acknowledged alert to resolved. Resolving straight from
// new skips the required predecessor state and is rejected.
func (b *BreachAlert) Resolve(now time.Time) error {
	if b.Status != AlertStatusAcknowledged {
		return ErrInvalidTransition
	}
	b.Status = AlertStatusResolved
	b.ResolvedAt = &now
	return nil
}

// Dismiss moves a new alert to dismissed, a terminal state.
func (b *BreachAlert) Dismiss(now time.Time) error {
	if b.Status != AlertStatusNew {
		return ErrInvalidTransition
	}
	b.Status = AlertStatusDismissed
	b.DismissedAt = &now
	return nil
}
