package service

import (
	"context"
	"errors"
	"time"

	"lifehub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SecurityService executes account and breach alert commands and queries.
type SecurityService struct {
	db *gorm.DB
}

// NewSecurityService returns a service bound to the given database.
func NewSecurityService(db *gorm.DB) *SecurityService {
	return &SecurityService{db: db}
}

// AccountDTO is the flat projection of an account plus the derived
// password age.
type AccountDTO struct {
	ID                  uuid.UUID               `json:"id"`
	UserID              uuid.UUID               `json:"user_id"`
	ServiceName         string                  `json:"service_name"`
	Username            string                  `json:"username"`
	PasswordLastChanged time.Time               `json:"password_last_changed"`
	PasswordAgeDays     int                     `json:"password_age_days"`
	PasswordStrength    domain.PasswordStrength `json:"password_strength"`
	TwoFactorEnabled    bool                    `json:"two_factor_enabled"`
	Notes               string                  `json:"notes"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// BreachAlertDTO is the flat projection of a breach alert.
type BreachAlertDTO struct {
	ID             uuid.UUID            `json:"id"`
	AccountID      uuid.UUID            `json:"account_id"`
	Severity       domain.AlertSeverity `json:"severity"`
	Status         domain.AlertStatus   `json:"status"`
	Source         string               `json:"source"`
	Description    string               `json:"description"`
	DetectedAt     time.Time            `json:"detected_at"`
	AcknowledgedAt *time.Time           `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time           `json:"resolved_at,omitempty"`
	DismissedAt    *time.Time           `json:"dismissed_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// CreateAccountInput carries the fields for a new account.
type CreateAccountInput struct {
	UserID              uuid.UUID               `json:"user_id" binding:"required"`
	ServiceName         string                  `json:"service_name" binding:"required"`
	Username            string                  `json:"username" binding:"required"`
	PasswordLastChanged time.Time               `json:"password_last_changed" binding:"required"`
	PasswordStrength    domain.PasswordStrength `json:"password_strength" binding:"required,oneof=weak fair strong"`
	TwoFactorEnabled    bool                    `json:"two_factor_enabled"`
	Notes               string                  `json:"notes"`
}

// UpdateAccountInput replaces the account's mutable fields.
type UpdateAccountInput struct {
	ID                  uuid.UUID               `json:"id"` // Optional; must match the path id when present
	ServiceName         string                  `json:"service_name" binding:"required"`
	Username            string                  `json:"username" binding:"required"`
	PasswordLastChanged time.Time               `json:"password_last_changed" binding:"required"`
	PasswordStrength    domain.PasswordStrength `json:"password_strength" binding:"required,oneof=weak fair strong"`
	TwoFactorEnabled    bool                    `json:"two_factor_enabled"`
	Notes               string                  `json:"notes"`
}

// AccountFilter combines optional account list filters with logical AND.
// StaleOnly keeps accounts whose password is older than the rotation window;
// that predicate is derived, not stored, so it filters post-load over the
// owner's full account set.
type AccountFilter struct {
	UserID    uuid.UUID
	StaleOnly bool
}

// CreateBreachAlertInput carries the fields for a new alert. Alerts always
// start in the new state.
type CreateBreachAlertInput struct {
	Severity    domain.AlertSeverity `json:"severity" binding:"required,oneof=low medium high critical"`
	Source      string               `json:"source"`
	Description string               `json:"description" binding:"required"`
	DetectedAt  *time.Time           `json:"detected_at"`
}

// AlertFilter combines optional alert list filters with logical AND.
type AlertFilter struct {
	AccountID uuid.UUID
	Status    domain.AlertStatus
}

// CreateAccount inserts a new account.
func (s *SecurityService) CreateAccount(ctx context.Context, in CreateAccountInput) (AccountDTO, error) {
	account := domain.Account{
		ID:                  uuid.New(),
		UserID:              in.UserID,
		ServiceName:         in.ServiceName,
		Username:            in.Username,
		PasswordLastChanged: in.PasswordLastChanged,
		PasswordStrength:    in.PasswordStrength,
		TwoFactorEnabled:    in.TwoFactorEnabled,
		Notes:               in.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return AccountDTO{}, err
	}
	return toAccountDTO(account, time.Now().UTC()), nil
}

// GetAccount returns the account DTO or ErrNotFound.
func (s *SecurityService) GetAccount(ctx context.Context, id uuid.UUID) (AccountDTO, error) {
	account, err := s.loadAccount(ctx, s.db, id)
	if err != nil {
		return AccountDTO{}, err
	}
	return toAccountDTO(*account, time.Now().UTC()), nil
}

// ListAccounts returns the owner's accounts ordered by service name.
func (s *SecurityService) ListAccounts(ctx context.Context, f AccountFilter) ([]AccountDTO, error) {
	var accounts []domain.Account
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", f.UserID).
		Order("service_name asc").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	dtos := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		if f.StaleOnly && !a.IsPasswordStale(now) {
			continue
		}
		dtos = append(dtos, toAccountDTO(a, now))
	}
	return dtos, nil
}

// UpdateAccount overwrites the account's mutable fields.
func (s *SecurityService) UpdateAccount(ctx context.Context, id uuid.UUID, in UpdateAccountInput) (AccountDTO, error) {
	account, err := s.loadAccount(ctx, s.db, id)
	if err != nil {
		return AccountDTO{}, err
	}
	account.ServiceName = in.ServiceName
	account.Username = in.Username
	account.PasswordLastChanged = in.PasswordLastChanged
	account.PasswordStrength = in.PasswordStrength
	account.TwoFactorEnabled = in.TwoFactorEnabled
	account.Notes = in.Notes
	if err := s.db.WithContext(ctx).Save(account).Error; err != nil {
		return AccountDTO{}, err
	}
	return toAccountDTO(*account, time.Now().UTC()), nil
}

// DeleteAccount hard-deletes the account and its alerts.
func (s *SecurityService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Account{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.BreachAlert{}, "account_id = ?", id).Error
	})
}

// CreateAlert inserts a new alert in the new state for the account.
func (s *SecurityService) CreateAlert(ctx context.Context, accountID uuid.UUID, in CreateBreachAlertInput) (BreachAlertDTO, error) {
	if _, err := s.loadAccount(ctx, s.db, accountID); err != nil {
		return BreachAlertDTO{}, err
	}
	detectedAt := time.Now().UTC()
	if in.DetectedAt != nil {
		detectedAt = *in.DetectedAt
	}
	alert := domain.BreachAlert{
		ID:          uuid.New(),
		AccountID:   accountID,
		Severity:    in.Severity,
		Status:      domain.AlertStatusNew,
		Source:      in.Source,
		Description: in.Description,
		DetectedAt:  detectedAt,
	}
	if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return BreachAlertDTO{}, err
	}
	return toBreachAlertDTO(alert), nil
}

// GetAlert returns the alert DTO or ErrNotFound.
func (s *SecurityService) GetAlert(ctx context.Context, id uuid.UUID) (BreachAlertDTO, error) {
	alert, err := s.loadAlert(ctx, id)
	if err != nil {
		return BreachAlertDTO{}, err
	}
	return toBreachAlertDTO(*alert), nil
}

// ListAlerts returns alerts, most recently detected first.
func (s *SecurityService) ListAlerts(ctx context.Context, f AlertFilter) ([]BreachAlertDTO, error) {
	query := s.db.WithContext(ctx).Model(&domain.BreachAlert{})
	if f.AccountID != uuid.Nil {
		query = query.Where("account_id = ?", f.AccountID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	var alerts []domain.BreachAlert
	if err := query.Order("detected_at desc").Find(&alerts).Error; err != nil {
		return nil, err
	}
	dtos := make([]BreachAlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = toBreachAlertDTO(a)
	}
	return dtos, nil
}

// AcknowledgeAlert moves an alert from new to acknowledged.
func (s *SecurityService) AcknowledgeAlert(ctx context.Context, id uuid.UUID) (BreachAlertDTO, error) {
	return s.transitionAlert(ctx, id, (*domain.BreachAlert).Acknowledge)
}

// ResolveAlert moves an alert from acknowledged to resolved.
func (s *SecurityService) ResolveAlert(ctx context.Context, id uuid.UUID) (BreachAlertDTO, error) {
	return s.transitionAlert(ctx, id, (*domain.BreachAlert).Resolve)
}

// DismissAlert moves an alert from new to dismissed.
func (s *SecurityService) DismissAlert(ctx context.Context, id uuid.UUID) (BreachAlertDTO, error) {
	return s.transitionAlert(ctx, id, (*domain.BreachAlert).Dismiss)
}

// DeleteAlert hard-deletes the alert.
func (s *SecurityService) DeleteAlert(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&domain.BreachAlert{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// transitionAlert loads the alert, applies a guarded transition method and
// saves only if the transition was accepted.
func (s *SecurityService) transitionAlert(ctx context.Context, id uuid.UUID, transition func(*domain.BreachAlert, time.Time) error) (BreachAlertDTO, error) {
	alert, err := s.loadAlert(ctx, id)
	if err != nil {
		return BreachAlertDTO{}, err
	}
	if err := transition(alert, time.Now().UTC()); err != nil {
		return BreachAlertDTO{}, err
	}
	if err := s.db.WithContext(ctx).Save(alert).Error; err != nil {
		return BreachAlertDTO{}, err
	}
	return toBreachAlertDTO(*alert), nil
}

func (s *SecurityService) loadAccount(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	if err := db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *SecurityService) loadAlert(ctx context.Context, id uuid.UUID) (*domain.BreachAlert, error) {
	var alert domain.BreachAlert
	if err := s.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func toAccountDTO(a domain.Account, now time.Time) AccountDTO {
	return AccountDTO{
		ID:                  a.ID,
		UserID:              a.UserID,
		ServiceName:         a.ServiceName,
		Username:            a.Username,
		PasswordLastChanged: a.PasswordLastChanged,
		PasswordAgeDays:     a.PasswordAgeDays(now),
		PasswordStrength:    a.PasswordStrength,
		TwoFactorEnabled:    a.TwoFactorEnabled,
		Notes:               a.Notes,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func toBreachAlertDTO(a domain.BreachAlert) BreachAlertDTO {
	return BreachAlertDTO{
		ID:             a.ID,
		AccountID:      a.AccountID,
		Severity:       a.Severity,
		Status:         a.Status,
		Source:         a.Source,
		Description:    a.Description,
		DetectedAt:     a.DetectedAt,
		AcknowledgedAt: a.AcknowledgedAt,
		ResolvedAt:     a.ResolvedAt,
		DismissedAt:    a.DismissedAt,
		CreatedAt:      a.CreatedAt,
	}
}
