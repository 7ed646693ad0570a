package service

import (
	"context"
	"errors"
	"time"

	"lifehub/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LeaseService executes property and lease commands and queries.
type LeaseService struct {
	db *gorm.DB
}

// NewLeaseService returns a service bound to the given database.
func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{db: db}
}

// PropertyDTO is the flat projection of a property plus its derived
// monthly cash flow (active leases' rent minus expenses).
type PropertyDTO struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	MonthlyCashFlow decimal.Decimal `json:"monthly_cash_flow"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LeaseDTO is the flat projection of a lease.
type LeaseDTO struct {
	ID          uuid.UUID          `json:"id"`
	PropertyID  uuid.UUID          `json:"property_id"`
	TenantName  string             `json:"tenant_name"`
	MonthlyRent decimal.Decimal    `json:"monthly_rent"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     *time.Time         `json:"end_date,omitempty"`
	Status      domain.LeaseStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreatePropertyInput carries the fields for a new property.
type CreatePropertyInput struct {
	UserID          uuid.UUID       `json:"user_id" binding:"required"`
	Address         string          `json:"address" binding:"required"`
	City            string          `json:"city"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
}

// UpdatePropertyInput replaces the property's mutable fields.
type UpdatePropertyInput struct {
	ID              uuid.UUID       `json:"id"` // Optional; must match the path id when present
	Address         string          `json:"address" binding:"required"`
	City            string          `json:"city"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
}

// CreateLeaseInput carries the fields for a new lease. Leases start active.
type CreateLeaseInput struct {
	TenantName  string          `json:"tenant_name" binding:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" binding:"required"`
	StartDate   time.Time       `json:"start_date" binding:"required"`
}

// UpdateLeaseInput replaces an active lease's tenant and rent.
type UpdateLeaseInput struct {
	ID          uuid.UUID       `json:"id"` // Optional; must match the path id when present
	TenantName  string          `json:"tenant_name" binding:"required"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" binding:"required"`
}

// CreateProperty inserts a new property.
func (s *LeaseService) CreateProperty(ctx context.Context, in CreatePropertyInput) (PropertyDTO, error) {
	property := domain.Property{
		ID:              uuid.New(),
		UserID:          in.UserID,
		Address:         in.Address,
		City:            in.City,
		PurchasePrice:   in.PurchasePrice,
		MonthlyExpenses: in.MonthlyExpenses,
	}
	if err := s.db.WithContext(ctx).Create(&property).Error; err != nil {
		return PropertyDTO{}, err
	}
	return toPropertyDTO(property, nil), nil
}

// GetProperty returns the property DTO, with cash flow derived from its
// current leases, or ErrNotFound.
func (s *LeaseService) GetProperty(ctx context.Context, id uuid.UUID) (PropertyDTO, error) {
	property, err := s.loadProperty(ctx, s.db, id)
	if err != nil {
		return PropertyDTO{}, err
	}
	leases, err := s.leasesFor(ctx, id)
	if err != nil {
		return PropertyDTO{}, err
	}
	return toPropertyDTO(*property, leases), nil
}

// ListProperties returns the owner's properties, most recently added first.
func (s *LeaseService) ListProperties(ctx context.Context, userID uuid.UUID) ([]PropertyDTO, error) {
	var properties []domain.Property
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	dtos := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		leases, err := s.leasesFor(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		dtos[i] = toPropertyDTO(p, leases)
	}
	return dtos, nil
}

// UpdateProperty overwrites the property's mutable fields.
func (s *LeaseService) UpdateProperty(ctx context.Context, id uuid.UUID, in UpdatePropertyInput) (PropertyDTO, error) {
	property, err := s.loadProperty(ctx, s.db, id)
	if err != nil {
		return PropertyDTO{}, err
	}
	property.Address = in.Address
	property.City = in.City
	property.PurchasePrice = in.PurchasePrice
	property.MonthlyExpenses = in.MonthlyExpenses
	if err := s.db.WithContext(ctx).Save(property).Error; err != nil {
		return PropertyDTO{}, err
	}
	leases, err := s.leasesFor(ctx, id)
	if err != nil {
		return PropertyDTO{}, err
	}
	return toPropertyDTO(*property, leases), nil
}

// DeleteProperty hard-deletes the property and its leases.
func (s *LeaseService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Property{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.Lease{}, "property_id = ?", id).Error
	})
}

// CreateLease inserts an active lease for the property.
func (s *LeaseService) CreateLease(ctx context.Context, propertyID uuid.UUID, in CreateLeaseInput) (LeaseDTO, error) {
	if _, err := s.loadProperty(ctx, s.db, propertyID); err != nil {
		return LeaseDTO{}, err
	}
	lease := domain.Lease{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		TenantName:  in.TenantName,
		MonthlyRent: in.MonthlyRent,
		StartDate:   in.StartDate,
		Status:      domain.LeaseStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&lease).Error; err != nil {
		return LeaseDTO{}, err
	}
	return toLeaseDTO(lease), nil
}

// GetLease returns the lease DTO or ErrNotFound.
func (s *LeaseService) GetLease(ctx context.Context, id uuid.UUID) (LeaseDTO, error) {
	lease, err := s.loadLease(ctx, id)
	if err != nil {
		return LeaseDTO{}, err
	}
	return toLeaseDTO(*lease), nil
}

// ListLeases returns a property's leases, most recent start first.
func (s *LeaseService) ListLeases(ctx context.Context, propertyID uuid.UUID) ([]LeaseDTO, error) {
	if _, err := s.loadProperty(ctx, s.db, propertyID); err != nil {
		return nil, err
	}
	var leases []domain.Lease
	if err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("start_date desc").
		Find(&leases).Error; err != nil {
		return nil, err
	}
	dtos := make([]LeaseDTO, len(leases))
	for i, l := range leases {
		dtos[i] = toLeaseDTO(l)
	}
	return dtos, nil
}

// UpdateLease overwrites an active lease's tenant and rent. A terminated
// lease is immutable.
func (s *LeaseService) UpdateLease(ctx context.Context, id uuid.UUID, in UpdateLeaseInput) (LeaseDTO, error) {
	lease, err := s.loadLease(ctx, id)
	if err != nil {
		return LeaseDTO{}, err
	}
	if !lease.IsActive() {
		return LeaseDTO{}, domain.ErrInvalidTransition
	}
	lease.TenantName = in.TenantName
	lease.MonthlyRent = in.MonthlyRent
	if err := s.db.WithContext(ctx).Save(lease).Error; err != nil {
		return LeaseDTO{}, err
	}
	return toLeaseDTO(*lease), nil
}

// TerminateLease ends an active lease through the entity's named method.
func (s *LeaseService) TerminateLease(ctx context.Context, id uuid.UUID) (LeaseDTO, error) {
	lease, err := s.loadLease(ctx, id)
	if err != nil {
		return LeaseDTO{}, err
	}
	if err := lease.Terminate(time.Now().UTC()); err != nil {
		return LeaseDTO{}, err
	}
	if err := s.db.WithContext(ctx).Save(lease).Error; err != nil {
		return LeaseDTO{}, err
	}
	return toLeaseDTO(*lease), nil
}

// DeleteLease hard-deletes the lease.
func (s *LeaseService) DeleteLease(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&domain.Lease{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *LeaseService) leasesFor(ctx context.Context, propertyID uuid.UUID) ([]domain.Lease, error) {
	var leases []domain.Lease
	if err := s.db.WithContext(ctx).Where("property_id = ?", propertyID).Find(&leases).Error; err != nil {
		return nil, err
	}
	return leases, nil
}

func (s *LeaseService) loadProperty(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Property, error) {
	var property domain.Property
	if err := db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (s *LeaseService) loadLease(ctx context.Context, id uuid.UUID) (*domain.Lease, error) {
	var lease domain.Lease
	if err := s.db.WithContext(ctx).First(&lease, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &lease, nil
}

func toPropertyDTO(p domain.Property, leases []domain.Lease) PropertyDTO {
	return PropertyDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		Address:         p.Address,
		City:            p.City,
		PurchasePrice:   p.PurchasePrice,
		MonthlyExpenses: p.MonthlyExpenses,
		MonthlyCashFlow: p.MonthlyCashFlow(leases),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toLeaseDTO(l domain.Lease) LeaseDTO {
	return LeaseDTO{
		ID:          l.ID,
		PropertyID:  l.PropertyID,
		TenantName:  l.TenantName,
		MonthlyRent: l.MonthlyRent,
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
