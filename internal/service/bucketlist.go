package service

import (
	"context"
	"errors"
	"time"

	"lifehub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BucketListService executes bucket list commands and queries.
type BucketListService struct {
	db *gorm.DB
}

// NewBucketListService returns a service bound to the given database.
func NewBucketListService(db *gorm.DB) *BucketListService {
	return &BucketListService{db: db}
}

// BucketListItemDTO is the flat projection returned across the boundary.
type BucketListItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Priority    domain.Priority `json:"priority"`
	Progress    int             `json:"progress"`
	IsFavorite  bool            `json:"is_favorite"`
	IsCompleted bool            `json:"is_completed"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateBucketListItemInput carries the fields for a new item.
type CreateBucketListItemInput struct {
	UserID      uuid.UUID       `json:"user_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Priority    domain.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// UpdateBucketListItemInput replaces the full mutable field set.
type UpdateBucketListItemInput struct {
	ID          uuid.UUID       `json:"id"` // Optional; must match the path id when present
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
	Priority    domain.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// BucketListFilter combines optional list filters with logical AND.
type BucketListFilter struct {
	UserID    uuid.UUID
	Category  string
	Completed *bool
	Favorite  *bool
}

// Create inserts a new item and returns its DTO.
func (s *BucketListService) Create(ctx context.Context, in CreateBucketListItemInput) (BucketListItemDTO, error) {
	item := domain.BucketListItem{
		ID:          uuid.New(),
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
	}
	if item.Priority == "" {
		item.Priority = domain.PriorityMedium
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return BucketListItemDTO{}, err
	}
	return toBucketListItemDTO(item), nil
}

// Get returns the item DTO or ErrNotFound.
func (s *BucketListService) Get(ctx context.Context, id uuid.UUID) (BucketListItemDTO, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return BucketListItemDTO{}, err
	}
	return toBucketListItemDTO(*item), nil
}

// List returns the owner's items ordered by title.
func (s *BucketListService) List(ctx context.Context, f BucketListFilter) ([]BucketListItemDTO, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", f.UserID)
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Completed != nil {
		query = query.Where("is_completed = ?", *f.Completed)
	}
	if f.Favorite != nil {
		query = query.Where("is_favorite = ?", *f.Favorite)
	}
	var items []domain.BucketListItem
	if err := query.Order("title asc").Find(&items).Error; err != nil {
		return nil, err
	}
	dtos := make([]BucketListItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toBucketListItemDTO(item)
	}
	return dtos, nil
}

// Update overwrites the item's mutable fields.
func (s *BucketListService) Update(ctx context.Context, id uuid.UUID, in UpdateBucketListItemInput) (BucketListItemDTO, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return BucketListItemDTO{}, err
	}
	item.Title = in.Title
	item.Description = in.Description
	item.Category = in.Category
	if in.Priority != "" {
		item.Priority = in.Priority
	}
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return BucketListItemDTO{}, err
	}
	return toBucketListItemDTO(*item), nil
}

// UpdateProgress routes through the entity's named method so the clamp and
// the one-time completion stamp stay co-located with the entity.
func (s *BucketListService) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (BucketListItemDTO, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return BucketListItemDTO{}, err
	}
	item.UpdateProgress(progress, time.Now().UTC())
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return BucketListItemDTO{}, err
	}
	return toBucketListItemDTO(*item), nil
}

// ToggleFavorite flips the favorite flag.
func (s *BucketListService) ToggleFavorite(ctx context.Context, id uuid.UUID) (BucketListItemDTO, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return BucketListItemDTO{}, err
	}
	item.ToggleFavorite()
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return BucketListItemDTO{}, err
	}
	return toBucketListItemDTO(*item), nil
}

// Delete hard-deletes the item. Deleting an absent id is ErrNotFound.
func (s *BucketListService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&domain.BucketListItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *BucketListService) load(ctx context.Context, id uuid.UUID) (*domain.BucketListItem, error) {
	var item domain.BucketListItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func toBucketListItemDTO(item domain.BucketListItem) BucketListItemDTO {
	return BucketListItemDTO{
		ID:          item.ID,
		UserID:      item.UserID,
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Priority:    item.Priority,
		Progress:    item.Progress,
		IsFavorite:  item.IsFavorite,
		IsCompleted: item.IsCompleted,
		CompletedAt: item.CompletedAt,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
