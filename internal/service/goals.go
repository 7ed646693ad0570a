package service

import (
	"context"
	"errors"
	"time"

	"lifehub/internal/domain"
	"lifehub/internal/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalService executes goal and contribution commands and queries. Creating
// or deleting a contribution adjusts the parent goal's running total inside
// the same transaction.
type GoalService struct {
	db     *gorm.DB
	notify *events.Publisher
}

// NewGoalService returns a service bound to the given database. The
// publisher may be nil; notifications are best-effort either way.
func NewGoalService(db *gorm.DB, notify *events.Publisher) *GoalService {
	return &GoalService{db: db, notify: notify}
}

// GoalDTO is the flat projection of a goal plus its derived values.
type GoalDTO struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	TargetDate      *time.Time      `json:"target_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ContributionDTO is the flat projection of a contribution.
type ContributionDTO struct {
	ID            uuid.UUID       `json:"id"`
	GoalID        uuid.UUID       `json:"goal_id"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	ContributedAt time.Time       `json:"contributed_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateGoalInput carries the fields for a new goal.
type CreateGoalInput struct {
	UserID       uuid.UUID       `json:"user_id" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	TargetDate   *time.Time      `json:"target_date"`
}

// UpdateGoalInput replaces the goal's mutable fields. The running total is
// owned by contribution commands and is not writable here.
type UpdateGoalInput struct {
	ID           uuid.UUID       `json:"id"` // Optional; must match the path id when present
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	TargetDate   *time.Time      `json:"target_date"`
}

// CreateContributionInput carries the fields for a new contribution.
type CreateContributionInput struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Note          string          `json:"note"`
	ContributedAt *time.Time      `json:"contributed_at"`
}

// CreateGoal inserts a new goal with a zero running total.
func (s *GoalService) CreateGoal(ctx context.Context, in CreateGoalInput) (GoalDTO, error) {
	goal := domain.Goal{
		ID:            uuid.New(),
		UserID:        in.UserID,
		Name:          in.Name,
		Description:   in.Description,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    in.TargetDate,
	}
	if err := s.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return GoalDTO{}, err
	}
	return toGoalDTO(goal), nil
}

// GetGoal returns the goal DTO or ErrNotFound.
func (s *GoalService) GetGoal(ctx context.Context, id uuid.UUID) (GoalDTO, error) {
	goal, err := s.loadGoal(ctx, s.db, id)
	if err != nil {
		return GoalDTO{}, err
	}
	return toGoalDTO(*goal), nil
}

// ListGoals returns the owner's goals, most recently created first.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]GoalDTO, error) {
	var goals []domain.Goal
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	dtos := make([]GoalDTO, len(goals))
	for i, g := range goals {
		dtos[i] = toGoalDTO(g)
	}
	return dtos, nil
}

// UpdateGoal overwrites the goal's mutable fields.
func (s *GoalService) UpdateGoal(ctx context.Context, id uuid.UUID, in UpdateGoalInput) (GoalDTO, error) {
	goal, err := s.loadGoal(ctx, s.db, id)
	if err != nil {
		return GoalDTO{}, err
	}
	goal.Name = in.Name
	goal.Description = in.Description
	goal.TargetAmount = in.TargetAmount
	goal.TargetDate = in.TargetDate
	if err := s.db.WithContext(ctx).Save(goal).Error; err != nil {
		return GoalDTO{}, err
	}
	return toGoalDTO(*goal), nil
}

// DeleteGoal hard-deletes the goal and its contributions.
func (s *GoalService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Goal{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.Contribution{}, "goal_id = ?", id).Error
	})
}

// CreateContribution inserts a contribution and adds its amount to the
// parent goal's running total; one commit persists both changes.
func (s *GoalService) CreateContribution(ctx context.Context, goalID uuid.UUID, in CreateContributionInput) (ContributionDTO, error) {
	contributedAt := time.Now().UTC()
	if in.ContributedAt != nil {
		contributedAt = *in.ContributedAt
	}
	contribution := domain.Contribution{
		ID:            uuid.New(),
		GoalID:        goalID,
		Amount:        in.Amount,
		Note:          in.Note,
		ContributedAt: contributedAt,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, err := s.loadGoal(ctx, tx, goalID)
		if err != nil {
			return err
		}
		goal.ApplyContribution(contribution.Amount)
		if err := tx.Save(goal).Error; err != nil {
			return err
		}
		return tx.Create(&contribution).Error
	})
	if err != nil {
		return ContributionDTO{}, err
	}
	s.notify.Notify(ctx, events.ChannelGoalContribution, toContributionDTO(contribution))
	return toContributionDTO(contribution), nil
}

// ListContributions returns a goal's contributions, most recent first.
func (s *GoalService) ListContributions(ctx context.Context, goalID uuid.UUID) ([]ContributionDTO, error) {
	if _, err := s.loadGoal(ctx, s.db, goalID); err != nil {
		return nil, err
	}
	var contributions []domain.Contribution
	if err := s.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("contributed_at desc").
		Find(&contributions).Error; err != nil {
		return nil, err
	}
	dtos := make([]ContributionDTO, len(contributions))
	for i, c := range contributions {
		dtos[i] = toContributionDTO(c)
	}
	return dtos, nil
}

// DeleteContribution removes a contribution and subtracts its amount from
// the parent goal's running total as a compensating action.
func (s *GoalService) DeleteContribution(ctx context.Context, id uuid.UUID) error {
	var deleted domain.Contribution
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		goal, err := s.loadGoal(ctx, tx, deleted.GoalID)
		if err != nil {
			return err
		}
		goal.RemoveContribution(deleted.Amount)
		if err := tx.Save(goal).Error; err != nil {
			return err
		}
		return tx.Delete(&deleted).Error
	})
	if err != nil {
		return err
	}
	s.notify.Notify(ctx, events.ChannelGoalContribution, toContributionDTO(deleted))
	return nil
}

func (s *GoalService) loadGoal(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Goal, error) {
	var goal domain.Goal
	if err := db.WithContext(ctx).First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func toGoalDTO(goal domain.Goal) GoalDTO {
	return GoalDTO{
		ID:              goal.ID,
		UserID:          goal.UserID,
		Name:            goal.Name,
		Description:     goal.Description,
		TargetAmount:    goal.TargetAmount,
		CurrentAmount:   goal.CurrentAmount,
		ProgressPercent: goal.ProgressPercent(),
		RemainingAmount: goal.RemainingAmount(),
		TargetDate:      goal.TargetDate,
		CreatedAt:       goal.CreatedAt,
		UpdatedAt:       goal.UpdatedAt,
	}
}

func toContributionDTO(c domain.Contribution) ContributionDTO {
	return ContributionDTO{
		ID:            c.ID,
		GoalID:        c.GoalID,
		Amount:        c.Amount,
		Note:          c.Note,
		ContributedAt: c.ContributedAt,
		CreatedAt:     c.CreatedAt,
	}
}
