package service

import (
	"context"
	"errors"
	"time"

	"lifehub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChoreService executes family member, chore, assignment and reward
// commands and queries. Completing an assignment credits the member's
// points balance; redeeming a reward debits it. Both run in one
// transaction with the child mutation.
type ChoreService struct {
	db *gorm.DB
}

// NewChoreService returns a service bound to the given database.
func NewChoreService(db *gorm.DB) *ChoreService {
	return &ChoreService{db: db}
}

// FamilyMemberDTO is the flat projection of a family member.
type FamilyMemberDTO struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	PointsBalance int       `json:"points_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChoreDTO is the flat projection of a chore.
type ChoreDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignmentDTO is the flat projection of an assignment plus values pulled
// from the chore and the derived overdue flag.
type AssignmentDTO struct {
	ID             uuid.UUID  `json:"id"`
	ChoreID        uuid.UUID  `json:"chore_id"`
	ChoreName      string     `json:"chore_name"`
	Points         int        `json:"points"`
	FamilyMemberID uuid.UUID  `json:"family_member_id"`
	DueDate        time.Time  `json:"due_date"`
	IsCompleted    bool       `json:"is_completed"`
	IsOverdue      bool       `json:"is_overdue"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// RewardDTO is the flat projection of a reward.
type RewardDTO struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Name         string     `json:"name"`
	PointsCost   int        `json:"points_cost"`
	IsRedeemed   bool       `json:"is_redeemed"`
	RedeemedAt   *time.Time `json:"redeemed_at,omitempty"`
	RedeemedByID *uuid.UUID `json:"redeemed_by_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateFamilyMemberInput carries the fields for a new family member.
type CreateFamilyMemberInput struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Name   string    `json:"name" binding:"required"`
}

// UpdateFamilyMemberInput replaces the member's mutable fields. The points
// balance is owned by completion and redemption commands and is not
// writable here.
type UpdateFamilyMemberInput struct {
	ID   uuid.UUID `json:"id"` // Optional; must match the path id when present
	Name string    `json:"name" binding:"required"`
}

// CreateChoreInput carries the fields for a new chore.
type CreateChoreInput struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Points      int       `json:"points" binding:"min=0"`
}

// UpdateChoreInput replaces the chore's mutable fields.
type UpdateChoreInput struct {
	ID          uuid.UUID `json:"id"` // Optional; must match the path id when present
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Points      int       `json:"points" binding:"min=0"`
}

// CreateAssignmentInput carries the fields for a new assignment.
type CreateAssignmentInput struct {
	ChoreID        uuid.UUID `json:"chore_id" binding:"required"`
	FamilyMemberID uuid.UUID `json:"family_member_id" binding:"required"`
	DueDate        time.Time `json:"due_date" binding:"required"`
}

// AssignmentFilter combines optional assignment list filters with logical
// AND. OverdueOnly is derived from the due date and completion flag, so it
// filters post-load.
type AssignmentFilter struct {
	FamilyMemberID uuid.UUID
	Completed      *bool
	OverdueOnly    bool
}

// CreateRewardInput carries the fields for a new reward.
type CreateRewardInput struct {
	UserID     uuid.UUID `json:"user_id" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	PointsCost int       `json:"points_cost" binding:"required,gt=0"`
}

// UpdateRewardInput replaces an unredeemed reward's mutable fields.
type UpdateRewardInput struct {
	ID         uuid.UUID `json:"id"` // Optional; must match the path id when present
	Name       string    `json:"name" binding:"required"`
	PointsCost int       `json:"points_cost" binding:"required,gt=0"`
}

// RedeemRewardInput names the member spending their points.
type RedeemRewardInput struct {
	FamilyMemberID uuid.UUID `json:"family_member_id" binding:"required"`
}

// CreateFamilyMember inserts a member with a zero points balance.
func (s *ChoreService) CreateFamilyMember(ctx context.Context, in CreateFamilyMemberInput) (FamilyMemberDTO, error) {
	member := domain.FamilyMember{
		ID:     uuid.New(),
		UserID: in.UserID,
		Name:   in.Name,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return FamilyMemberDTO{}, err
	}
	return toFamilyMemberDTO(member), nil
}

// GetFamilyMember returns the member DTO or ErrNotFound.
func (s *ChoreService) GetFamilyMember(ctx context.Context, id uuid.UUID) (FamilyMemberDTO, error) {
	member, err := s.loadMember(ctx, s.db, id)
	if err != nil {
		return FamilyMemberDTO{}, err
	}
	return toFamilyMemberDTO(*member), nil
}

// ListFamilyMembers returns the household's members ordered by name.
func (s *ChoreService) ListFamilyMembers(ctx context.Context, userID uuid.UUID) ([]FamilyMemberDTO, error) {
	var members []domain.FamilyMember
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	dtos := make([]FamilyMemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toFamilyMemberDTO(m)
	}
	return dtos, nil
}

// UpdateFamilyMember overwrites the member's name, leaving the points
// balance untouched.
func (s *ChoreService) UpdateFamilyMember(ctx context.Context, id uuid.UUID, in UpdateFamilyMemberInput) (FamilyMemberDTO, error) {
	member, err := s.loadMember(ctx, s.db, id)
	if err != nil {
		return FamilyMemberDTO{}, err
	}
	member.Name = in.Name
	if err := s.db.WithContext(ctx).Save(member).Error; err != nil {
		return FamilyMemberDTO{}, err
	}
	return toFamilyMemberDTO(*member), nil
}

// DeleteFamilyMember hard-deletes the member and their assignments.
func (s *ChoreService) DeleteFamilyMember(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.FamilyMember{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.Assignment{}, "family_member_id = ?", id).Error
	})
}

// CreateChore inserts a new chore.
func (s *ChoreService) CreateChore(ctx context.Context, in CreateChoreInput) (ChoreDTO, error) {
	chore := domain.Chore{
		ID:          uuid.New(),
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Points:      in.Points,
	}
	if err := s.db.WithContext(ctx).Create(&chore).Error; err != nil {
		return ChoreDTO{}, err
	}
	return toChoreDTO(chore), nil
}

// GetChore returns the chore DTO or ErrNotFound.
func (s *ChoreService) GetChore(ctx context.Context, id uuid.UUID) (ChoreDTO, error) {
	chore, err := s.loadChore(ctx, s.db, id)
	if err != nil {
		return ChoreDTO{}, err
	}
	return toChoreDTO(*chore), nil
}

// ListChores returns the owner's chores ordered by name.
func (s *ChoreService) ListChores(ctx context.Context, userID uuid.UUID) ([]ChoreDTO, error) {
	var chores []domain.Chore
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&chores).Error; err != nil {
		return nil, err
	}
	dtos := make([]ChoreDTO, len(chores))
	for i, c := range chores {
		dtos[i] = toChoreDTO(c)
	}
	return dtos, nil
}

// UpdateChore overwrites the chore's mutable fields.
func (s *ChoreService) UpdateChore(ctx context.Context, id uuid.UUID, in UpdateChoreInput) (ChoreDTO, error) {
	chore, err := s.loadChore(ctx, s.db, id)
	if err != nil {
		return ChoreDTO{}, err
	}
	chore.Name = in.Name
	chore.Description = in.Description
	chore.Points = in.Points
	if err := s.db.WithContext(ctx).Save(chore).Error; err != nil {
		return ChoreDTO{}, err
	}
	return toChoreDTO(*chore), nil
}

// DeleteChore hard-deletes the chore and its assignments.
func (s *ChoreService) DeleteChore(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Chore{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Delete(&domain.Assignment{}, "chore_id = ?", id).Error
	})
}

// CreateAssignment assigns a chore to a member.
func (s *ChoreService) CreateAssignment(ctx context.Context, in CreateAssignmentInput) (AssignmentDTO, error) {
	chore, err := s.loadChore(ctx, s.db, in.ChoreID)
	if err != nil {
		return AssignmentDTO{}, err
	}
	if _, err := s.loadMember(ctx, s.db, in.FamilyMemberID); err != nil {
		return AssignmentDTO{}, err
	}
	assignment := domain.Assignment{
		ID:             uuid.New(),
		ChoreID:        in.ChoreID,
		FamilyMemberID: in.FamilyMemberID,
		DueDate:        in.DueDate,
	}
	if err := s.db.WithContext(ctx).Create(&assignment).Error; err != nil {
		return AssignmentDTO{}, err
	}
	return toAssignmentDTO(assignment, *chore, time.Now().UTC()), nil
}

// ListAssignments returns assignments ordered by due date, soonest first.
func (s *ChoreService) ListAssignments(ctx context.Context, f AssignmentFilter) ([]AssignmentDTO, error) {
	query := s.db.WithContext(ctx).Model(&domain.Assignment{})
	if f.FamilyMemberID != uuid.Nil {
		query = query.Where("family_member_id = ?", f.FamilyMemberID)
	}
	if f.Completed != nil {
		query = query.Where("is_completed = ?", *f.Completed)
	}
	var assignments []domain.Assignment
	if err := query.Order("due_date asc").Find(&assignments).Error; err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	dtos := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		if f.OverdueOnly && !a.IsOverdue(now) {
			continue
		}
		chore, err := s.loadChore(ctx, s.db, a.ChoreID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, toAssignmentDTO(a, *chore, now))
	}
	return dtos, nil
}

// CompleteAssignment marks the assignment done and credits the chore's
// points to the member in the same transaction.
func (s *ChoreService) CompleteAssignment(ctx context.Context, id uuid.UUID) (AssignmentDTO, error) {
	var assignment domain.Assignment
	var chore domain.Chore
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := assignment.Complete(time.Now().UTC()); err != nil {
			return err
		}
		loadedChore, err := s.loadChore(ctx, tx, assignment.ChoreID)
		if err != nil {
			return err
		}
		chore = *loadedChore
		member, err := s.loadMember(ctx, tx, assignment.FamilyMemberID)
		if err != nil {
			return err
		}
		member.CreditPoints(chore.Points)
		if err := tx.Save(member).Error; err != nil {
			return err
		}
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return AssignmentDTO{}, err
	}
	return toAssignmentDTO(assignment, chore, time.Now().UTC()), nil
}

// DeleteAssignment hard-deletes the assignment.
func (s *ChoreService) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&domain.Assignment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateReward inserts a new, unredeemed reward.
func (s *ChoreService) CreateReward(ctx context.Context, in CreateRewardInput) (RewardDTO, error) {
	reward := domain.Reward{
		ID:         uuid.New(),
		UserID:     in.UserID,
		Name:       in.Name,
		PointsCost: in.PointsCost,
	}
	if err := s.db.WithContext(ctx).Create(&reward).Error; err != nil {
		return RewardDTO{}, err
	}
	return toRewardDTO(reward), nil
}

// GetReward returns the reward DTO or ErrNotFound.
func (s *ChoreService) GetReward(ctx context.Context, id uuid.UUID) (RewardDTO, error) {
	reward, err := s.loadReward(ctx, s.db, id)
	if err != nil {
		return RewardDTO{}, err
	}
	return toRewardDTO(*reward), nil
}

// ListRewards returns the owner's rewards ordered by name.
func (s *ChoreService) ListRewards(ctx context.Context, userID uuid.UUID) ([]RewardDTO, error) {
	var rewards []domain.Reward
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&rewards).Error; err != nil {
		return nil, err
	}
	dtos := make([]RewardDTO, len(rewards))
	for i, r := range rewards {
		dtos[i] = toRewardDTO(r)
	}
	return dtos, nil
}

// UpdateReward overwrites an unredeemed reward's name and cost. A redeemed
// reward is a settled exchange and stays immutable.
func (s *ChoreService) UpdateReward(ctx context.Context, id uuid.UUID, in UpdateRewardInput) (RewardDTO, error) {
	reward, err := s.loadReward(ctx, s.db, id)
	if err != nil {
		return RewardDTO{}, err
	}
	if reward.IsRedeemed {
		return RewardDTO{}, domain.ErrInvalidTransition
	}
	reward.Name = in.Name
	reward.PointsCost = in.PointsCost
	if err := s.db.WithContext(ctx).Save(reward).Error; err != nil {
		return RewardDTO{}, err
	}
	return toRewardDTO(*reward), nil
}

// RedeemReward spends a member's points on the reward; the debit and the
// redemption stamp commit together.
func (s *ChoreService) RedeemReward(ctx context.Context, id uuid.UUID, in RedeemRewardInput) (RewardDTO, error) {
	var reward domain.Reward
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := s.loadReward(ctx, tx, id)
		if err != nil {
			return err
		}
		reward = *loaded
		member, err := s.loadMember(ctx, tx, in.FamilyMemberID)
		if err != nil {
			return err
		}
		if err := reward.Redeem(member, time.Now().UTC()); err != nil {
			return err
		}
		if err := tx.Save(member).Error; err != nil {
			return err
		}
		return tx.Save(&reward).Error
	})
	if err != nil {
		return RewardDTO{}, err
	}
	return toRewardDTO(reward), nil
}

// DeleteReward hard-deletes the reward.
func (s *ChoreService) DeleteReward(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&domain.Reward{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ChoreService) loadMember(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.FamilyMember, error) {
	var member domain.FamilyMember
	if err := db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (s *ChoreService) loadChore(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Chore, error) {
	var chore domain.Chore
	if err := db.WithContext(ctx).First(&chore, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &chore, nil
}

func (s *ChoreService) loadReward(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Reward, error) {
	var reward domain.Reward
	if err := db.WithContext(ctx).First(&reward, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reward, nil
}

func toFamilyMemberDTO(m domain.FamilyMember) FamilyMemberDTO {
	return FamilyMemberDTO{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		PointsBalance: m.PointsBalance,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toChoreDTO(c domain.Chore) ChoreDTO {
	return ChoreDTO{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Points:      c.Points,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toAssignmentDTO(a domain.Assignment, chore domain.Chore, now time.Time) AssignmentDTO {
	return AssignmentDTO{
		ID:             a.ID,
		ChoreID:        a.ChoreID,
		ChoreName:      chore.Name,
		Points:         chore.Points,
		FamilyMemberID: a.FamilyMemberID,
		DueDate:        a.DueDate,
		IsCompleted:    a.IsCompleted,
		IsOverdue:      a.IsOverdue(now),
		CompletedAt:    a.CompletedAt,
		CreatedAt:      a.CreatedAt,
	}
}

func toRewardDTO(r domain.Reward) RewardDTO {
	return RewardDTO{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		PointsCost:   r.PointsCost,
		IsRedeemed:   r.IsRedeemed,
		RedeemedAt:   r.RedeemedAt,
		RedeemedByID: r.RedeemedByID,
		CreatedAt:    r.CreatedAt,
	}
}
