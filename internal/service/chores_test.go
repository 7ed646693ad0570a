package service

import (
	"context"
	"testing"
	"time"

	"lifehub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type choreFixture struct {
	svc    *ChoreService
	userID uuid.UUID
	member FamilyMemberDTO
	chore  ChoreDTO
}

func newChoreFixture(t *testing.T) choreFixture {
	t.Helper()
	svc := NewChoreService(newTestDB(t))
	userID := uuid.New()
	ctx := context.Background()

	member, err := svc.CreateFamilyMember(ctx, CreateFamilyMemberInput{
		UserID: userID,
		Name:   "Sam",
	})
	require.NoError(t, err)
	chore, err := svc.CreateChore(ctx, CreateChoreInput{
		UserID: userID,
		Name:   "Dishes",
		Points: 15,
	})
	require.NoError(t, err)

	return choreFixture{svc: svc, userID: userID, member: member, chore: chore}
}

func TestChoreCompleteAssignmentCreditsPoints(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
		ChoreID:        f.chore.ID,
		FamilyMemberID: f.member.ID,
		DueDate:        time.Now().UTC().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, "Dishes", assignment.ChoreName)
	require.Equal(t, 15, assignment.Points)
	require.False(t, assignment.IsCompleted)

	completed, err := f.svc.CompleteAssignment(ctx, assignment.ID)
	require.NoError(t, err)
	require.True(t, completed.IsCompleted)
	require.NotNil(t, completed.CompletedAt)

	member, err := f.svc.GetFamilyMember(ctx, f.member.ID)
	require.NoError(t, err)
	require.Equal(t, 15, member.PointsBalance)

	// Completion is terminal; the balance must not move twice.
	_, err = f.svc.CompleteAssignment(ctx, assignment.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	member, err = f.svc.GetFamilyMember(ctx, f.member.ID)
	require.NoError(t, err)
	require.Equal(t, 15, member.PointsBalance)
}

func TestChoreAssignmentFilters(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	overdue, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
		ChoreID:        f.chore.ID,
		FamilyMemberID: f.member.ID,
		DueDate:        now.Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	upcoming, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
		ChoreID:        f.chore.ID,
		FamilyMemberID: f.member.ID,
		DueDate:        now.Add(48 * time.Hour),
	})
	require.NoError(t, err)

	all, err := f.svc.ListAssignments(ctx, AssignmentFilter{FamilyMemberID: f.member.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Due date ascending: the overdue one comes first.
	require.Equal(t, overdue.ID, all[0].ID)
	require.True(t, all[0].IsOverdue)
	require.Equal(t, upcoming.ID, all[1].ID)
	require.False(t, all[1].IsOverdue)

	lateOnly, err := f.svc.ListAssignments(ctx, AssignmentFilter{OverdueOnly: true})
	require.NoError(t, err)
	require.Len(t, lateOnly, 1)
	require.Equal(t, overdue.ID, lateOnly[0].ID)

	// Completing the overdue one removes it from the overdue view.
	_, err = f.svc.CompleteAssignment(ctx, overdue.ID)
	require.NoError(t, err)
	lateOnly, err = f.svc.ListAssignments(ctx, AssignmentFilter{OverdueOnly: true})
	require.NoError(t, err)
	require.Empty(t, lateOnly)

	open := false
	pending, err := f.svc.ListAssignments(ctx, AssignmentFilter{Completed: &open})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, upcoming.ID, pending[0].ID)
}

func TestChoreCreateAssignmentValidatesRefs(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
		ChoreID:        uuid.New(),
		FamilyMemberID: f.member.ID,
		DueDate:        time.Now().UTC(),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.CreateAssignment(ctx, CreateAssignmentInput{
		ChoreID:        f.chore.ID,
		FamilyMemberID: uuid.New(),
		DueDate:        time.Now().UTC(),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChoreRedeemReward(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	// Earn enough points first.
	for i := 0; i < 3; i++ {
		assignment, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
			ChoreID:        f.chore.ID,
			FamilyMemberID: f.member.ID,
			DueDate:        time.Now().UTC().Add(time.Hour),
		})
		require.NoError(t, err)
		_, err = f.svc.CompleteAssignment(ctx, assignment.ID)
		require.NoError(t, err)
	}

	reward, err := f.svc.CreateReward(ctx, CreateRewardInput{
		UserID:     f.userID,
		Name:       "Movie night",
		PointsCost: 40,
	})
	require.NoError(t, err)

	redeemed, err := f.svc.RedeemReward(ctx, reward.ID, RedeemRewardInput{FamilyMemberID: f.member.ID})
	require.NoError(t, err)
	require.True(t, redeemed.IsRedeemed)
	require.NotNil(t, redeemed.RedeemedAt)
	require.Equal(t, f.member.ID, *redeemed.RedeemedByID)

	member, err := f.svc.GetFamilyMember(ctx, f.member.ID)
	require.NoError(t, err)
	require.Equal(t, 5, member.PointsBalance) // 45 earned - 40 spent

	// A redeemed reward cannot be redeemed again.
	_, err = f.svc.RedeemReward(ctx, reward.ID, RedeemRewardInput{FamilyMemberID: f.member.ID})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestChoreRedeemRewardInsufficientPoints(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	reward, err := f.svc.CreateReward(ctx, CreateRewardInput{
		UserID:     f.userID,
		Name:       "Theme park",
		PointsCost: 500,
	})
	require.NoError(t, err)

	_, err = f.svc.RedeemReward(ctx, reward.ID, RedeemRewardInput{FamilyMemberID: f.member.ID})
	require.ErrorIs(t, err, domain.ErrInsufficientPoints)

	// The failed redemption left the reward untouched.
	got, err := f.svc.GetReward(ctx, reward.ID)
	require.NoError(t, err)
	require.False(t, got.IsRedeemed)
}

func TestChoreUpdateFamilyMember(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
		ChoreID:        f.chore.ID,
		FamilyMemberID: f.member.ID,
		DueDate:        time.Now().UTC().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = f.svc.CompleteAssignment(ctx, assignment.ID)
	require.NoError(t, err)

	updated, err := f.svc.UpdateFamilyMember(ctx, f.member.ID, UpdateFamilyMemberInput{Name: "Samantha"})
	require.NoError(t, err)
	require.Equal(t, "Samantha", updated.Name)
	// Renaming never touches the earned balance.
	require.Equal(t, 15, updated.PointsBalance)

	_, err = f.svc.UpdateFamilyMember(ctx, uuid.New(), UpdateFamilyMemberInput{Name: "Nobody"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChoreUpdateReward(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	reward, err := f.svc.CreateReward(ctx, CreateRewardInput{
		UserID:     f.userID,
		Name:       "Movie night",
		PointsCost: 40,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateReward(ctx, reward.ID, UpdateRewardInput{
		Name:       "Game night",
		PointsCost: 25,
	})
	require.NoError(t, err)
	require.Equal(t, "Game night", updated.Name)
	require.Equal(t, 25, updated.PointsCost)

	_, err = f.svc.UpdateReward(ctx, uuid.New(), UpdateRewardInput{Name: "Missing", PointsCost: 10})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChoreUpdateRedeemedRewardRejected(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		assignment, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
			ChoreID:        f.chore.ID,
			FamilyMemberID: f.member.ID,
			DueDate:        time.Now().UTC().Add(time.Hour),
		})
		require.NoError(t, err)
		_, err = f.svc.CompleteAssignment(ctx, assignment.ID)
		require.NoError(t, err)
	}

	reward, err := f.svc.CreateReward(ctx, CreateRewardInput{
		UserID:     f.userID,
		Name:       "Ice cream",
		PointsCost: 20,
	})
	require.NoError(t, err)
	_, err = f.svc.RedeemReward(ctx, reward.ID, RedeemRewardInput{FamilyMemberID: f.member.ID})
	require.NoError(t, err)

	// The exchange already settled; the price cannot change after the fact.
	_, err = f.svc.UpdateReward(ctx, reward.ID, UpdateRewardInput{Name: "Ice cream", PointsCost: 5})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := f.svc.GetReward(ctx, reward.ID)
	require.NoError(t, err)
	require.Equal(t, 20, got.PointsCost)
}

func TestChoreUpdateChoreMissing(t *testing.T) {
	f := newChoreFixture(t)
	_, err := f.svc.UpdateChore(context.Background(), uuid.New(), UpdateChoreInput{Name: "Laundry", Points: 10})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChoreDeleteChoreCascadesAssignments(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	assignment, err := f.svc.CreateAssignment(ctx, CreateAssignmentInput{
		ChoreID:        f.chore.ID,
		FamilyMemberID: f.member.ID,
		DueDate:        time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteChore(ctx, f.chore.ID))
	require.ErrorIs(t, f.svc.DeleteAssignment(ctx, assignment.ID), domain.ErrNotFound)
	require.ErrorIs(t, f.svc.DeleteChore(ctx, f.chore.ID), domain.ErrNotFound)
}

func TestChoreListMembersAndRewardsByName(t *testing.T) {
	f := newChoreFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateFamilyMember(ctx, CreateFamilyMemberInput{UserID: f.userID, Name: "Alex"})
	require.NoError(t, err)

	members, err := f.svc.ListFamilyMembers(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "Alex", members[0].Name)
	require.Equal(t, "Sam", members[1].Name)

	_, err = f.svc.CreateReward(ctx, CreateRewardInput{UserID: f.userID, Name: "Zoo trip", PointsCost: 30})
	require.NoError(t, err)
	_, err = f.svc.CreateReward(ctx, CreateRewardInput{UserID: f.userID, Name: "Ice cream", PointsCost: 10})
	require.NoError(t, err)

	rewards, err := f.svc.ListRewards(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	require.Equal(t, "Ice cream", rewards[0].Name)
	require.Equal(t, "Zoo trip", rewards[1].Name)
}
