package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPointsCreditAndDebit(t *testing.T) {
	member := FamilyMember{}
	member.CreditPoints(50)
	require.Equal(t, 50, member.PointsBalance)

	require.NoError(t, member.DebitPoints(30))
	require.Equal(t, 20, member.PointsBalance)
}

func TestDebitPointsRejectsOverdraw(t *testing.T) {
	member := FamilyMember{PointsBalance: 10}
	require.ErrorIs(t, member.DebitPoints(25), ErrInsufficientPoints)
	require.Equal(t, 10, member.PointsBalance)
}

func TestAssignmentCompleteIsTerminal(t *testing.T) {
	first := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	a := Assignment{}

	require.NoError(t, a.Complete(first))
	require.True(t, a.IsCompleted)
	require.Equal(t, first, *a.CompletedAt)

	require.ErrorIs(t, a.Complete(first.Add(time.Hour)), ErrInvalidTransition)
	require.Equal(t, first, *a.CompletedAt)
}

func TestAssignmentOverdue(t *testing.T) {
	now := time.Now().UTC()

	past := Assignment{DueDate: now.Add(-time.Hour)}
	require.True(t, past.IsOverdue(now))

	future := Assignment{DueDate: now.Add(time.Hour)}
	require.False(t, future.IsOverdue(now))

	done := Assignment{DueDate: now.Add(-time.Hour), IsCompleted: true}
	require.False(t, done.IsOverdue(now))
}

func TestRewardRedeem(t *testing.T) {
	now := time.Now().UTC()
	member := FamilyMember{ID: uuid.New(), PointsBalance: 100}
	reward := Reward{PointsCost: 60}

	require.NoError(t, reward.Redeem(&member, now))
	require.True(t, reward.IsRedeemed)
	require.Equal(t, 40, member.PointsBalance)
	require.Equal(t, member.ID, *reward.RedeemedByID)
}

func TestRewardRedeemRejectsPoorBalance(t *testing.T) {
	member := FamilyMember{ID: uuid.New(), PointsBalance: 10}
	reward := Reward{PointsCost: 60}

	require.ErrorIs(t, reward.Redeem(&member, time.Now().UTC()), ErrInsufficientPoints)
	require.False(t, reward.IsRedeemed)
	require.Equal(t, 10, member.PointsBalance)
}

func TestRewardRedeemIsTerminal(t *testing.T) {
	now := time.Now().UTC()
	member := FamilyMember{ID: uuid.New(), PointsBalance: 200}
	reward := Reward{PointsCost: 60}

	require.NoError(t, reward.Redeem(&member, now))
	require.ErrorIs(t, reward.Redeem(&member, now), ErrInvalidTransition)
	// No second debit on the rejected call.
	require.Equal(t, 140, member.PointsBalance)
}
