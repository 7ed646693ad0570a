package service

import (
	"context"
	"testing"

	"lifehub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newBucketListFixture(t *testing.T) (*BucketListService, uuid.UUID) {
	t.Helper()
	return NewBucketListService(newTestDB(t)), uuid.New()
}

func TestBucketListCreateThenGet(t *testing.T) {
	svc, userID := newBucketListFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBucketListItemInput{
		UserID:   userID,
		Title:    "See the northern lights",
		Category: "travel",
		Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)
	require.Equal(t, domain.PriorityHigh, created.Priority)
	require.Equal(t, 0, created.Progress)
	require.False(t, created.IsCompleted)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Title, got.Title)
	require.Equal(t, created.Priority, got.Priority)
}

func TestBucketListCreateDefaultsPriority(t *testing.T) {
	svc, userID := newBucketListFixture(t)

	created, err := svc.Create(context.Background(), CreateBucketListItemInput{
		UserID:   userID,
		Title:    "Learn to sail",
		Category: "skills",
	})
	require.NoError(t, err)
	require.Equal(t, domain.PriorityMedium, created.Priority)
}

func TestBucketListGetMissing(t *testing.T) {
	svc, _ := newBucketListFixture(t)
	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBucketListListOrderAndFilters(t *testing.T) {
	svc, userID := newBucketListFixture(t)
	ctx := context.Background()

	for _, title := range []string{"Zanzibar trip", "Alps hike", "Marathon"} {
		_, err := svc.Create(ctx, CreateBucketListItemInput{
			UserID:   userID,
			Title:    title,
			Category: "travel",
		})
		require.NoError(t, err)
	}
	other, err := svc.Create(ctx, CreateBucketListItemInput{
		UserID:   userID,
		Title:    "Write a novel",
		Category: "creative",
	})
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, other.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx, BucketListFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "Alps hike", all[0].Title)
	require.Equal(t, "Marathon", all[1].Title)
	require.Equal(t, "Write a novel", all[2].Title)
	require.Equal(t, "Zanzibar trip", all[3].Title)

	travel, err := svc.List(ctx, BucketListFilter{UserID: userID, Category: "travel"})
	require.NoError(t, err)
	require.Len(t, travel, 3)

	fav := true
	favorites, err := svc.List(ctx, BucketListFilter{UserID: userID, Favorite: &fav})
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.Equal(t, other.ID, favorites[0].ID)

	// Other owners see nothing.
	foreign, err := svc.List(ctx, BucketListFilter{UserID: uuid.New()})
	require.NoError(t, err)
	require.Empty(t, foreign)
}

func TestBucketListProgressCompletes(t *testing.T) {
	svc, userID := newBucketListFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBucketListItemInput{
		UserID:   userID,
		Title:    "Run a marathon",
		Category: "fitness",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(ctx, created.ID, 100)
	require.NoError(t, err)
	require.True(t, updated.IsCompleted)
	require.NotNil(t, updated.CompletedAt)
	stamp := *updated.CompletedAt

	// Out-of-range input clamps instead of failing, and the original
	// completion stamp survives a later return to 100.
	updated, err = svc.UpdateProgress(ctx, created.ID, 130)
	require.NoError(t, err)
	require.Equal(t, 100, updated.Progress)
	require.True(t, stamp.Equal(*updated.CompletedAt))

	completed := true
	done, err := svc.List(ctx, BucketListFilter{UserID: userID, Completed: &completed})
	require.NoError(t, err)
	require.Len(t, done, 1)
}

func TestBucketListUpdate(t *testing.T) {
	svc, userID := newBucketListFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBucketListItemInput{
		UserID:   userID,
		Title:    "Old title",
		Category: "misc",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateBucketListItemInput{
		Title:    "New title",
		Category: "travel",
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)
	require.Equal(t, "New title", updated.Title)
	require.Equal(t, "travel", updated.Category)
	require.Equal(t, domain.PriorityLow, updated.Priority)

	_, err = svc.Update(ctx, uuid.New(), UpdateBucketListItemInput{Title: "x", Category: "y"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBucketListDelete(t *testing.T) {
	svc, userID := newBucketListFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBucketListItemInput{
		UserID:   userID,
		Title:    "Skydive",
		Category: "thrill",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// A second delete reports the absence.
	require.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}
