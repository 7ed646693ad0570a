package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpdateProgressClampsRange(t *testing.T) {
	now := time.Now().UTC()
	item := BucketListItem{}

	item.UpdateProgress(-10, now)
	require.Equal(t, 0, item.Progress)
	require.False(t, item.IsCompleted)

	item.UpdateProgress(150, now)
	require.Equal(t, 100, item.Progress)
	require.True(t, item.IsCompleted)
}

func TestUpdateProgressStampsCompletionOnce(t *testing.T) {
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)
	item := BucketListItem{}

	item.UpdateProgress(100, first)
	require.True(t, item.IsCompleted)
	require.NotNil(t, item.CompletedAt)
	require.Equal(t, first, *item.CompletedAt)

	// Completion is one-way: dropping below 100 keeps the flag and the
	// original stamp, and climbing back must not re-stamp.
	item.UpdateProgress(50, later)
	require.True(t, item.IsCompleted)
	require.Equal(t, first, *item.CompletedAt)
	item.UpdateProgress(100, later)
	require.Equal(t, first, *item.CompletedAt)
}

func TestToggleFavorite(t *testing.T) {
	item := BucketListItem{}
	item.ToggleFavorite()
	require.True(t, item.IsFavorite)
	item.ToggleFavorite()
	require.False(t, item.IsFavorite)
}
