package domain

import (
	"time"

	"github.com/google/uuid"
)

// Priority of a bucket list item
type Priority string

// Priority levels
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// BucketListItem Model
type BucketListItem struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`          // Primary key
	UserID      uuid.UUID  `gorm:"type:char(36);index;not null"`      // Owner
	Title       string     `gorm:"not null"`                          // Item title
	Description string     // Free-form description
	Category    string     `gorm:"index"`                             // Category label (travel, career, ...)
	Priority    Priority   `gorm:"type:varchar(16);default:medium"`   // low, medium or high
	Progress    int        `gorm:"not null;default:0"`                // Completion percentage, 0-100
	IsFavorite  bool       `gorm:"not null;default:false"`            // Favorite flag
	IsCompleted bool       `gorm:"not null;default:false"`            // Set when progress reaches 100
	CompletedAt *time.Time // Stamped once on completion
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateProgress sets the completion percentage, clamped to [0, 100].
// Hitting 100 marks the item completed and stamps CompletedAt exactly once.
// Completion is one-way: lowering the progress afterwards keeps IsCompleted
// and CompletedAt, recording that the item was achieved at some point.
func (b *BucketListItem) UpdateProgress(progress int, now time.Time) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	b.Progress = progress
	if progress == 100 && !b.IsCompleted {
		b.IsCompleted = true
		b.CompletedAt = &now
	}
}

// ToggleFavorite flips the favorite flag.
func (b *BucketListItem) ToggleFavorite() {
	b.IsFavorite = !b.IsFavorite
}
