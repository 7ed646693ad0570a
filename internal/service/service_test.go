package service

import (
	"testing"

	"lifehub/internal/db"

	"gorm.io/driver/sqlite" // In-memory SQLite for service tests
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database with the full schema migrated.
// Each test gets its own database, so tests stay independent.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(db.Models()...))
	return gdb
}
