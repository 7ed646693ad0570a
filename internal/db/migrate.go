package db

import (
	"lifehub/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Models lists every persisted entity across the verticals, in one place so
// migration and the test harness stay in sync.
func Models() []any {
	return []any{
		&domain.BucketListItem{},
		&domain.Goal{},
		&domain.Contribution{},
		&domain.Holding{},
		&domain.Trade{},
		&domain.Account{},
		&domain.BreachAlert{},
		&domain.Property{},
		&domain.Lease{},
		&domain.FamilyMember{},
		&domain.Chore{},
		&domain.Assignment{},
		&domain.Reward{},
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
