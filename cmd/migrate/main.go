package main

import (
	"lifehub/internal/config" // Custom package for configuration
	"lifehub/internal/db"     // Custom package for database migration
)

// Main function to run the database migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run migration
}
