package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/proposal-board-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the journal schema.
func Migrate(db *gorm.DB) error {
	slog.Info("Running database migrations...")
	if err := db.AutoMigrate(&models.CascadeRun{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	slog.Info("Database migrations completed")
	return nil
}

// AddIndexes adds composite indexes that struct tags cannot express.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		name    string
		columns string
	}{
		// Lookups of all runs for one entity, newest first
		{"idx_cascade_runs_entity", "entity_type, entity_id, started_at"},
		{"idx_cascade_runs_status_started", "status, started_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(&models.CascadeRun{}, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON cascade_runs (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		slog.Info("Created index", "name", idx.name, "columns", idx.columns)
	}

	return nil
}
