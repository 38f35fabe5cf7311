package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/proposal-board-api/internal/config"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"github.com/yukikurage/proposal-board-api/internal/utils"
)

func TestConnectAndMigrate(t *testing.T) {
	db, err := Connect(&config.Config{DBDriver: "sqlite", DBDSN: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// Running twice must skip the existing indexes.
	require.NoError(t, Migrate(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.CascadeRun{}))
	assert.True(t, migrator.HasIndex(&models.CascadeRun{}, "idx_cascade_runs_entity"))
	assert.True(t, migrator.HasIndex(&models.CascadeRun{}, "idx_cascade_runs_status_started"))
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})

	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestScopes(t *testing.T) {
	db, err := Connect(&config.Config{DBDriver: "sqlite", DBDSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, entity := range []string{"proposal", "organization", "proposal"} {
		require.NoError(t, db.Create(&models.CascadeRun{
			ID:         fmt.Sprintf("run-%d", i),
			EntityType: entity,
			EntityID:   "x",
			Mode:       "delete",
			Status:     models.CascadeRunCompleted,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	var runs []models.CascadeRun
	err = db.Scopes(EqualIf("entity_type", "proposal"), NewestFirst("started_at")).Find(&runs).Error
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)

	runs = nil
	err = db.Scopes(EqualIf("entity_type", ""), NewestFirst("started_at"), Paginate(utils.NewPaginationParams(2, 2))).Find(&runs).Error
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-0", runs[0].ID)

	runs = nil
	err = db.Scopes(Paginate(utils.PaginationParams{})).Find(&runs).Error
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
