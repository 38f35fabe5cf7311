package repository

import (
	"github.com/yukikurage/proposal-board-api/internal/database"
	"github.com/yukikurage/proposal-board-api/internal/models"
	"gorm.io/gorm"
)

// GormCascadeRunRepository is a GORM implementation of CascadeRunRepository
type GormCascadeRunRepository struct {
	db *gorm.DB
}

// NewCascadeRunRepository creates a new CascadeRunRepository
func NewCascadeRunRepository(db *gorm.DB) CascadeRunRepository {
	return &GormCascadeRunRepository{db: db}
}

// Create inserts a new run
func (r *GormCascadeRunRepository) Create(run *models.CascadeRun) error {
	return r.db.Create(run).Error
}

// Update saves progress and the final status of a run
func (r *GormCascadeRunRepository) Update(run *models.CascadeRun) error {
	return r.db.Save(run).Error
}

// FindByID finds a run by ID
func (r *GormCascadeRunRepository) FindByID(id string) (*models.CascadeRun, error) {
	var run models.CascadeRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// List retrieves runs newest first with filtering and pagination
func (r *GormCascadeRunRepository) List(filter CascadeRunFilter) ([]models.CascadeRun, int64, error) {
	var runs []models.CascadeRun

	var status string
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	query := r.db.Model(&models.CascadeRun{}).Scopes(
		database.EqualIf("entity_type", filter.EntityType),
		database.EqualIf("entity_id", filter.EntityID),
		database.EqualIf("status", status),
	)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Scopes(database.NewestFirst("started_at"), database.Paginate(filter.Pagination))
	if err := listQuery.Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
