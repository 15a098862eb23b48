package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/taste-recommender/internal/models"
)

type CatalogRepository interface {
	LoadAll() ([]models.ContentItem, error)
	Upsert(items []models.ContentItem) error
	Count() (int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// LoadAll returns every item in catalog order.
func (r *catalogRepository) LoadAll() ([]models.ContentItem, error) {
	var items []models.ContentItem
	if err := r.db.Scopes(inCatalogOrder).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return items, nil
}

func inCatalogOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

// Upsert inserts items or overwrites existing rows with the same id.
func (r *catalogRepository) Upsert(items []models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&items).Error
	if err != nil {
		return fmt.Errorf("failed to upsert catalog items: %w", err)
	}
	return nil
}

func (r *catalogRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.ContentItem{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count catalog items: %w", err)
	}
	return n, nil
}
