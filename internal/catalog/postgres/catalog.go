package postgres

import (
	"github.com/edumanage/school-management/internal/catalog"
	catalogDatamodel "github.com/edumanage/school-management/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

// CatalogRepository implements catalog.RepositoryAPI using GORM.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

// GetModuleTree loads all modules with their sub-modules and categories in
// sort order.
func (r *CatalogRepository) GetModuleTree() ([]*catalogDatamodel.Module, error) {
	var modules []*catalogDatamodel.Module
	err := r.db.
		Preload("SubModules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Preload("SubModules.Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Order("sort_order, id").
		Find(&modules).Error
	return modules, err
}
