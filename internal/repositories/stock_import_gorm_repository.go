package repositories

import (
	"stockroom/internal/models"
	"stockroom/pkg/e"

	"gorm.io/gorm"
)

// GORMStockImportRepository is a GORM implementation of StockImportRepository.
type GORMStockImportRepository struct {
	db *gorm.DB
}

func NewGORMStockImportRepository(db *gorm.DB) *GORMStockImportRepository {
	return &GORMStockImportRepository{db: db}
}

func (r *GORMStockImportRepository) Create(record *models.StockImport) error {
	if err := r.db.Create(record).Error; err != nil {
		return e.Persistence("failed to record stock import", err)
	}
	return nil
}

// GetAll returns the import history, newest first.
func (r *GORMStockImportRepository) GetAll() ([]models.StockImport, error) {
	var rows []models.StockImport
	if err := r.db.Order("import_date DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, e.Persistence("failed to get stock import history", err)
	}
	return rows, nil
}
