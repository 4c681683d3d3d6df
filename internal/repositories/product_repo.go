package repositories

import (
	"stockroom/internal/models"
)

// ProductRepository defines the interface for product data access.
// Lookups return (nil, nil) when nothing matches.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	FindByName(name string) (*models.Product, error)
	CountByCategory(categoryID uint) (int64, error)
	QuantityByCategory() (map[uint]int, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}

// CategoryRepository defines the interface for category data access.
// Lookups return (nil, nil) when nothing matches.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
}

// StockImportRepository stores the history of applied stock import records.
type StockImportRepository interface {
	Create(record *models.StockImport) error
	GetAll() ([]models.StockImport, error)
}
