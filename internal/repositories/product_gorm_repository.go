package repositories

import (
	"errors"
	"fmt"
	"time"

	"stockroom/internal/models"
	"stockroom/pkg/e"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products with their category, ordered by ID.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Category").Order("id").Find(&products).Error; err != nil {
		return nil, e.Persistence("failed to get all products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, e.Persistence(fmt.Sprintf("failed to get product by ID %d", id), err)
	}
	return &product, nil
}

// FindByName looks a product up by name, ignoring case.
func (r *GORMProductRepository) FindByName(name string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").
		Where("LOWER(name) = LOWER(?)", name).
		Order("id").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, e.Persistence(fmt.Sprintf("failed to find product %q", name), err)
	}
	return &product, nil
}

// CountByCategory returns how many products reference the category.
func (r *GORMProductRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, e.Persistence(fmt.Sprintf("failed to count products of category %d", categoryID), err)
	}
	return count, nil
}

// QuantityByCategory sums product quantities per category.
func (r *GORMProductRepository) QuantityByCategory() (map[uint]int, error) {
	var rows []struct {
		CategoryID uint
		Total      int
	}
	err := r.db.Model(&models.Product{}).
		Select("category_id, COALESCE(SUM(quantity), 0) AS total").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, e.Persistence("failed to sum quantities by category", err)
	}

	totals := make(map[uint]int, len(rows))
	for _, row := range rows {
		totals[row.CategoryID] = row.Total
	}
	return totals, nil
}

// Create inserts a new product. The category association is never written from here.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Omit(clause.Associations).Create(product).Error; err != nil {
		return e.Persistence("failed to create product", err)
	}
	return nil
}

// Update writes every editable column of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	product.UpdatedAt = time.Now()
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"quantity":    product.Quantity,
			"category_id": product.CategoryID,
			"updated_at":  product.UpdatedAt,
		})
	if res.Error != nil {
		return e.Persistence("failed to update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return e.NotFoundf("product with ID %d", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return e.Persistence("failed to delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return e.NotFoundf("product with ID %d", id)
	}
	return nil
}
