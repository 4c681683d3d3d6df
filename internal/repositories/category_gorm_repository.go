package repositories

import (
	"errors"
	"fmt"
	"time"

	"stockroom/internal/models"
	"stockroom/pkg/e"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, e.Persistence("failed to get all categories", err)
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, e.Persistence(fmt.Sprintf("failed to get category by ID %d", id), err)
	}
	return &category, nil
}

// FindByName looks a category up by name, ignoring case. The oldest match wins.
func (r *GORMCategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("LOWER(name) = LOWER(?)", name).Order("id").First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, e.Persistence(fmt.Sprintf("failed to find category %q", name), err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return e.Persistence("failed to create category", err)
	}
	return nil
}

func (r *GORMCategoryRepository) Update(category *models.Category) error {
	category.UpdatedAt = time.Now()
	res := r.db.Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"updated_at":  category.UpdatedAt,
		})
	if res.Error != nil {
		return e.Persistence("failed to update category", res.Error)
	}
	if res.RowsAffected == 0 {
		return e.NotFoundf("category with ID %d", category.ID)
	}
	return nil
}

func (r *GORMCategoryRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return e.Persistence("failed to delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return e.NotFoundf("category with ID %d", id)
	}
	return nil
}
