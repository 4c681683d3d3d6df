package services

import (
	"stockroom/internal/dto"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/pkg/e"

	"github.com/sirupsen/logrus"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo        repositories.CategoryRepository
	productRepo repositories.ProductRepository
	cache       StockCache
	log         *logrus.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, productRepo repositories.ProductRepository, cache StockCache, log *logrus.Logger) *CategoryService {
	if cache == nil {
		cache = NoopStockCache{}
	}
	return &CategoryService{
		repo:        repo,
		productRepo: productRepo,
		cache:       cache,
		log:         log,
	}
}

// GetAllCategories lists categories with the total stock of their products.
func (s *CategoryService) GetAllCategories() ([]dto.Category, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		return nil, e.Wrap("get categories", err)
	}
	totals, err := s.productRepo.QuantityByCategory()
	if err != nil {
		return nil, e.Wrap("get categories", err)
	}

	out := make([]dto.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.FromCategory(c, totals[c.ID]))
	}
	return out, nil
}

func (s *CategoryService) GetCategoryByID(id uint) (*dto.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, e.Wrap("get category", err)
	}
	if category == nil {
		return nil, e.NotFoundf("category with ID %d", id)
	}
	return s.withQuantity(*category)
}

func (s *CategoryService) CreateCategory(req dto.CategoryRequest) (*dto.Category, error) {
	if err := dto.Validate(req); err != nil {
		s.log.WithError(err).Warn("rejected category")
		return nil, err
	}

	var category models.Category
	dto.ApplyCategoryRequest(&category, req)
	if err := s.repo.Create(&category); err != nil {
		s.log.WithError(err).Error("failed to create category")
		return nil, e.Wrap("create category", err)
	}

	s.log.WithFields(logrus.Fields{"category_id": category.ID, "name": category.Name}).Info("category created")
	out := dto.FromCategory(category, 0)
	return &out, nil
}

func (s *CategoryService) UpdateCategory(id uint, req dto.CategoryRequest) (*dto.Category, error) {
	if err := dto.Validate(req); err != nil {
		s.log.WithError(err).Warn("rejected category")
		return nil, err
	}

	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, e.Wrap("update category", err)
	}
	if category == nil {
		return nil, e.NotFoundf("category with ID %d", id)
	}

	dto.ApplyCategoryRequest(category, req)
	if err := s.repo.Update(category); err != nil {
		s.log.WithError(err).WithField("category_id", id).Error("failed to update category")
		return nil, e.Wrap("update category", err)
	}
	s.cache.Invalidate()

	s.log.WithField("category_id", id).Info("category updated")
	return s.withQuantity(*category)
}

// DeleteCategory removes a category that no product references.
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return e.Wrap("delete category", err)
	}
	if category == nil {
		return e.NotFoundf("category with ID %d", id)
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return e.Wrap("delete category", err)
	}
	if count > 0 {
		s.log.WithFields(logrus.Fields{"category_id": id, "products": count}).Warn("refusing to delete category in use")
		return e.Conflictf("category %s is used by %d product(s)", category.Name, count)
	}

	if err := s.repo.Delete(id); err != nil {
		return e.Wrap("delete category", err)
	}
	s.log.WithField("category_id", id).Info("category deleted")
	return nil
}

func (s *CategoryService) withQuantity(c models.Category) (*dto.Category, error) {
	totals, err := s.productRepo.QuantityByCategory()
	if err != nil {
		return nil, e.Wrap("sum category stock", err)
	}
	out := dto.FromCategory(c, totals[c.ID])
	return &out, nil
}
