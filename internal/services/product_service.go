package services

import (
	"stockroom/internal/dto"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/pkg/e"

	"github.com/sirupsen/logrus"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	cache        StockCache
	log          *logrus.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, cache StockCache, log *logrus.Logger) *ProductService {
	if cache == nil {
		cache = NoopStockCache{}
	}
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cache:        cache,
		log:          log,
	}
}

// GetAllProducts retrieves all products with their category names.
func (s *ProductService) GetAllProducts() ([]dto.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, e.Wrap("get products", err)
	}
	return dto.FromProducts(products), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*dto.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, e.Wrap("get product", err)
	}
	if product == nil {
		return nil, e.NotFoundf("product with ID %d", id)
	}
	out := dto.FromProduct(*product)
	return &out, nil
}

// CreateProduct validates the request and stores a new product.
func (s *ProductService) CreateProduct(req dto.ProductRequest) (*dto.Product, error) {
	if err := dto.ValidateProduct(req); err != nil {
		s.log.WithError(err).Warn("rejected product")
		return nil, err
	}
	category, err := s.requireCategory(req.CategoryID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	dto.ApplyProductRequest(&product, req)
	if err := s.repo.Create(&product); err != nil {
		s.log.WithError(err).Error("failed to create product")
		return nil, e.Wrap("create product", err)
	}
	s.cache.Invalidate()

	product.Category = *category
	s.log.WithFields(logrus.Fields{"product_id": product.ID, "name": product.Name}).Info("product created")
	out := dto.FromProduct(product)
	return &out, nil
}

// UpdateProduct replaces the editable fields of an existing product.
func (s *ProductService) UpdateProduct(id uint, req dto.ProductRequest) (*dto.Product, error) {
	if err := dto.ValidateProduct(req); err != nil {
		s.log.WithError(err).Warn("rejected product")
		return nil, err
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, e.Wrap("update product", err)
	}
	if product == nil {
		return nil, e.NotFoundf("product with ID %d", id)
	}
	category, err := s.requireCategory(req.CategoryID)
	if err != nil {
		return nil, err
	}

	dto.ApplyProductRequest(product, req)
	if err := s.repo.Update(product); err != nil {
		s.log.WithError(err).WithField("product_id", id).Error("failed to update product")
		return nil, e.Wrap("update product", err)
	}
	s.cache.Invalidate()

	product.Category = *category
	s.log.WithField("product_id", id).Info("product updated")
	out := dto.FromProduct(*product)
	return &out, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return e.Wrap("delete product", err)
	}
	s.cache.Invalidate()
	s.log.WithField("product_id", id).Info("product deleted")
	return nil
}

func (s *ProductService) requireCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, e.Wrap("resolve category", err)
	}
	if category == nil {
		return nil, &dto.ValidationError{Fields: map[string]string{
			"categoryId": "category does not exist",
		}}
	}
	return category, nil
}
