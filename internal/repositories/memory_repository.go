package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"stockroom/internal/models"
	"stockroom/pkg/e"
)

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	categories map[uint]models.Category
	nextID     uint
	mu         sync.RWMutex
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: make(map[uint]models.Category),
		nextID:     1,
	}
}

func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryCategoryRepository) GetByID(id uint) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemoryCategoryRepository) FindByName(name string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Category
	for _, c := range r.categories {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		if found == nil || c.ID < found.ID {
			c := c
			found = &c
		}
	}
	return found, nil
}

func (r *MemoryCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	category.ID = r.nextID
	category.CreatedAt = now
	category.UpdatedAt = now
	r.nextID++
	r.categories[category.ID] = *category
	return nil
}

func (r *MemoryCategoryRepository) Update(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[category.ID]
	if !ok {
		return e.NotFoundf("category with ID %d", category.ID)
	}
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now()
	r.categories[category.ID] = *category
	return nil
}

func (r *MemoryCategoryRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return e.NotFoundf("category with ID %d", id)
	}
	delete(r.categories, id)
	return nil
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Categories are resolved through the category repository on every read.
type MemoryProductRepository struct {
	products   map[uint]models.Product
	categories *MemoryCategoryRepository
	nextID     uint
	mu         sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository(categories *MemoryCategoryRepository) *MemoryProductRepository {
	return &MemoryProductRepository{
		products:   make(map[uint]models.Product),
		categories: categories,
		nextID:     1,
	}
}

func (r *MemoryProductRepository) withCategory(p models.Product) models.Product {
	p.Category = models.Category{}
	if c, _ := r.categories.GetByID(p.CategoryID); c != nil {
		p.Category = *c
	}
	return p
}

func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, r.withCategory(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	p = r.withCategory(p)
	return &p, nil
}

func (r *MemoryProductRepository) FindByName(name string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Product
	for _, p := range r.products {
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		if found == nil || p.ID < found.ID {
			p := r.withCategory(p)
			found = &p
		}
	}
	return found, nil
}

func (r *MemoryProductRepository) CountByCategory(categoryID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryProductRepository) QuantityByCategory() (map[uint]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[uint]int)
	for _, p := range r.products {
		totals[p.CategoryID] += p.Quantity
	}
	return totals, nil
}

func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.ID = r.nextID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.nextID++

	stored := *product
	stored.Category = models.Category{}
	r.products[product.ID] = stored
	return nil
}

func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return e.NotFoundf("product with ID %d", product.ID)
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()

	stored := *product
	stored.Category = models.Category{}
	r.products[product.ID] = stored
	return nil
}

func (r *MemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return e.NotFoundf("product with ID %d", id)
	}
	delete(r.products, id)
	return nil
}

// MemoryStockImportRepository is an in-memory implementation of StockImportRepository.
type MemoryStockImportRepository struct {
	rows   []models.StockImport
	nextID uint
	mu     sync.RWMutex
}

func NewMemoryStockImportRepository() *MemoryStockImportRepository {
	return &MemoryStockImportRepository{nextID: 1}
}

func (r *MemoryStockImportRepository) Create(record *models.StockImport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *record)
	return nil
}

func (r *MemoryStockImportRepository) GetAll() ([]models.StockImport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.StockImport, len(r.rows))
	copy(out, r.rows)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ImportDate.Equal(out[j].ImportDate) {
			return out[i].ImportDate.After(out[j].ImportDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
