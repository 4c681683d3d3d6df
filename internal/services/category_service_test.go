package services_test

import (
	"testing"

	"stockroom/internal/dto"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	"stockroom/pkg/e"
	"stockroom/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService() (*services.CategoryService, *repositories.MemoryCategoryRepository, *repositories.MemoryProductRepository) {
	categories := repositories.NewMemoryCategoryRepository()
	products := repositories.NewMemoryProductRepository(categories)
	return services.NewCategoryService(categories, products, nil, logger.Discard()), categories, products
}

func TestCategoryService_GetAllCategories_SumsQuantities(t *testing.T) {
	service, categories, products := newCategoryService()

	cpu := &models.Category{Name: "CPU"}
	mouse := &models.Category{Name: "Mouse"}
	require.NoError(t, categories.Create(cpu))
	require.NoError(t, categories.Create(mouse))
	require.NoError(t, products.Create(&models.Product{Name: "i5", Price: decimal.NewFromInt(200), Quantity: 3, CategoryID: cpu.ID}))
	require.NoError(t, products.Create(&models.Product{Name: "i7", Price: decimal.NewFromInt(300), Quantity: 4, CategoryID: cpu.ID}))

	list, err := service.GetAllCategories()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, dto.Category{ID: cpu.ID, Name: "CPU", Quantity: 7}, list[0])
	assert.Equal(t, 0, list[1].Quantity)

	one, err := service.GetCategoryByID(cpu.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, one.Quantity)

	_, err = service.GetCategoryByID(99)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCategoryService_CreateAndUpdate(t *testing.T) {
	service, _, _ := newCategoryService()

	created, err := service.CreateCategory(dto.CategoryRequest{Name: "GPU", Description: "Graphics"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := service.UpdateCategory(created.ID, dto.CategoryRequest{Name: "Graphics cards"})
	require.NoError(t, err)
	assert.Equal(t, "Graphics cards", updated.Name)
	assert.Empty(t, updated.Description)

	_, err = service.UpdateCategory(99, dto.CategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = service.CreateCategory(dto.CategoryRequest{Name: ""})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	service, categories, products := newCategoryService()

	cpu := &models.Category{Name: "CPU"}
	empty := &models.Category{Name: "HDD"}
	require.NoError(t, categories.Create(cpu))
	require.NoError(t, categories.Create(empty))
	require.NoError(t, products.Create(&models.Product{Name: "i5", Price: decimal.NewFromInt(200), Quantity: 3, CategoryID: cpu.ID}))

	err := service.DeleteCategory(cpu.ID)
	assert.ErrorIs(t, err, e.ErrConflict)
	still, _ := categories.GetByID(cpu.ID)
	assert.NotNil(t, still)

	assert.NoError(t, service.DeleteCategory(empty.ID))
	assert.ErrorIs(t, service.DeleteCategory(empty.ID), e.ErrNotFound)
}
