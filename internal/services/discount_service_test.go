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

func line(id, categoryID uint, category, price string, qty int) services.BasketLine {
	return services.BasketLine{
		Product: models.Product{
			ID:         id,
			Price:      decimal.RequireFromString(price),
			CategoryID: categoryID,
			Category:   models.Category{ID: categoryID, Name: category},
		},
		Quantity: qty,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestCalculateBasketDiscount(t *testing.T) {
	tests := []struct {
		name        string
		lines       []services.BasketLine
		before      string
		discount    string
		description string
	}{
		{
			name:        "empty basket",
			lines:       nil,
			before:      "0",
			discount:    "0",
			description: "No discount applied",
		},
		{
			name:        "single line never discounts",
			lines:       []services.BasketLine{line(1, 1, "CPU", "500", 1)},
			before:      "500",
			discount:    "0",
			description: "No discount applied",
		},
		{
			name: "two CPUs discount the first line",
			lines: []services.BasketLine{
				line(1, 1, "CPU", "500", 1),
				line(2, 1, "CPU", "400", 1),
			},
			before:      "900",
			discount:    "25",
			description: "5% off first CPU",
		},
		{
			name: "first line in input order, not cheapest",
			lines: []services.BasketLine{
				line(2, 1, "CPU", "400", 2),
				line(1, 1, "CPU", "500", 1),
				line(3, 1, "CPU", "100", 1),
			},
			before:      "1400",
			discount:    "40",
			description: "5% off first CPU",
		},
		{
			name: "one category per group",
			lines: []services.BasketLine{
				line(1, 1, "CPU", "500", 1),
				line(4, 2, "RAM", "80", 2),
				line(2, 1, "CPU", "400", 1),
				line(5, 2, "RAM", "60", 1),
				line(6, 3, "Mouse", "20", 1),
			},
			before:      "1140",
			discount:    "33",
			description: "5% off first CPU, 5% off first RAM",
		},
		{
			name: "repeated product lines stay independent",
			lines: []services.BasketLine{
				line(1, 1, "CPU", "500", 1),
				line(1, 1, "CPU", "500", 1),
			},
			before:      "1000",
			discount:    "25",
			description: "5% off first CPU",
		},
		{
			name: "discount rounds to cents",
			lines: []services.BasketLine{
				line(1, 1, "SSD", "19.99", 1),
				line(2, 1, "SSD", "5", 1),
			},
			before:      "24.99",
			discount:    "1",
			description: "5% off first SSD",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := services.CalculateBasketDiscount(tc.lines)

			assertDecimal(t, tc.before, got.TotalBeforeDiscount)
			assertDecimal(t, tc.discount, got.DiscountAmount)
			assert.True(t, got.TotalAfterDiscount.Equal(got.TotalBeforeDiscount.Sub(got.DiscountAmount)))
			assert.Equal(t, !got.DiscountAmount.IsZero(), got.DiscountApplied)
			assert.Equal(t, tc.description, got.Description)
		})
	}
}

func TestCalculateBasketDiscount_ReportsDiscountedLines(t *testing.T) {
	got := services.CalculateBasketDiscount([]services.BasketLine{
		line(1, 1, "CPU", "500", 1),
		line(2, 1, "CPU", "400", 1),
	})

	require.Len(t, got.Discounts, 1)
	assert.Equal(t, uint(1), got.Discounts[0].ProductID)
	assert.Equal(t, "CPU", got.Discounts[0].CategoryName)
	assertDecimal(t, "25", got.Discounts[0].Amount)
	assertDecimal(t, "875", got.TotalAfterDiscount)
}

func seedDiscountCatalog(t *testing.T) (*repositories.MemoryProductRepository, uint, uint) {
	t.Helper()
	categories := repositories.NewMemoryCategoryRepository()
	products := repositories.NewMemoryProductRepository(categories)

	cpu := &models.Category{Name: "CPU"}
	require.NoError(t, categories.Create(cpu))

	a := &models.Product{Name: "A", Price: decimal.NewFromInt(500), Quantity: 2, CategoryID: cpu.ID}
	b := &models.Product{Name: "B", Price: decimal.NewFromInt(400), Quantity: 1, CategoryID: cpu.ID}
	require.NoError(t, products.Create(a))
	require.NoError(t, products.Create(b))
	return products, a.ID, b.ID
}

func TestDiscountService_CalculateDiscount(t *testing.T) {
	products, a, b := seedDiscountCatalog(t)
	service := services.NewDiscountService(products, logger.Discard())

	got, err := service.CalculateDiscount([]dto.BasketItem{{ProductID: a, Quantity: 1}, {ProductID: b, Quantity: 1}})
	require.NoError(t, err)
	assertDecimal(t, "900", got.TotalBeforeDiscount)
	assertDecimal(t, "25", got.DiscountAmount)
	assertDecimal(t, "875", got.TotalAfterDiscount)
	assert.True(t, got.DiscountApplied)
	assert.Equal(t, "5% off first CPU", got.Description)
}

func TestDiscountService_Errors(t *testing.T) {
	products, a, b := seedDiscountCatalog(t)
	service := services.NewDiscountService(products, logger.Discard())

	_, err := service.CalculateDiscount([]dto.BasketItem{{ProductID: a, Quantity: 1}, {ProductID: 99, Quantity: 1}})
	assert.ErrorIs(t, err, e.ErrNotFound)

	_, err = service.CalculateDiscount([]dto.BasketItem{{ProductID: b, Quantity: 2}})
	assert.ErrorIs(t, err, e.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "requested: 2, available: 1")

	_, err = service.CalculateDiscount([]dto.BasketItem{{ProductID: a, Quantity: 0}})
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	// Stock is untouched by any calculation.
	stored, err := products.GetByID(b)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Quantity)
}

func TestDiscountService_EmptyBasket(t *testing.T) {
	products, _, _ := seedDiscountCatalog(t)
	service := services.NewDiscountService(products, logger.Discard())

	got, err := service.CalculateDiscount(nil)
	require.NoError(t, err)
	assert.True(t, got.TotalBeforeDiscount.IsZero())
	assert.False(t, got.DiscountApplied)
	assert.Equal(t, "No discount applied", got.Description)
	assert.Empty(t, got.Discounts)
}
