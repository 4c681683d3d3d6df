package dto_test

import (
	"strings"
	"testing"

	"stockroom/internal/dto"
	"stockroom/pkg/e"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() dto.ProductRequest {
	return dto.ProductRequest{
		Name:        "Intel Core i9-13900K",
		Description: "24 cores",
		Price:       decimal.RequireFromString("589.99"),
		Quantity:    10,
		CategoryID:  2,
	}
}

func TestValidateProduct_Valid(t *testing.T) {
	assert.NoError(t, dto.ValidateProduct(validProduct()))
}

func TestValidateProduct_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.ProductRequest)
		field  string
	}{
		{"blank name", func(r *dto.ProductRequest) { r.Name = "   " }, "name"},
		{"long name", func(r *dto.ProductRequest) { r.Name = strings.Repeat("x", 101) }, "name"},
		{"long description", func(r *dto.ProductRequest) { r.Description = strings.Repeat("x", 501) }, "description"},
		{"zero price", func(r *dto.ProductRequest) { r.Price = decimal.Zero }, "price"},
		{"negative price", func(r *dto.ProductRequest) { r.Price = decimal.NewFromInt(-1) }, "price"},
		{"price too high", func(r *dto.ProductRequest) { r.Price = decimal.RequireFromString("100000") }, "price"},
		{"three decimals", func(r *dto.ProductRequest) { r.Price = decimal.RequireFromString("10.005") }, "price"},
		{"negative quantity", func(r *dto.ProductRequest) { r.Quantity = -1 }, "quantity"},
		{"quantity too high", func(r *dto.ProductRequest) { r.Quantity = 10001 }, "quantity"},
		{"missing category", func(r *dto.ProductRequest) { r.CategoryID = 0 }, "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProduct()
			tt.mutate(&req)

			err := dto.ValidateProduct(req)
			require.Error(t, err)
			assert.ErrorIs(t, err, e.ErrInvalidInput)

			var verr *dto.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidateProduct_BoundariesAccepted(t *testing.T) {
	req := validProduct()
	req.Price = decimal.RequireFromString("99999.99")
	req.Quantity = 10000
	assert.NoError(t, dto.ValidateProduct(req))

	req.Price = decimal.RequireFromString("0.01")
	req.Quantity = 0
	assert.NoError(t, dto.ValidateProduct(req))

	req.Price = decimal.RequireFromString("12.50")
	assert.NoError(t, dto.ValidateProduct(req))
}

func TestValidateStockImport(t *testing.T) {
	records := []dto.StockImportRecord{
		{Name: "Intel i9", Categories: []string{"CPU"}, Price: decimal.RequireFromString("499.99"), Quantity: 5},
		{Name: "", Categories: []string{}, Price: decimal.Zero, Quantity: -3},
		{Name: "RTX 4090", Categories: []string{"GPU", " "}, Price: decimal.RequireFromString("1599.00"), Quantity: 1},
	}

	err := dto.ValidateStockImport(records)
	require.Error(t, err)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "[1].name")
	assert.Contains(t, verr.Fields, "[1].categories")
	assert.Contains(t, verr.Fields, "[1].price")
	assert.Contains(t, verr.Fields, "[1].quantity")
	assert.Contains(t, verr.Fields, "[2].categories[1]")
	assert.NotContains(t, verr.Fields, "[0].name")
}

func TestValidateBasket(t *testing.T) {
	assert.NoError(t, dto.ValidateBasket([]dto.BasketItem{{ProductID: 1, Quantity: 1}}))
	assert.NoError(t, dto.ValidateBasket(nil))

	err := dto.ValidateBasket([]dto.BasketItem{{ProductID: 0, Quantity: 0}})
	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "[0].productId")
	assert.Contains(t, verr.Fields, "[0].quantity")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.CategoryRequest{Name: "CPU", Description: "Central Processing Unit"}))

	err := dto.Validate(dto.CategoryRequest{Name: ""})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}
