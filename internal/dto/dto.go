// Package dto holds the JSON request and response shapes of the API and the
// conversions between them and the store models.
package dto

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductRequest is the body of product create and update.
type ProductRequest struct {
	Name        string          `json:"name" validate:"notblank,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,lte=99999.99"`
	Quantity    int             `json:"quantity" validate:"gte=0,lte=10000"`
	CategoryID  uint            `json:"categoryId" validate:"gte=1"`
}

// Product is a product as returned by the API.
type Product struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
}

// CategoryRequest is the body of category create and update.
type CategoryRequest struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Category is a category as returned by the API. Quantity is the total stock
// of the products in the category.
type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// StockImportRecord is one line of a stock import.
type StockImportRecord struct {
	Name       string          `json:"name" validate:"notblank,max=100"`
	Categories []string        `json:"categories" validate:"required,min=1,dive,notblank,max=100"`
	Price      decimal.Decimal `json:"price" validate:"gt=0,lte=99999.99"`
	Quantity   int             `json:"quantity" validate:"gte=0,lte=10000"`
}

// Stock is one row of the stock listing.
type Stock struct {
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	CategoryName string          `json:"categoryName"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// StockImportHistory is one applied import record.
type StockImportHistory struct {
	ID          uint            `json:"id"`
	BatchID     string          `json:"batchId"`
	ImportDate  string          `json:"importDate"`
	ProductID   uint            `json:"productId"`
	ProductName string          `json:"productName"`
	Categories  []string        `json:"categories"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Status      string          `json:"status"`
}

// BasketItem is one basket line submitted for discount calculation.
type BasketItem struct {
	ProductID uint `json:"productId" validate:"gte=1"`
	Quantity  int  `json:"quantity" validate:"gte=1"`
}

// CategoryDiscount is the discount granted to one category group.
type CategoryDiscount struct {
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	ProductID    uint            `json:"productId"`
	Amount       decimal.Decimal `json:"amount"`
}

// BasketDiscount is the result of a discount calculation.
type BasketDiscount struct {
	TotalBeforeDiscount decimal.Decimal    `json:"totalBeforeDiscount"`
	TotalAfterDiscount  decimal.Decimal    `json:"totalAfterDiscount"`
	DiscountAmount      decimal.Decimal    `json:"discountAmount"`
	DiscountApplied     bool               `json:"discountApplied"`
	Description         string             `json:"description"`
	Discounts           []CategoryDiscount `json:"discounts"`
}
