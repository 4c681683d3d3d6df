package dto

import (
	"strings"
	"time"

	"stockroom/internal/models"
)

// FromProduct maps a stored product. The category must be loaded for CategoryName to be set.
func FromProduct(p models.Product) Product {
	return Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		CategoryID:   p.CategoryID,
		CategoryName: p.Category.Name,
	}
}

func FromProducts(products []models.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

// ApplyProductRequest copies the editable fields of req onto p.
func ApplyProductRequest(p *models.Product, req ProductRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.Quantity = req.Quantity
	p.CategoryID = req.CategoryID
}

func FromCategory(c models.Category, quantity int) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Quantity:    quantity,
	}
}

func ApplyCategoryRequest(c *models.Category, req CategoryRequest) {
	c.Name = req.Name
	c.Description = req.Description
}

func ToStock(p models.Product) Stock {
	return Stock{
		ProductID:    p.ID,
		ProductName:  p.Name,
		CategoryName: p.Category.Name,
		Quantity:     p.Quantity,
		Price:        p.Price,
	}
}

func FromStockImport(s models.StockImport) StockImportHistory {
	return StockImportHistory{
		ID:          s.ID,
		BatchID:     s.BatchID,
		ImportDate:  s.ImportDate.UTC().Format(time.RFC3339),
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Categories:  s.CategoryList(),
		Price:       s.Price,
		Quantity:    s.Quantity,
		Status:      s.Status,
	}
}

func FromStockImports(rows []models.StockImport) []StockImportHistory {
	out := make([]StockImportHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromStockImport(r))
	}
	return out
}

// JoinCategories renders category names the way import history stores them.
func JoinCategories(names []string) string {
	trimmed := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			trimmed = append(trimmed, n)
		}
	}
	return strings.Join(trimmed, ",")
}
