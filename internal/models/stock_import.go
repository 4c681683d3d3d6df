package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Import statuses recorded per applied stock import record.
const (
	ImportStatusCreated = "created"
	ImportStatusUpdated = "updated"
)

// StockImport is one applied stock import record. Rows written by the same
// import call share a BatchID.
type StockImport struct {
	ID          uint            `gorm:"primaryKey"`
	BatchID     string          `gorm:"type:varchar(36);not null;index"`
	ImportDate  time.Time       `gorm:"not null;index"`
	ProductID   uint            `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(100);not null"`
	Categories  string          `gorm:"type:varchar(1000)"` // comma separated
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	Status      string          `gorm:"type:varchar(100);not null"`
}

// CategoryList splits the stored category names.
func (s StockImport) CategoryList() []string {
	if s.Categories == "" {
		return []string{}
	}
	parts := strings.Split(s.Categories, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
