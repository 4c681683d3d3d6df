// Package parser reads stock import records from spreadsheets.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stockroom/internal/dto"
	"stockroom/pkg/e"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column layout of an import sheet.
const (
	colName = iota
	colCategories
	colPrice
	colQuantity
)

// ParseStockFile reads import records from the first sheet of an .xlsx file.
func ParseStockFile(path string) ([]dto.StockImportRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return parseSheet(f)
}

// ParseStock reads import records from an .xlsx document.
func ParseStock(r io.Reader) ([]dto.StockImportRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, e.InvalidInputf("not a readable xlsx document: %v", err)
	}
	defer f.Close()

	return parseSheet(f)
}

// ParseStockBytes is ParseStock over an in-memory upload.
func ParseStockBytes(data []byte) ([]dto.StockImportRecord, error) {
	return ParseStock(bytes.NewReader(data))
}

// parseSheet expects name | categories | price | quantity. A first row whose
// price cell is not a number is treated as a header. Blank rows are skipped.
func parseSheet(f *excelize.File) ([]dto.StockImportRecord, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, e.InvalidInputf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	start := 0
	if len(rows) > 0 && isHeader(rows[0]) {
		start = 1
	}

	records := make([]dto.StockImportRecord, 0, len(rows))
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		record, err := parseRow(row)
		if err != nil {
			// Spreadsheet rows are numbered from 1.
			return nil, e.InvalidInputf("row %d: %v", i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(row []string) (dto.StockImportRecord, error) {
	var record dto.StockImportRecord

	record.Name = strings.TrimSpace(cell(row, colName))
	record.Categories = splitCategories(cell(row, colCategories))

	priceStr := strings.TrimSpace(cell(row, colPrice))
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return record, fmt.Errorf("invalid price %q", priceStr)
	}
	record.Price = price

	qtyStr := strings.TrimSpace(cell(row, colQuantity))
	if qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return record, fmt.Errorf("invalid quantity %q", qtyStr)
		}
		record.Quantity = qty
	}
	return record, nil
}

func isHeader(row []string) bool {
	price := strings.TrimSpace(cell(row, colPrice))
	if price == "" {
		return false
	}
	_, err := decimal.NewFromString(price)
	return err != nil
}

func splitCategories(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
