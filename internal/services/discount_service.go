package services

import (
	"fmt"
	"strings"

	"stockroom/internal/dto"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/pkg/e"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const noDiscountDescription = "No discount applied"

// categoryDiscountRate is taken off the first line of every category with two or more lines.
var categoryDiscountRate = decimal.RequireFromString("0.05")

// BasketLine is a resolved basket item: the product as currently stored and the requested quantity.
type BasketLine struct {
	Product  models.Product
	Quantity int
}

// CalculateBasketDiscount applies the category discount rule to resolved basket lines.
// Lines are grouped by category in input order; a group of two or more lines
// gets 5% off its first line, rounded to cents.
func CalculateBasketDiscount(lines []BasketLine) dto.BasketDiscount {
	total := decimal.Zero
	groups := make(map[uint][]BasketLine)
	var order []uint

	for _, l := range lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))

		id := l.Product.CategoryID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], l)
	}

	discount := decimal.Zero
	discounts := []dto.CategoryDiscount{}
	var parts []string

	for _, id := range order {
		group := groups[id]
		if len(group) < 2 {
			continue
		}
		first := group[0]
		amount := first.Product.Price.
			Mul(decimal.NewFromInt(int64(first.Quantity))).
			Mul(categoryDiscountRate).
			Round(2)

		discount = discount.Add(amount)
		discounts = append(discounts, dto.CategoryDiscount{
			CategoryID:   id,
			CategoryName: first.Product.Category.Name,
			ProductID:    first.Product.ID,
			Amount:       amount,
		})
		parts = append(parts, fmt.Sprintf("5%% off first %s", first.Product.Category.Name))
	}

	description := noDiscountDescription
	if len(parts) > 0 {
		description = strings.Join(parts, ", ")
	}

	return dto.BasketDiscount{
		TotalBeforeDiscount: total,
		TotalAfterDiscount:  total.Sub(discount),
		DiscountAmount:      discount,
		DiscountApplied:     discount.GreaterThan(decimal.Zero),
		Description:         description,
		Discounts:           discounts,
	}
}

// DiscountService prices baskets against the current catalog. It never changes stock.
type DiscountService struct {
	productRepo repositories.ProductRepository
	log         *logrus.Logger
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(productRepo repositories.ProductRepository, log *logrus.Logger) *DiscountService {
	return &DiscountService{
		productRepo: productRepo,
		log:         log,
	}
}

// CalculateDiscount resolves every basket item and computes totals and discounts.
func (s *DiscountService) CalculateDiscount(items []dto.BasketItem) (*dto.BasketDiscount, error) {
	if err := dto.ValidateBasket(items); err != nil {
		s.log.WithError(err).Warn("rejected basket")
		return nil, err
	}

	lines := make([]BasketLine, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			s.log.WithError(err).WithField("product_id", item.ProductID).Error("failed to load basket product")
			return nil, e.Wrap("calculate discount", err)
		}
		if product == nil {
			return nil, e.NotFoundf("product with ID %d", item.ProductID)
		}
		if product.Quantity < item.Quantity {
			return nil, e.InsufficientStockf("insufficient stock for product %s (requested: %d, available: %d)",
				product.Name, item.Quantity, product.Quantity)
		}
		lines = append(lines, BasketLine{Product: *product, Quantity: item.Quantity})
	}

	result := CalculateBasketDiscount(lines)
	s.log.WithFields(logrus.Fields{
		"lines":    len(lines),
		"total":    result.TotalBeforeDiscount.StringFixed(2),
		"discount": result.DiscountAmount.StringFixed(2),
	}).Info("basket discount calculated")

	return &result, nil
}
