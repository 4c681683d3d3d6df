package handlers

import (
	"stockroom/internal/dto"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DiscountHandler exposes basket discount calculation.
type DiscountHandler struct {
	service *services.DiscountService
	log     *logrus.Logger
}

func NewDiscountHandler(service *services.DiscountService, log *logrus.Logger) *DiscountHandler {
	return &DiscountHandler{
		service: service,
		log:     log,
	}
}

func (h *DiscountHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/discount/calculate", h.HandleCalculateDiscount)
}

// HandleCalculateDiscount takes a JSON array of basket items. An empty basket is rejected.
func (h *DiscountHandler) HandleCalculateDiscount(c *fiber.Ctx) error {
	var items []dto.BasketItem
	if err := c.BodyParser(&items); err != nil {
		return badBody(c, err)
	}
	if len(items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Basket cannot be empty",
		})
	}

	result, err := h.service.CalculateDiscount(items)
	if err != nil {
		return respondError(c, h.log, "Could not calculate discount", err)
	}
	return c.JSON(result)
}
