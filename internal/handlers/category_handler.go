package handlers

import (
	"stockroom/internal/dto"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
	log     *logrus.Logger
}

func NewCategoryHandler(service *services.CategoryService, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		log:     log,
	}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, "Invalid ID", err)
	}
	category, err := h.service.GetCategoryByID(id)
	if err != nil {
		return respondError(c, h.log, "Could not retrieve category", err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	category, err := h.service.CreateCategory(req)
	if err != nil {
		return respondError(c, h.log, "Could not create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, "Invalid ID", err)
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	category, err := h.service.UpdateCategory(id, req)
	if err != nil {
		return respondError(c, h.log, "Could not update category", err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory answers 409 while products still reference the category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.log, "Invalid ID", err)
	}
	if err := h.service.DeleteCategory(id); err != nil {
		return respondError(c, h.log, "Could not delete category", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
