package handlers

import (
	"stockroom/internal/dto"
	"stockroom/internal/parser"
	"stockroom/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StockHandler serves the stock listing, stock imports and import history.
type StockHandler struct {
	service *services.StockService
	log     *logrus.Logger
}

func NewStockHandler(service *services.StockService, log *logrus.Logger) *StockHandler {
	return &StockHandler{
		service: service,
		log:     log,
	}
}

func (h *StockHandler) RegisterRoutes(router fiber.Router) {
	stockRoutes := router.Group("/stock")
	stockRoutes.Get("/", h.HandleGetStock)
	stockRoutes.Get("/history", h.HandleGetImportHistory)
	stockRoutes.Post("/import", h.HandleImportStock)
	stockRoutes.Post("/import/xlsx", h.HandleImportStockXLSX)
}

func (h *StockHandler) HandleGetStock(c *fiber.Ctx) error {
	stock, err := h.service.GetStock()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve stock", err)
	}
	return c.JSON(stock)
}

func (h *StockHandler) HandleGetImportHistory(c *fiber.Ctx) error {
	history, err := h.service.GetImportHistory()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve import history", err)
	}
	return c.JSON(history)
}

// HandleImportStock takes a JSON array of import records.
func (h *StockHandler) HandleImportStock(c *fiber.Ctx) error {
	var records []dto.StockImportRecord
	if err := c.BodyParser(&records); err != nil {
		return badBody(c, err)
	}
	return h.importRecords(c, records)
}

// HandleImportStockXLSX takes a spreadsheet in the multipart field "file".
func (h *StockHandler) HandleImportStockXLSX(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A spreadsheet is required in the 'file' field",
			"error":   err.Error(),
		})
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, h.log, "Could not read upload", err)
	}
	defer file.Close()

	records, err := parser.ParseStock(file)
	if err != nil {
		return respondError(c, h.log, "Could not parse spreadsheet", err)
	}
	h.log.WithFields(logrus.Fields{"file": header.Filename, "records": len(records)}).Info("spreadsheet parsed")

	return h.importRecords(c, records)
}

func (h *StockHandler) importRecords(c *fiber.Ctx, records []dto.StockImportRecord) error {
	if len(records) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No stock items provided",
		})
	}

	products, err := h.service.ImportStock(records)
	if err != nil {
		return respondError(c, h.log, "Failed to import stock", err)
	}
	return c.JSON(products)
}
