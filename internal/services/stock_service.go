package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"stockroom/internal/dto"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/pkg/e"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StockImportedRoutingKey is the routing key of the event published after an import.
const StockImportedRoutingKey = "stock.imported"

const autoProductDescription = "Auto-created product from stock import"

// StockImportedEvent is the body of the stock.imported event.
type StockImportedEvent struct {
	BatchID    string    `json:"batchId"`
	ImportedAt time.Time `json:"importedAt"`
	Records    int       `json:"records"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	ProductIDs []uint    `json:"productIds"`
}

// StockService upserts catalog state from stock import records and serves the stock listing.
type StockService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	importRepo   repositories.StockImportRepository
	cache        StockCache
	publisher    EventPublisher
	log          *logrus.Logger
	now          func() time.Time
}

// NewStockService creates a new StockService. cache and publisher may be nil.
func NewStockService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.CategoryRepository,
	importRepo repositories.StockImportRepository,
	cache StockCache,
	publisher EventPublisher,
	log *logrus.Logger,
) *StockService {
	if cache == nil {
		cache = NoopStockCache{}
	}
	return &StockService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		importRepo:   importRepo,
		cache:        cache,
		publisher:    publisher,
		log:          log,
		now:          time.Now,
	}
}

// ImportStock applies the records in order. Each record is persisted before the
// next one is read, so later records see earlier ones. The first failing write
// stops the import; records already applied stay applied.
func (s *StockService) ImportStock(records []dto.StockImportRecord) ([]dto.Product, error) {
	if err := dto.ValidateStockImport(records); err != nil {
		s.log.WithError(err).Warn("rejected stock import")
		return nil, err
	}

	batchID := uuid.NewString()
	importedAt := s.now().UTC()
	log := s.log.WithField("batch_id", batchID)

	results := make([]dto.Product, 0, len(records))
	event := StockImportedEvent{BatchID: batchID, ImportedAt: importedAt, Records: len(records), ProductIDs: []uint{}}

	for i, record := range records {
		product, status, err := s.applyRecord(record)
		if err != nil {
			// Earlier records changed the catalog already.
			s.cache.Invalidate()
			log.WithError(err).WithField("record", i).Error("stock import aborted")
			return nil, e.Wrap(fmt.Sprintf("import record %d (%s)", i, record.Name), err)
		}

		history := &models.StockImport{
			BatchID:     batchID,
			ImportDate:  importedAt,
			ProductID:   product.ID,
			ProductName: product.Name,
			Categories:  dto.JoinCategories(record.Categories),
			Price:       record.Price,
			Quantity:    record.Quantity,
			Status:      status,
		}
		if err := s.importRepo.Create(history); err != nil {
			s.cache.Invalidate()
			log.WithError(err).WithField("record", i).Error("stock import aborted")
			return nil, e.Wrap(fmt.Sprintf("record import history %d (%s)", i, record.Name), err)
		}

		if status == models.ImportStatusCreated {
			event.Created++
		} else {
			event.Updated++
		}
		event.ProductIDs = append(event.ProductIDs, product.ID)
		results = append(results, dto.FromProduct(*product))

		log.WithFields(logrus.Fields{
			"product_id": product.ID,
			"name":       product.Name,
			"status":     status,
		}).Debug("stock record applied")
	}

	s.cache.Invalidate()
	log.WithFields(logrus.Fields{"created": event.Created, "updated": event.Updated}).Info("stock import completed")

	if len(records) > 0 {
		s.publishImported(event)
	}
	return results, nil
}

func (s *StockService) applyRecord(record dto.StockImportRecord) (*models.Product, string, error) {
	var primary *models.Category
	for _, name := range record.Categories {
		category, err := s.findOrCreateCategory(strings.TrimSpace(name))
		if err != nil {
			return nil, "", err
		}
		if primary == nil {
			primary = category
		}
	}

	product, err := s.productRepo.FindByName(record.Name)
	if err != nil {
		return nil, "", err
	}

	if product != nil {
		product.Price = record.Price
		product.Quantity = record.Quantity
		product.CategoryID = primary.ID
		if err := s.productRepo.Update(product); err != nil {
			return nil, "", err
		}
		product.Category = *primary
		return product, models.ImportStatusUpdated, nil
	}

	product = &models.Product{
		Name:        record.Name,
		Description: autoProductDescription,
		Price:       record.Price,
		Quantity:    record.Quantity,
		CategoryID:  primary.ID,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, "", err
	}
	product.Category = *primary
	return product, models.ImportStatusCreated, nil
}

func (s *StockService) findOrCreateCategory(name string) (*models.Category, error) {
	category, err := s.categoryRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if category != nil {
		return category, nil
	}

	category = &models.Category{
		Name:        name,
		Description: fmt.Sprintf("Auto-created category for %s", name),
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"category_id": category.ID, "name": name}).Info("category auto-created")
	return category, nil
}

func (s *StockService) publishImported(event StockImportedEvent) {
	if s.publisher == nil {
		s.log.Debug("event publisher is not configured, skipping stock.imported")
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.log.WithError(err).Error("failed to marshal stock.imported event")
		return
	}
	if err := s.publisher.Publish(StockImportedRoutingKey, body); err != nil {
		s.log.WithError(err).WithField("batch_id", event.BatchID).Warn("failed to publish stock.imported event")
		return
	}
	s.log.WithField("batch_id", event.BatchID).Info("published stock.imported event")
}

// GetStock lists every product with its category, ordered by category name then product name.
func (s *StockService) GetStock() ([]dto.Stock, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, e.Wrap("get stock", err)
	}

	stock := make([]dto.Stock, 0, len(products))
	for _, p := range products {
		stock = append(stock, dto.ToStock(p))
	}
	sort.SliceStable(stock, func(i, j int) bool {
		a, b := stock[i], stock[j]
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		return a.ProductName < b.ProductName
	})

	s.cache.Set(stock)
	return stock, nil
}

// GetImportHistory lists applied import records, newest first.
func (s *StockService) GetImportHistory() ([]dto.StockImportHistory, error) {
	rows, err := s.importRepo.GetAll()
	if err != nil {
		return nil, e.Wrap("get import history", err)
	}
	return dto.FromStockImports(rows), nil
}
