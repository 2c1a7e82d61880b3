package service

import (
	"fmt"

	"github.com/doguscu/barcode-scanner/internal/listing"
	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/internal/repository"
	"github.com/doguscu/barcode-scanner/internal/scan"
	"github.com/doguscu/barcode-scanner/internal/ws"
	"github.com/doguscu/barcode-scanner/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InventoryService interface {
	RecordStockEntry(req *StockEntryRequest) (*StockEntryResult, error)
	RecordSale(req *SaleRequest) (*SaleResult, error)
	UpdateStockItem(id int64, req *StockUpdateRequest) (*model.StockItem, error)
	DeleteStockItem(id int64) error
	InsertStockItem(item *model.StockItem) error

	GetStockByBarcode(barcode string) (*model.StockItem, error)
	ListStockItems(f listing.Filter, s listing.Sort) ([]model.StockItem, error)
	ListSales(f listing.Filter, s listing.Sort) ([]model.Transaction, error)
	ListTransactions(limit int) ([]model.Transaction, error)
	ListScanResults() ([]model.ScanResult, error)
	DeleteScanResult(id int64) error
	ProductTypeCounts() (*ProductTypeCounts, error)
}

type StockEntryRequest struct {
	Barcode       string      `json:"barcode" validate:"notblank"`
	Format        scan.Format `json:"format"`
	Brand         string      `json:"brand" validate:"notblank"`
	PurchasePrice *float64    `json:"purchasePrice" validate:"required,gte=0"`
	Quantity      int         `json:"quantity" validate:"gt=0"`
	ProductType   string      `json:"productType" validate:"notblank"`
}

type SaleRequest struct {
	Barcode   string      `json:"barcode" validate:"notblank"`
	Format    scan.Format `json:"format"`
	SalePrice *float64    `json:"salePrice" validate:"required,gte=0"`
}

// StockUpdateRequest edits a lot. Every field is required, as on entry.
type StockUpdateRequest struct {
	Brand         string   `json:"brand" validate:"notblank"`
	PurchasePrice *float64 `json:"purchasePrice" validate:"required,gte=0"`
	Quantity      *int     `json:"quantity" validate:"required,gt=0"`
	ProductType   string   `json:"productType" validate:"notblank"`
}

type StockEntryResult struct {
	StockItem   *model.StockItem   `json:"stockItem"`
	Transaction *model.Transaction `json:"transaction"`
}

type SaleResult struct {
	Transaction *model.Transaction `json:"transaction"`
	ScanResult  *model.ScanResult  `json:"scanResult"`
}

// ProductTypeCounts sums lot quantities per product type.
type ProductTypeCounts struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type inventoryService struct {
	store     *database.Store
	stockRepo repository.StockItemRepository
	txRepo    repository.TransactionRepository
	scanRepo  repository.ScanResultRepository
	notifier  NotificationService
	wsHub     *ws.Hub
	logger    *zap.Logger
	now       Clock
}

func NewInventoryService(
	store *database.Store,
	stockRepo repository.StockItemRepository,
	txRepo repository.TransactionRepository,
	scanRepo repository.ScanResultRepository,
	notifier NotificationService,
	hub *ws.Hub,
	logger *zap.Logger,
	now Clock,
) InventoryService {
	return &inventoryService{
		store:     store,
		stockRepo: stockRepo,
		txRepo:    txRepo,
		scanRepo:  scanRepo,
		notifier:  notifier,
		wsHub:     hub,
		logger:    logger,
		now:       now,
	}
}

func (s *inventoryService) RecordStockEntry(req *StockEntryRequest) (*StockEntryResult, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}
	barcode, err := scan.Normalize(scan.Code{Value: req.Barcode, Format: req.Format})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := model.EpochMillis(s.now())
	item := &model.StockItem{
		Barcode:       barcode,
		Brand:         req.Brand,
		PurchasePrice: *req.PurchasePrice,
		StockDate:     now,
		Quantity:      req.Quantity,
		ProductType:   req.ProductType,
	}

	// 2. Lot and ledger entry are written together. Amount is the unit purchase price
	tx := &model.Transaction{
		Brand:           item.Brand,
		ProductType:     item.ProductType,
		TransactionType: model.TxStockEntry,
		Amount:          item.PurchasePrice,
		Barcode:         item.Barcode,
		TransactionDate: now,
		Quantity:        item.Quantity,
		PurchasePrice:   item.PurchasePrice,
	}
	err = s.store.WriteTx(func(db *gorm.DB) error {
		if err := db.Create(item).Error; err != nil {
			return err
		}
		return db.Create(tx).Error
	})
	if err != nil {
		s.logger.Error("failed to record stock entry", zap.String("barcode", barcode), zap.Error(err))
		return nil, err
	}

	// 3. Low-stock check runs after commit
	s.checkLowStock(item)

	tx.Date = tx.TransactionDate

	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  "stock_entry_recorded",
		Data:    map[string]interface{}{"stockItem": item, "transaction": tx},
		Message: fmt.Sprintf("%s: %d adet stoğa eklendi", item.Brand, item.Quantity),
	})

	return &StockEntryResult{StockItem: item, Transaction: tx}, nil
}

// InsertStockItem stores a lot and runs the low-stock check on its quantity.
// A failing notifier is logged and does not undo the stock write.
func (s *inventoryService) InsertStockItem(item *model.StockItem) error {
	if err := s.stockRepo.Create(item); err != nil {
		s.logger.Error("failed to insert stock item", zap.String("barcode", item.Barcode), zap.Error(err))
		return err
	}
	s.checkLowStock(item)
	return nil
}

func (s *inventoryService) checkLowStock(item *model.StockItem) {
	if _, err := s.notifier.MaybeNotifyLowStock(item.Brand, item.Barcode, item.Quantity); err != nil {
		s.logger.Warn("low stock check failed", zap.String("barcode", item.Barcode), zap.Error(err))
	}
}

// RecordSale logs a sale against the latest lot for the barcode. Stock
// quantity is left untouched.
func (s *inventoryService) RecordSale(req *SaleRequest) (*SaleResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	barcode, err := scan.Normalize(scan.Code{Value: req.Barcode, Format: req.Format})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	stock, err := s.stockRepo.FindByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, barcode)
	}

	productType, err := s.txRepo.ProductTypeByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if productType == "" {
		productType = model.ProductTypeGeneral
	}

	now := model.EpochMillis(s.now())
	scanResult := &model.ScanResult{
		Barcode:   barcode,
		Brand:     stock.Brand,
		SalePrice: *req.SalePrice,
		ScanDate:  now,
	}
	tx := &model.Transaction{
		Brand:           stock.Brand,
		ProductType:     productType,
		TransactionType: model.TxSale,
		Amount:          *req.SalePrice,
		Barcode:         barcode,
		TransactionDate: now,
		Quantity:        1,
		PurchasePrice:   stock.PurchasePrice,
	}
	err = s.store.WriteTx(func(db *gorm.DB) error {
		if err := db.Create(scanResult).Error; err != nil {
			return err
		}
		return db.Create(tx).Error
	})
	if err != nil {
		s.logger.Error("failed to record sale", zap.String("barcode", barcode), zap.Error(err))
		return nil, err
	}
	tx.Date = tx.TransactionDate

	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  "sale_recorded",
		Data:    map[string]interface{}{"transaction": tx, "scanResult": scanResult},
		Message: fmt.Sprintf("%s satıldı: %.2f", stock.Brand, tx.Amount),
	})

	return &SaleResult{Transaction: tx, ScanResult: scanResult}, nil
}

// UpdateStockItem overwrites the lot, re-runs the low-stock check and mirrors
// brand, product type and price onto the latest stock entry for the barcode.
func (s *inventoryService) UpdateStockItem(id int64, req *StockUpdateRequest) (*model.StockItem, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.stockRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	oldQuantity := existing.Quantity
	existing.Brand = req.Brand
	existing.PurchasePrice = *req.PurchasePrice
	existing.Quantity = *req.Quantity
	existing.ProductType = req.ProductType

	ok, err := s.stockRepo.Update(existing)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	s.checkLowStock(existing)

	entry, err := s.txRepo.FindLatestByBarcode(existing.Barcode, model.TxStockEntry)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		entry.Brand = existing.Brand
		entry.Amount = existing.PurchasePrice
		entry.PurchasePrice = existing.PurchasePrice
		entry.ProductType = existing.ProductType
		if _, err := s.txRepo.Update(entry); err != nil {
			s.logger.Error("failed to sync stock entry transaction", zap.Int64("transaction_id", entry.ID), zap.Error(err))
			return nil, err
		}
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeStockUpdate,
		Action:  "stock_item_updated",
		Data:    map[string]interface{}{"stockItem": existing, "oldQuantity": oldQuantity},
		Message: fmt.Sprintf("%s güncellendi", existing.Brand),
	})

	return existing, nil
}

func (s *inventoryService) DeleteStockItem(id int64) error {
	ok, err := s.stockRepo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeStockUpdate,
		Action: "stock_item_deleted",
		Data:   map[string]interface{}{"id": id},
	})
	return nil
}

func (s *inventoryService) GetStockByBarcode(barcode string) (*model.StockItem, error) {
	code, err := scan.Normalize(scan.Code{Value: barcode})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	item, err := s.stockRepo.FindByBarcode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, code)
	}
	return item, nil
}

func (s *inventoryService) ListStockItems(f listing.Filter, srt listing.Sort) ([]model.StockItem, error) {
	items, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return listing.SortStockItems(listing.FilterStockItems(items, f), srt), nil
}

func (s *inventoryService) ListSales(f listing.Filter, srt listing.Sort) ([]model.Transaction, error) {
	sales, err := s.txRepo.FindByType(model.TxSale)
	if err != nil {
		return nil, err
	}
	return listing.SortTransactions(listing.FilterTransactions(sales, f), srt), nil
}

func (s *inventoryService) ListTransactions(limit int) ([]model.Transaction, error) {
	return s.txRepo.FindRecent(limit)
}

func (s *inventoryService) ListScanResults() ([]model.ScanResult, error) {
	return s.scanRepo.FindAll()
}

func (s *inventoryService) DeleteScanResult(id int64) error {
	ok, err := s.scanRepo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *inventoryService) ProductTypeCounts() (*ProductTypeCounts, error) {
	items, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}

	counts := &ProductTypeCounts{Counts: make(map[string]int, len(model.ProductTypes))}
	for _, pt := range model.ProductTypes {
		counts.Counts[pt] = 0
	}
	for _, item := range items {
		pt := item.ProductType
		if pt == "" {
			pt = model.ProductTypeGeneral
		}
		counts.Counts[pt] += item.Quantity
		counts.Total += item.Quantity
	}
	return counts, nil
}
