package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/internal/repository"
	"github.com/doguscu/barcode-scanner/internal/ws"

	"go.uber.org/zap"
)

const exportFileLayout = "20060102_150405"

type TransferService interface {
	Export(w io.Writer) (*ExportSummary, error)
	ExportWorkbook(w io.Writer) (*ExportSummary, error)
	Validate(r io.Reader) (*ImportPreview, error)
	Import(r io.Reader, replaceExisting bool) (*ImportSummary, error)
	ExportFileName() string
	WorkbookFileName() string
}

type ExportSummary struct {
	ExportDate   int64 `json:"exportDate"`
	StockItems   int   `json:"stockItems"`
	Transactions int   `json:"transactions"`
	ScanResults  int   `json:"scanResults"`
}

func (s ExportSummary) Message() string {
	return fmt.Sprintf("Data exported successfully.\nStock: %d records\nTransactions: %d records\nScans: %d records",
		s.StockItems, s.Transactions, s.ScanResults)
}

// ImportPreview describes a parsed document before anything is written.
type ImportPreview struct {
	Version      string `json:"version"`
	ExportDate   int64  `json:"exportDate"`
	StockItems   int    `json:"stockItems"`
	Transactions int    `json:"transactions"`
	ScanResults  int    `json:"scanResults"`
}

type ImportSummary struct {
	ImportedStocks       int `json:"importedStocks"`
	ImportedTransactions int `json:"importedTransactions"`
	ImportedScans        int `json:"importedScans"`
	SkippedItems         int `json:"skippedItems"`
}

func (s ImportSummary) Message() string {
	return fmt.Sprintf("Import completed.\nStock: %d\nTransactions: %d\nScans: %d\nSkipped: %d",
		s.ImportedStocks, s.ImportedTransactions, s.ImportedScans, s.SkippedItems)
}

type transferService struct {
	stockRepo repository.StockItemRepository
	txRepo    repository.TransactionRepository
	scanRepo  repository.ScanResultRepository
	notifRepo repository.NotificationRepository
	inventory InventoryService
	wsHub     *ws.Hub
	logger    *zap.Logger
	now       Clock
	loc       *time.Location
}

func NewTransferService(
	stockRepo repository.StockItemRepository,
	txRepo repository.TransactionRepository,
	scanRepo repository.ScanResultRepository,
	notifRepo repository.NotificationRepository,
	inventory InventoryService,
	hub *ws.Hub,
	logger *zap.Logger,
	now Clock,
	loc *time.Location,
) TransferService {
	return &transferService{
		stockRepo: stockRepo,
		txRepo:    txRepo,
		scanRepo:  scanRepo,
		notifRepo: notifRepo,
		inventory: inventory,
		wsHub:     hub,
		logger:    logger,
		now:       now,
		loc:       loc,
	}
}

func (s *transferService) snapshot() (*model.ExportData, error) {
	stocks, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("read stock items: %w", err)
	}
	transactions, err := s.txRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	scans, err := s.scanRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("read scan results: %w", err)
	}

	if stocks == nil {
		stocks = []model.StockItem{}
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	if scans == nil {
		scans = []model.ScanResult{}
	}
	return &model.ExportData{
		Version:      model.ExportVersion,
		ExportDate:   model.EpochMillis(s.now()),
		StockItems:   stocks,
		Transactions: transactions,
		ScanResults:  scans,
	}, nil
}

// Export builds the whole document in memory and writes it in one call, so
// a failure never leaves a partial document behind.
func (s *transferService) Export(w io.Writer) (*ExportSummary, error) {
	data, err := s.snapshot()
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		return nil, err
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}

	summary := &ExportSummary{
		ExportDate:   data.ExportDate,
		StockItems:   len(data.StockItems),
		Transactions: len(data.Transactions),
		ScanResults:  len(data.ScanResults),
	}
	s.logger.Info("ledger exported",
		zap.Int("stock_items", summary.StockItems),
		zap.Int("transactions", summary.Transactions),
		zap.Int("scan_results", summary.ScanResults),
	)
	return summary, nil
}

func (s *transferService) parse(r io.Reader) (*model.ExportData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read failed: %v", ErrInvalidDocument, err)
	}

	var data *model.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: invalid file format", ErrInvalidDocument)
	}
	return data, nil
}

// Validate parses the document without touching the store.
func (s *transferService) Validate(r io.Reader) (*ImportPreview, error) {
	data, err := s.parse(r)
	if err != nil {
		return nil, err
	}
	return &ImportPreview{
		Version:      data.Version,
		ExportDate:   data.ExportDate,
		StockItems:   len(data.StockItems),
		Transactions: len(data.Transactions),
		ScanResults:  len(data.ScanResults),
	}, nil
}

// Import loads a document. With replaceExisting every table, notifications
// included, is cleared first. Otherwise stock lots whose barcode already
// exists are skipped. Rows get fresh IDs and a failing row is counted as
// skipped without stopping the import.
func (s *transferService) Import(r io.Reader, replaceExisting bool) (*ImportSummary, error) {
	data, err := s.parse(r)
	if err != nil {
		return nil, err
	}

	if replaceExisting {
		if err := s.clearAll(); err != nil {
			s.logger.Error("import failed while clearing tables", zap.Error(err))
			return nil, err
		}
	}

	summary := &ImportSummary{}

	for _, item := range data.StockItems {
		if !replaceExisting {
			exists, err := s.stockRepo.ExistsByBarcode(item.Barcode)
			if err != nil || exists {
				summary.SkippedItems++
				continue
			}
		}
		item.ID = 0
		if err := s.inventory.InsertStockItem(&item); err != nil {
			summary.SkippedItems++
			continue
		}
		summary.ImportedStocks++
	}

	for _, tx := range data.Transactions {
		if !tx.TransactionType.Valid() {
			s.logger.Warn("skipping transaction with unknown type", zap.String("type", string(tx.TransactionType)))
			summary.SkippedItems++
			continue
		}
		tx.ID = 0
		if err := s.txRepo.Create(&tx); err != nil {
			summary.SkippedItems++
			continue
		}
		summary.ImportedTransactions++
	}

	for _, scanResult := range data.ScanResults {
		scanResult.ID = 0
		if err := s.scanRepo.Create(&scanResult); err != nil {
			summary.SkippedItems++
			continue
		}
		summary.ImportedScans++
	}

	s.logger.Info("ledger imported",
		zap.Bool("replace", replaceExisting),
		zap.Int("stock_items", summary.ImportedStocks),
		zap.Int("transactions", summary.ImportedTransactions),
		zap.Int("scan_results", summary.ImportedScans),
		zap.Int("skipped", summary.SkippedItems),
	)
	s.wsHub.Publish(ws.Event{
		Type:    ws.TypeDataImport,
		Action:  "data_imported",
		Data:    summary,
		Message: summary.Message(),
	})
	return summary, nil
}

func (s *transferService) clearAll() error {
	if err := s.stockRepo.Clear(); err != nil {
		return fmt.Errorf("clear stock items: %w", err)
	}
	if err := s.txRepo.Clear(); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if err := s.scanRepo.Clear(); err != nil {
		return fmt.Errorf("clear scan results: %w", err)
	}
	if err := s.notifRepo.Clear(); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

func (s *transferService) ExportFileName() string {
	return "barcode_data_" + s.now().In(s.loc).Format(exportFileLayout) + ".json"
}

func (s *transferService) WorkbookFileName() string {
	return "barcode_data_" + s.now().In(s.loc).Format(exportFileLayout) + ".xlsx"
}
