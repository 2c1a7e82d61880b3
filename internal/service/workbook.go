package service

import (
	"fmt"
	"io"

	"github.com/doguscu/barcode-scanner/internal/model"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	sheetStock        = "Stock"
	sheetTransactions = "Transactions"
	sheetScans        = "Scans"
	dateTimeLayout    = "2006-01-02 15:04"
)

// ExportWorkbook writes the same snapshot as Export as an xlsx file with one
// sheet per table. Dates are rendered in the shop's time zone.
func (s *transferService) ExportWorkbook(w io.Writer) (*ExportSummary, error) {
	data, err := s.snapshot()
	if err != nil {
		s.logger.Error("workbook export failed", zap.Error(err))
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetStock); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetTransactions, sheetScans} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	stockRows := [][]interface{}{{"ID", "Barcode", "Brand", "Product Type", "Purchase Price", "Quantity", "Stock Date"}}
	for _, item := range data.StockItems {
		stockRows = append(stockRows, []interface{}{
			item.ID, item.Barcode, item.Brand, item.ProductType, item.PurchasePrice, item.Quantity, s.formatDate(item.StockDate),
		})
	}

	txRows := [][]interface{}{{"ID", "Type", "Barcode", "Brand", "Product Type", "Amount", "Quantity", "Purchase Price", "Date"}}
	for _, tx := range data.Transactions {
		txRows = append(txRows, []interface{}{
			tx.ID, string(tx.TransactionType), tx.Barcode, tx.Brand, tx.ProductType, tx.Amount, tx.Quantity, tx.PurchasePrice, s.formatDate(tx.TransactionDate),
		})
	}

	scanRows := [][]interface{}{{"ID", "Barcode", "Brand", "Sale Price", "Scan Date"}}
	for _, sr := range data.ScanResults {
		scanRows = append(scanRows, []interface{}{
			sr.ID, sr.Barcode, sr.Brand, sr.SalePrice, s.formatDate(sr.ScanDate),
		})
	}

	for sheet, rows := range map[string][][]interface{}{
		sheetStock:        stockRows,
		sheetTransactions: txRows,
		sheetScans:        scanRows,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return &ExportSummary{
		ExportDate:   data.ExportDate,
		StockItems:   len(data.StockItems),
		Transactions: len(data.Transactions),
		ScanResults:  len(data.ScanResults),
	}, nil
}

func (s *transferService) formatDate(ms int64) string {
	return model.FromEpochMillis(ms, s.loc).Format(dateTimeLayout)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
