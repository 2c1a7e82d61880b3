package model

const ExportVersion = "1.0"

// ExportData is the snapshot envelope written by export and read by import.
// Notifications are not part of it.
type ExportData struct {
	Version      string        `json:"version"`
	ExportDate   int64         `json:"exportDate"`
	StockItems   []StockItem   `json:"stockItems"`
	Transactions []Transaction `json:"transactions"`
	ScanResults  []ScanResult  `json:"scanResults"`
}
