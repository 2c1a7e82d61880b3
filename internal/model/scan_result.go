package model

// ScanResult logs a completed sale scan for the recent-scans view.
type ScanResult struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Barcode   string  `gorm:"not null" json:"barcode"`
	Brand     string  `gorm:"not null" json:"brand"`
	SalePrice float64 `gorm:"not null" json:"salePrice"`
	ScanDate  int64   `gorm:"not null" json:"scanDate"`
}

func (ScanResult) TableName() string {
	return "scan_results"
}
