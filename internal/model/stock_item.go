package model

// StockItem is one purchase lot. Barcodes are not unique: a barcode may be
// restocked many times and each restock is its own lot.
type StockItem struct {
	ID            int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Barcode       string  `gorm:"not null" json:"barcode"`
	Brand         string  `gorm:"not null" json:"brand"`
	PurchasePrice float64 `gorm:"not null" json:"purchasePrice"`
	StockDate     int64   `gorm:"not null" json:"stockDate"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	ProductType   string  `gorm:"not null" json:"productType"`
}

func (StockItem) TableName() string {
	return "stock_items"
}
