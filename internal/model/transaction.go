package model

type TransactionType string

// Stored values are kept as written by the shop's mobile app so existing
// export files import unchanged.
const (
	TxSale       TransactionType = "Satış"
	TxStockEntry TransactionType = "Stok Girdisi"
)

func (t TransactionType) Valid() bool {
	return t == TxSale || t == TxStockEntry
}

const (
	ProductTypeGlass   = "Cam"
	ProductTypeFrame   = "Çerçeve"
	ProductTypeLens    = "Lens"
	ProductTypeGeneral = "Genel"
)

// ProductTypes lists the product types offered on stock entry.
var ProductTypes = []string{ProductTypeGlass, ProductTypeFrame, ProductTypeLens}

// Transaction is one ledger row: a sale or a stock entry. Rows are never
// deleted one by one, only cleared in bulk.
type Transaction struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Brand           string          `gorm:"not null" json:"brand"`
	ProductType     string          `gorm:"not null" json:"productType"`
	TransactionType TransactionType `gorm:"not null" json:"transactionType"`
	Amount          float64         `gorm:"not null" json:"amount"`
	Barcode         string          `gorm:"not null" json:"barcode"`
	TransactionDate int64           `gorm:"not null" json:"transactionDate"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PurchasePrice   float64         `gorm:"not null" json:"purchasePrice"`

	// Date mirrors TransactionDate in export documents.
	Date int64 `gorm:"-" json:"date"`
}

func (Transaction) TableName() string {
	return "transactions"
}
