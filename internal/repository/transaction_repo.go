package repository

import (
	"errors"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/pkg/database"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindRecent(limit int) ([]model.Transaction, error)
	FindByType(txType model.TransactionType) ([]model.Transaction, error)
	FindLatestByBarcode(barcode string, txType model.TransactionType) (*model.Transaction, error)
	ProductTypeByBarcode(barcode string) (string, error)
	Update(tx *model.Transaction) (bool, error)
	Clear() error

	SumAmount(txType model.TransactionType, rng *DateRange) (float64, error)
	CountByType(txType model.TransactionType, rng *DateRange) (int64, error)
	CountByProductType(txType model.TransactionType, productType string) (int64, error)
	NetUnitsByProductType() ([]ProductTypeBalance, error)
}

// DateRange is the half-open interval [Start, End) in epoch milliseconds.
type DateRange struct {
	Start int64
	End   int64
}

// ProductTypeBalance is stock entries minus sales recorded for one product type.
type ProductTypeBalance struct {
	ProductType string `json:"product_type"`
	Entries     int64  `json:"entries"`
	Sales       int64  `json:"sales"`
	Balance     int64  `json:"balance"`
}

type transactionRepo struct {
	store *database.Store
}

func NewTransactionRepo(store *database.Store) TransactionRepository {
	return &transactionRepo{store}
}

func (r *transactionRepo) Create(tx *model.Transaction) error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Create(tx).Error
	})
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	return r.FindRecent(0)
}

// FindRecent returns newest first. A limit of zero or less returns every row.
func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	q := r.store.DB().Order("transaction_date DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&transactions).Error
	return withExportDate(transactions), err
}

func (r *transactionRepo) FindByType(txType model.TransactionType) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.store.DB().
		Where("transaction_type = ?", txType).
		Order("transaction_date DESC").
		Order("id DESC").
		Find(&transactions).Error
	return withExportDate(transactions), err
}

// FindLatestByBarcode returns the most recently dated row for the barcode,
// restricted to txType unless it is empty. Nil when absent.
func (r *transactionRepo) FindLatestByBarcode(barcode string, txType model.TransactionType) (*model.Transaction, error) {
	var tx model.Transaction
	q := r.store.DB().Where("barcode = ?", barcode)
	if txType != "" {
		q = q.Where("transaction_type = ?", txType)
	}
	err := q.Order("transaction_date DESC").Order("id DESC").First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	tx.Date = tx.TransactionDate
	return &tx, nil
}

// ProductTypeByBarcode resolves the product type from the latest ledger row
// for the barcode. Empty when the barcode has no history.
func (r *transactionRepo) ProductTypeByBarcode(barcode string) (string, error) {
	tx, err := r.FindLatestByBarcode(barcode, "")
	if err != nil || tx == nil {
		return "", err
	}
	return tx.ProductType, nil
}

func (r *transactionRepo) Update(tx *model.Transaction) (bool, error) {
	var affected int64
	err := r.store.Write(func(db *gorm.DB) error {
		res := db.Model(&model.Transaction{}).
			Where("id = ?", tx.ID).
			Updates(map[string]interface{}{
				"brand":            tx.Brand,
				"product_type":     tx.ProductType,
				"amount":           tx.Amount,
				"purchase_price":   tx.PurchasePrice,
				"transaction_date": tx.TransactionDate,
				"quantity":         tx.Quantity,
			})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *transactionRepo) Clear() error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Transaction{}).Error
	})
}

// SumAmount totals the amount of every row of txType. A nil range covers all time.
func (r *transactionRepo) SumAmount(txType model.TransactionType, rng *DateRange) (float64, error) {
	var total float64
	err := r.scoped(txType, rng).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *transactionRepo) CountByType(txType model.TransactionType, rng *DateRange) (int64, error) {
	var count int64
	err := r.scoped(txType, rng).Count(&count).Error
	return count, err
}

func (r *transactionRepo) CountByProductType(txType model.TransactionType, productType string) (int64, error) {
	var count int64
	err := r.scoped(txType, nil).Where("product_type = ?", productType).Count(&count).Error
	return count, err
}

func (r *transactionRepo) NetUnitsByProductType() ([]ProductTypeBalance, error) {
	var results []ProductTypeBalance

	rows, err := r.store.DB().Model(&model.Transaction{}).
		Select(`
			product_type,
			COALESCE(SUM(CASE WHEN transaction_type = ? THEN 1 ELSE 0 END), 0) as entries,
			COALESCE(SUM(CASE WHEN transaction_type = ? THEN 1 ELSE 0 END), 0) as sales
		`, model.TxStockEntry, model.TxSale).
		Group("product_type").
		Order("product_type ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b ProductTypeBalance
		if err := rows.Scan(&b.ProductType, &b.Entries, &b.Sales); err != nil {
			return nil, err
		}
		b.Balance = b.Entries - b.Sales
		results = append(results, b)
	}
	return results, rows.Err()
}

func (r *transactionRepo) scoped(txType model.TransactionType, rng *DateRange) *gorm.DB {
	q := r.store.DB().Model(&model.Transaction{}).Where("transaction_type = ?", txType)
	if rng != nil {
		q = q.Where("transaction_date >= ? AND transaction_date < ?", rng.Start, rng.End)
	}
	return q
}

func withExportDate(transactions []model.Transaction) []model.Transaction {
	for i := range transactions {
		transactions[i].Date = transactions[i].TransactionDate
	}
	return transactions
}
