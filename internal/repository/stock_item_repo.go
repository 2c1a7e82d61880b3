package repository

import (
	"errors"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/pkg/database"

	"gorm.io/gorm"
)

type StockItemRepository interface {
	Create(item *model.StockItem) error
	FindAll() ([]model.StockItem, error)
	FindByID(id int64) (*model.StockItem, error)
	FindByBarcode(barcode string) (*model.StockItem, error)
	ExistsByBarcode(barcode string) (bool, error)
	Update(item *model.StockItem) (bool, error)
	Delete(id int64) (bool, error)
	Clear() error
}

type stockItemRepo struct {
	store *database.Store
}

func NewStockItemRepo(store *database.Store) StockItemRepository {
	return &stockItemRepo{store}
}

// Create inserts the lot and sets its store-assigned ID.
func (r *stockItemRepo) Create(item *model.StockItem) error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Create(item).Error
	})
}

func (r *stockItemRepo) FindAll() ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.store.DB().Order("stock_date DESC").Order("id DESC").Find(&items).Error
	return items, err
}

// FindByID returns nil when no lot has the given ID.
func (r *stockItemRepo) FindByID(id int64) (*model.StockItem, error) {
	var item model.StockItem
	err := r.store.DB().First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByBarcode returns the most recently dated lot for the barcode: the
// latest historical snapshot, not a canonical current record. Nil when absent.
func (r *stockItemRepo) FindByBarcode(barcode string) (*model.StockItem, error) {
	var item model.StockItem
	err := r.store.DB().
		Where("barcode = ?", barcode).
		Order("stock_date DESC").
		Order("id DESC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *stockItemRepo) ExistsByBarcode(barcode string) (bool, error) {
	var count int64
	err := r.store.DB().Model(&model.StockItem{}).Where("barcode = ?", barcode).Count(&count).Error
	return count > 0, err
}

// Update overwrites the editable columns of the lot identified by item.ID.
func (r *stockItemRepo) Update(item *model.StockItem) (bool, error) {
	var affected int64
	err := r.store.Write(func(db *gorm.DB) error {
		res := db.Model(&model.StockItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"brand":          item.Brand,
				"purchase_price": item.PurchasePrice,
				"quantity":       item.Quantity,
				"product_type":   item.ProductType,
			})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *stockItemRepo) Delete(id int64) (bool, error) {
	var affected int64
	err := r.store.Write(func(db *gorm.DB) error {
		res := db.Delete(&model.StockItem{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *stockItemRepo) Clear() error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.StockItem{}).Error
	})
}
