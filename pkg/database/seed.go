package database

import (
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"

	"gorm.io/gorm"
)

// Seed fills an empty ledger with a small demo dataset dated September 2024.
// It returns false when the ledger already holds transactions. onLot, when
// set, is called for every inserted lot after the data is committed.
func Seed(s *Store, loc *time.Location, onLot func(item model.StockItem)) (bool, error) {
	var count int64
	if err := s.DB().Model(&model.Transaction{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	at := func(day, hour, minute int) int64 {
		return model.EpochMillis(time.Date(2024, time.September, day, hour, minute, 0, 0, loc))
	}

	transactions := []model.Transaction{
		{Brand: "Samsung", ProductType: model.ProductTypeFrame, TransactionType: model.TxSale, Amount: 850, Barcode: "1234567890123", TransactionDate: at(24, 14, 30), Quantity: 1},
		{Brand: "Apple", ProductType: model.ProductTypeGlass, TransactionType: model.TxSale, Amount: 1200, Barcode: "1234567890124", TransactionDate: at(23, 10, 15), Quantity: 1},
		{Brand: "Huawei", ProductType: model.ProductTypeFrame, TransactionType: model.TxStockEntry, Amount: 450, Barcode: "1234567890125", TransactionDate: at(20, 16, 45), Quantity: 1},
		{Brand: "Xiaomi", ProductType: model.ProductTypeGlass, TransactionType: model.TxSale, Amount: 675, Barcode: "1234567890126", TransactionDate: at(18, 11, 20), Quantity: 1},
		{Brand: "LG", ProductType: model.ProductTypeLens, TransactionType: model.TxStockEntry, Amount: 320, Barcode: "1234567890127", TransactionDate: at(15, 9, 10), Quantity: 1},
	}

	lots := []model.StockItem{
		{Barcode: "1234567890125", Brand: "Huawei", PurchasePrice: 450, StockDate: at(20, 16, 45), Quantity: 3, ProductType: model.ProductTypeFrame},
		{Barcode: "1234567890127", Brand: "LG", PurchasePrice: 320, StockDate: at(15, 9, 10), Quantity: 5, ProductType: model.ProductTypeFrame},
		{Barcode: "1234567890128", Brand: "Sony", PurchasePrice: 780, StockDate: at(22, 13, 25), Quantity: 2, ProductType: model.ProductTypeFrame},
		{Barcode: "1234567890129", Brand: "Nokia", PurchasePrice: 290, StockDate: at(17, 8, 45), Quantity: 4, ProductType: model.ProductTypeFrame},
		{Barcode: "1234567890130", Brand: "Oppo", PurchasePrice: 520, StockDate: at(14, 15, 30), Quantity: 1, ProductType: model.ProductTypeFrame},
	}

	err := s.WriteTx(func(tx *gorm.DB) error {
		for i := range transactions {
			if err := tx.Create(&transactions[i]).Error; err != nil {
				return err
			}
		}
		for i := range lots {
			if err := tx.Create(&lots[i]).Error; err != nil {
				return err
			}
			entry := model.Transaction{
				Brand:           lots[i].Brand,
				ProductType:     lots[i].ProductType,
				TransactionType: model.TxStockEntry,
				Amount:          lots[i].PurchasePrice,
				Barcode:         lots[i].Barcode,
				TransactionDate: lots[i].StockDate,
				Quantity:        1,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if onLot != nil {
		for _, lot := range lots {
			onLot(lot)
		}
	}
	return true, nil
}
