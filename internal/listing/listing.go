// Package listing filters and sorts ledger rows in memory. Every function is
// pure: inputs are never modified and sort state is passed explicitly.
package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"
)

type SortField string

const (
	SortByBrand       SortField = "brand"
	SortByProductType SortField = "product_type"
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByQuantity    SortField = "quantity"
	SortByPrice       SortField = "price"
)

// Sort selects a field and direction. The zero value sorts by date, newest first.
type Sort struct {
	Field     SortField
	Ascending bool
}

// Filter narrows a listing. Empty fields are ignored. The date window only
// applies when both days are set and covers StartDay 00:00 through the end of
// EndDay in the days' own location.
type Filter struct {
	Brand       string
	ProductType string
	StartDay    time.Time
	EndDay      time.Time
	MinAmount   *float64
	MaxAmount   *float64
}

func (f Filter) window() (int64, int64, bool) {
	if f.StartDay.IsZero() || f.EndDay.IsZero() {
		return 0, 0, false
	}
	start := startOfDay(f.StartDay)
	end := startOfDay(f.EndDay).AddDate(0, 0, 1)
	return start.UnixMilli(), end.UnixMilli(), true
}

func (f Filter) match(brand, productType string, date int64, amount float64) bool {
	if f.Brand != "" && !containsFold(brand, f.Brand) {
		return false
	}
	if f.ProductType != "" && !containsFold(productType, f.ProductType) {
		return false
	}
	if start, end, ok := f.window(); ok && (date < start || date >= end) {
		return false
	}
	if f.MinAmount != nil && amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && amount > *f.MaxAmount {
		return false
	}
	return true
}

func FilterTransactions(list []model.Transaction, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(list))
	for _, tx := range list {
		if f.match(tx.Brand, tx.ProductType, tx.TransactionDate, tx.Amount) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterStockItems applies the amount bounds to the lot's purchase price.
func FilterStockItems(list []model.StockItem, f Filter) []model.StockItem {
	out := make([]model.StockItem, 0, len(list))
	for _, item := range list {
		if f.match(item.Brand, item.ProductType, item.StockDate, item.PurchasePrice) {
			out = append(out, item)
		}
	}
	return out
}

// SortTransactions returns a stably sorted copy. Price sorts by amount and
// quantity falls back to date since sales carry no lot quantity.
func SortTransactions(list []model.Transaction, s Sort) []model.Transaction {
	out := append([]model.Transaction(nil), list...)
	less := func(a, b model.Transaction) bool {
		switch s.Field {
		case SortByBrand:
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		case SortByProductType:
			return strings.ToLower(a.ProductType) < strings.ToLower(b.ProductType)
		case SortByAmount, SortByPrice:
			return a.Amount < b.Amount
		default:
			return a.TransactionDate < b.TransactionDate
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// SortStockItems returns a stably sorted copy. Amount sorts by purchase price.
func SortStockItems(list []model.StockItem, s Sort) []model.StockItem {
	out := append([]model.StockItem(nil), list...)
	less := func(a, b model.StockItem) bool {
		switch s.Field {
		case SortByBrand:
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		case SortByProductType:
			return strings.ToLower(a.ProductType) < strings.ToLower(b.ProductType)
		case SortByQuantity:
			return a.Quantity < b.Quantity
		case SortByPrice, SortByAmount:
			return a.PurchasePrice < b.PurchasePrice
		default:
			return a.StockDate < b.StockDate
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// ParseSortField maps a query value onto a known field, defaulting to date.
func ParseSortField(v string) SortField {
	switch f := SortField(strings.ToLower(strings.TrimSpace(v))); f {
	case SortByBrand, SortByProductType, SortByDate, SortByAmount, SortByQuantity, SortByPrice:
		return f
	case "producttype", "type":
		return SortByProductType
	case "purchase_price":
		return SortByPrice
	}
	return SortByDate
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
