package listing

import (
	"testing"
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"
)

func sampleSales() []model.Transaction {
	return []model.Transaction{
		{ID: 1, Brand: "Ray-Ban", ProductType: model.ProductTypeFrame, TransactionType: model.TxSale, Amount: 850, TransactionDate: 300},
		{ID: 2, Brand: "police", ProductType: model.ProductTypeGlass, TransactionType: model.TxSale, Amount: 120, TransactionDate: 100},
		{ID: 3, Brand: "Oakley", ProductType: model.ProductTypeLens, TransactionType: model.TxSale, Amount: 850, TransactionDate: 200},
		{ID: 4, Brand: "Vogue", ProductType: model.ProductTypeFrame, TransactionType: model.TxSale, Amount: 40, TransactionDate: 400},
	}
}

func amounts(list []model.Transaction) []float64 {
	out := make([]float64, len(list))
	for i, tx := range list {
		out[i] = tx.Amount
	}
	return out
}

func TestSortByAmountAscendingIsReverseOfDescending(t *testing.T) {
	input := sampleSales()
	asc := amounts(SortTransactions(input, Sort{Field: SortByAmount, Ascending: true}))
	desc := amounts(SortTransactions(input, Sort{Field: SortByAmount, Ascending: false}))

	if len(asc) != len(desc) {
		t.Fatalf("length mismatch %d vs %d", len(asc), len(desc))
	}
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("asc %v is not the reverse of desc %v", asc, desc)
		}
	}
	for i := 1; i < len(asc); i++ {
		if asc[i-1] > asc[i] {
			t.Fatalf("not ascending: %v", asc)
		}
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	input := sampleSales()
	_ = SortTransactions(input, Sort{Field: SortByBrand, Ascending: true})
	if input[0].ID != 1 || input[3].ID != 4 {
		t.Fatalf("input reordered: %+v", input)
	}
}

func TestSortByBrandIgnoresCase(t *testing.T) {
	got := SortTransactions(sampleSales(), Sort{Field: SortByBrand, Ascending: true})
	want := []int64{3, 2, 1, 4}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, got[i].ID)
		}
	}
}

func TestDefaultSortIsNewestFirst(t *testing.T) {
	got := SortTransactions(sampleSales(), Sort{})
	if got[0].TransactionDate != 400 || got[3].TransactionDate != 100 {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestFilterTransactions(t *testing.T) {
	minAmount := 100.0
	got := FilterTransactions(sampleSales(), Filter{ProductType: "çerçeve", MinAmount: &minAmount})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only Ray-Ban frame sale, got %+v", got)
	}

	got = FilterTransactions(sampleSales(), Filter{Brand: "O"})
	if len(got) != 3 {
		t.Fatalf("expected police, Oakley and Vogue, got %+v", got)
	}
}

func TestFilterDateWindowCoversWholeEndDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	day := time.Date(2024, time.September, 20, 0, 0, 0, 0, loc)
	list := []model.StockItem{
		{ID: 1, Brand: "A", StockDate: day.Add(-time.Millisecond).UnixMilli()},
		{ID: 2, Brand: "A", StockDate: day.UnixMilli()},
		{ID: 3, Brand: "A", StockDate: day.Add(23*time.Hour + 59*time.Minute).UnixMilli()},
		{ID: 4, Brand: "A", StockDate: day.AddDate(0, 0, 1).UnixMilli()},
	}

	got := FilterStockItems(list, Filter{StartDay: day.Add(15 * time.Hour), EndDay: day})
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("expected lots 2 and 3, got %+v", got)
	}

	onlyStart := FilterStockItems(list, Filter{StartDay: day})
	if len(onlyStart) != len(list) {
		t.Fatal("window must be ignored unless both days are set")
	}
}

func TestSortStockItemsByQuantity(t *testing.T) {
	list := []model.StockItem{
		{ID: 1, Quantity: 5},
		{ID: 2, Quantity: 1},
		{ID: 3, Quantity: 3},
	}
	got := SortStockItems(list, Sort{Field: SortByQuantity, Ascending: true})
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestParseSortField(t *testing.T) {
	if ParseSortField("Brand") != SortByBrand {
		t.Fatal("brand not parsed")
	}
	if ParseSortField("purchase_price") != SortByPrice {
		t.Fatal("purchase_price alias not parsed")
	}
	if ParseSortField("bogus") != SortByDate {
		t.Fatal("unknown field must default to date")
	}
}
