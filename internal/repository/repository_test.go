package repository

import (
	"testing"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/pkg/database"
)

func setupTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.ConnectDB(database.Config{
		Driver: database.DriverSQLite,
		DSN:    "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := database.Migrate(store); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStockItemFindByBarcodeReturnsLatestLot(t *testing.T) {
	repo := NewStockItemRepo(setupTestStore(t))

	lots := []model.StockItem{
		{Barcode: "8690001", Brand: "Ray-Ban", PurchasePrice: 400, StockDate: 1000, Quantity: 5},
		{Barcode: "8690001", Brand: "Ray-Ban", PurchasePrice: 450, StockDate: 3000, Quantity: 2},
		{Barcode: "8690001", Brand: "Ray-Ban", PurchasePrice: 420, StockDate: 2000, Quantity: 7},
		{Barcode: "8690002", Brand: "Police", PurchasePrice: 300, StockDate: 9000, Quantity: 1},
	}
	for i := range lots {
		if err := repo.Create(&lots[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
		if lots[i].ID == 0 {
			t.Fatal("expected store-assigned id")
		}
	}

	got, err := repo.FindByBarcode("8690001")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || got.StockDate != 3000 || got.PurchasePrice != 450 {
		t.Fatalf("expected lot dated 3000, got %+v", got)
	}

	missing, err := repo.FindByBarcode("nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown barcode, got %+v err=%v", missing, err)
	}

	all, _ := repo.FindAll()
	if len(all) != 4 || all[0].StockDate != 9000 {
		t.Fatalf("expected 4 lots newest first, got %+v", all)
	}
}

func TestStockItemUpdateAndDelete(t *testing.T) {
	repo := NewStockItemRepo(setupTestStore(t))

	item := &model.StockItem{Barcode: "1", Brand: "Oakley", PurchasePrice: 100, StockDate: 1, Quantity: 4}
	if err := repo.Create(item); err != nil {
		t.Fatalf("create: %v", err)
	}

	item.Brand = "Oakley Pro"
	item.Quantity = 0
	item.ProductType = model.ProductTypeFrame
	ok, err := repo.Update(item)
	if err != nil || !ok {
		t.Fatalf("expected update to affect a row, ok=%t err=%v", ok, err)
	}

	stored, _ := repo.FindByID(item.ID)
	if stored.Brand != "Oakley Pro" || stored.Quantity != 0 || stored.ProductType != model.ProductTypeFrame {
		t.Fatalf("update not persisted: %+v", stored)
	}

	ok, _ = repo.Update(&model.StockItem{ID: 999, Brand: "x"})
	if ok {
		t.Fatal("update of unknown id must report no rows affected")
	}

	ok, err = repo.Delete(item.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%t err=%v", ok, err)
	}
	if gone, _ := repo.FindByID(item.ID); gone != nil {
		t.Fatal("lot still present after delete")
	}
	if exists, _ := repo.ExistsByBarcode("1"); exists {
		t.Fatal("barcode still reported after delete")
	}
}

func TestTransactionAggregates(t *testing.T) {
	repo := NewTransactionRepo(setupTestStore(t))

	rows := []model.Transaction{
		{Brand: "A", ProductType: model.ProductTypeFrame, TransactionType: model.TxSale, Amount: 850, Barcode: "1", TransactionDate: 1500},
		{Brand: "B", ProductType: model.ProductTypeGlass, TransactionType: model.TxSale, Amount: 150, Barcode: "2", TransactionDate: 2500},
		{Brand: "A", ProductType: model.ProductTypeFrame, TransactionType: model.TxStockEntry, Amount: 450, Barcode: "1", TransactionDate: 1200},
		{Brand: "C", ProductType: model.ProductTypeFrame, TransactionType: model.TxStockEntry, Amount: 50, Barcode: "3", TransactionDate: 2000},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	sales, err := repo.SumAmount(model.TxSale, nil)
	if err != nil || sales != 1000 {
		t.Fatalf("expected all-time sales 1000, got %v err=%v", sales, err)
	}

	rng := &DateRange{Start: 1000, End: 2000}
	inRange, _ := repo.SumAmount(model.TxStockEntry, rng)
	if inRange != 450 {
		t.Fatalf("range end must be exclusive, got %v", inRange)
	}
	count, _ := repo.CountByType(model.TxSale, rng)
	if count != 1 {
		t.Fatalf("expected 1 sale in range, got %d", count)
	}

	empty, err := repo.SumAmount(model.TxSale, &DateRange{Start: 10, End: 20})
	if err != nil || empty != 0 {
		t.Fatalf("expected 0 for empty range, got %v err=%v", empty, err)
	}

	frames, err := repo.CountByProductType(model.TxStockEntry, model.ProductTypeFrame)
	if err != nil || frames != 2 {
		t.Fatalf("expected 2 frame entries, got %d err=%v", frames, err)
	}

	balances, err := repo.NetUnitsByProductType()
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	byType := map[string]ProductTypeBalance{}
	for _, b := range balances {
		byType[b.ProductType] = b
	}
	if byType[model.ProductTypeFrame].Balance != 1 || byType[model.ProductTypeGlass].Balance != -1 {
		t.Fatalf("unexpected balances %+v", balances)
	}
}

func TestTransactionLatestByBarcode(t *testing.T) {
	repo := NewTransactionRepo(setupTestStore(t))

	rows := []model.Transaction{
		{Brand: "A", ProductType: model.ProductTypeLens, TransactionType: model.TxStockEntry, Amount: 10, Barcode: "77", TransactionDate: 100},
		{Brand: "A", ProductType: model.ProductTypeFrame, TransactionType: model.TxSale, Amount: 20, Barcode: "77", TransactionDate: 300},
		{Brand: "A", ProductType: model.ProductTypeGlass, TransactionType: model.TxStockEntry, Amount: 15, Barcode: "77", TransactionDate: 200},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	pt, _ := repo.ProductTypeByBarcode("77")
	if pt != model.ProductTypeFrame {
		t.Fatalf("expected product type of latest row, got %q", pt)
	}
	entry, _ := repo.FindLatestByBarcode("77", model.TxStockEntry)
	if entry == nil || entry.Amount != 15 || entry.Date != 200 {
		t.Fatalf("expected latest stock entry, got %+v", entry)
	}
	if pt, _ := repo.ProductTypeByBarcode("unknown"); pt != "" {
		t.Fatalf("expected empty product type, got %q", pt)
	}

	recent, _ := repo.FindRecent(2)
	if len(recent) != 2 || recent[0].TransactionDate != 300 {
		t.Fatalf("unexpected recent %+v", recent)
	}

	entry.Amount = 99
	entry.Brand = "B"
	if ok, err := repo.Update(entry); err != nil || !ok {
		t.Fatalf("update: ok=%t err=%v", ok, err)
	}
	updated, _ := repo.FindLatestByBarcode("77", model.TxStockEntry)
	if updated.Amount != 99 || updated.Brand != "B" {
		t.Fatalf("update not persisted %+v", updated)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, _ := repo.FindAll()
	if len(all) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(all))
	}
}

func TestNotificationUnreadLifecycle(t *testing.T) {
	repo := NewNotificationRepo(setupTestStore(t))

	barcode := "555"
	first := &model.Notification{Title: "t", Message: "m", Type: model.NotificationLowStock, RelatedBarcode: &barcode, CreatedDate: 1}
	second := &model.Notification{Title: "t", Message: "m", Type: model.NotificationInfo, CreatedDate: 2}
	for _, n := range []*model.Notification{first, second} {
		if err := repo.Create(n); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	has, _ := repo.HasUnread(model.NotificationLowStock, barcode)
	if !has {
		t.Fatal("expected unread low-stock notification")
	}
	if n, _ := repo.CountUnread(); n != 2 {
		t.Fatalf("expected 2 unread, got %d", n)
	}

	if ok, _ := repo.MarkRead(first.ID); !ok {
		t.Fatal("mark read affected nothing")
	}
	if has, _ := repo.HasUnread(model.NotificationLowStock, barcode); has {
		t.Fatal("read notification still counted as unread")
	}

	if ok, _ := repo.Delete(second.ID); !ok {
		t.Fatal("delete affected nothing")
	}
	if n, _ := repo.CountUnread(); n != 0 {
		t.Fatalf("expected 0 unread after delete, got %d", n)
	}
	all, _ := repo.FindAll()
	if len(all) != 1 || all[0].ID != first.ID || !all[0].IsRead {
		t.Fatalf("unexpected notifications %+v", all)
	}
}

func TestScanResultRepo(t *testing.T) {
	repo := NewScanResultRepo(setupTestStore(t))

	for _, s := range []model.ScanResult{
		{Barcode: "1", Brand: "A", SalePrice: 10, ScanDate: 10},
		{Barcode: "1", Brand: "A", SalePrice: 12, ScanDate: 20},
	} {
		s := s
		if err := repo.Create(&s); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	latest, _ := repo.FindByBarcode("1")
	if latest == nil || latest.SalePrice != 12 {
		t.Fatalf("expected latest scan, got %+v", latest)
	}
	if ok, _ := repo.Delete(latest.ID); !ok {
		t.Fatal("delete affected nothing")
	}
	if err := repo.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	all, _ := repo.FindAll()
	if len(all) != 0 {
		t.Fatalf("expected no scans, got %d", len(all))
	}
}
