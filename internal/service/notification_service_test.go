package service

import (
	"errors"
	"testing"
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/pkg/database"
)

func unreadLowStockFor(t *testing.T, env *testEnv, barcode string) int {
	t.Helper()
	all, err := env.notifications.GetAll()
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	n := 0
	for _, item := range all {
		if item.Type == model.NotificationLowStock && !item.IsRead && item.RelatedBarcode != nil && *item.RelatedBarcode == barcode {
			n++
		}
	}
	return n
}

func TestLowStockNotificationIsDeduplicatedWhileUnread(t *testing.T) {
	env := setupEnv(t, time.Date(2024, 9, 24, 12, 0, 0, 0, testLoc))

	for i := 0; i < 2; i++ {
		_, err := env.inventory.RecordStockEntry(&StockEntryRequest{
			Barcode: "8691", Brand: "Ray-Ban", PurchasePrice: price(400), Quantity: 2, ProductType: model.ProductTypeFrame,
		})
		if err != nil {
			t.Fatalf("stock entry %d: %v", i, err)
		}
	}
	if got := unreadLowStockFor(t, env, "8691"); got != 1 {
		t.Fatalf("expected exactly one unread notification, got %d", got)
	}

	all, _ := env.notifications.GetAll()
	if all[0].Title != "Düşük Stok Uyarısı" || all[0].Message != "Ray-Ban markasının stoku düştü (Kalan: 2 adet)" {
		t.Fatalf("unexpected notification text %+v", all[0])
	}
	if err := env.notifications.MarkRead(all[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	_, err := env.inventory.RecordStockEntry(&StockEntryRequest{
		Barcode: "8691", Brand: "Ray-Ban", PurchasePrice: price(400), Quantity: 1, ProductType: model.ProductTypeFrame,
	})
	if err != nil {
		t.Fatalf("third stock entry: %v", err)
	}
	all, _ = env.notifications.GetAll()
	if len(all) != 2 {
		t.Fatalf("expected a second notification after read, got %d", len(all))
	}
	if got := unreadLowStockFor(t, env, "8691"); got != 1 {
		t.Fatalf("expected one unread notification, got %d", got)
	}
}

func TestNoNotificationAboveThreshold(t *testing.T) {
	env := setupEnv(t, time.Date(2024, 9, 24, 12, 0, 0, 0, testLoc))

	n, err := env.notifications.MaybeNotifyLowStock("Police", "1", 4)
	if err != nil || n != nil {
		t.Fatalf("expected no notification above threshold, got %+v err=%v", n, err)
	}
	n, err = env.notifications.MaybeNotifyLowStock("Police", "1", 3)
	if err != nil || n == nil {
		t.Fatalf("expected notification at threshold, got err=%v", err)
	}
	if n.CreatedDate != env.now.UnixMilli() {
		t.Fatalf("notification not stamped with clock time: %d", n.CreatedDate)
	}
}

func TestDeleteNotificationDecrementsUnread(t *testing.T) {
	env := setupEnv(t, time.Date(2024, 9, 24, 12, 0, 0, 0, testLoc))

	first, _ := env.notifications.MaybeNotifyLowStock("A", "1", 1)
	if _, err := env.notifications.MaybeNotifyLowStock("B", "2", 1); err != nil {
		t.Fatalf("notify: %v", err)
	}
	before, _ := env.notifications.UnreadCount()

	if err := env.notifications.Delete(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	after, _ := env.notifications.UnreadCount()
	if after != before-1 {
		t.Fatalf("expected unread %d, got %d", before-1, after)
	}
	all, _ := env.notifications.GetAll()
	for _, n := range all {
		if n.ID == first.ID {
			t.Fatal("deleted notification still listed")
		}
	}

	if err := env.notifications.Delete(first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	marked, err := env.notifications.MarkAllRead()
	if err != nil || marked != 1 {
		t.Fatalf("expected 1 marked read, got %d err=%v", marked, err)
	}
	if n, _ := env.notifications.UnreadCount(); n != 0 {
		t.Fatalf("expected no unread, got %d", n)
	}
}

func TestSeededLotsRaiseLowStockNotices(t *testing.T) {
	env := setupEnv(t, time.Date(2024, 9, 24, 10, 0, 0, 0, testLoc))

	seeded, err := database.Seed(env.store, testLoc, func(item model.StockItem) {
		if _, err := env.notifications.MaybeNotifyLowStock(item.Brand, item.Barcode, item.Quantity); err != nil {
			t.Errorf("notify %s: %v", item.Barcode, err)
		}
	})
	if err != nil || !seeded {
		t.Fatalf("seed: seeded=%t err=%v", seeded, err)
	}

	if n, _ := env.notifications.UnreadCount(); n != 3 {
		t.Fatalf("expected notices for the three lots at or below threshold, got %d", n)
	}
	for _, barcode := range []string{"1234567890125", "1234567890128", "1234567890130"} {
		if got := unreadLowStockFor(t, env, barcode); got != 1 {
			t.Fatalf("expected one notice for %s, got %d", barcode, got)
		}
	}
	if got := unreadLowStockFor(t, env, "1234567890127"); got != 0 {
		t.Fatalf("lot with 5 units must not notify, got %d", got)
	}
}
