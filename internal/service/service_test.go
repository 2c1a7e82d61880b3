package service

import (
	"testing"
	"time"

	"github.com/doguscu/barcode-scanner/internal/repository"
	"github.com/doguscu/barcode-scanner/pkg/database"

	"go.uber.org/zap"
)

var testLoc = time.FixedZone("UTC+3", 3*60*60)

type testEnv struct {
	store *database.Store

	stockRepo repository.StockItemRepository
	txRepo    repository.TransactionRepository
	scanRepo  repository.ScanResultRepository
	notifRepo repository.NotificationRepository

	notifications NotificationService
	inventory     InventoryService
	dashboard     DashboardService
	transfer      TransferService

	now time.Time
}

func (e *testEnv) clock() time.Time { return e.now }

func setupTestStore(t *testing.T, name string) *database.Store {
	t.Helper()
	store, err := database.ConnectDB(database.Config{
		Driver: database.DriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared",
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

func setupEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	return setupEnvNamed(t, "", now)
}

// setupEnvNamed opens a second, independent store within the same test.
func setupEnvNamed(t *testing.T, suffix string, now time.Time) *testEnv {
	t.Helper()
	store := setupTestStore(t, t.Name()+suffix)
	logger := zap.NewNop()

	env := &testEnv{
		store:     store,
		stockRepo: repository.NewStockItemRepo(store),
		txRepo:    repository.NewTransactionRepo(store),
		scanRepo:  repository.NewScanResultRepo(store),
		notifRepo: repository.NewNotificationRepo(store),
		now:       now,
	}
	env.notifications = NewNotificationService(env.notifRepo, 3, nil, logger, env.clock)
	env.inventory = NewInventoryService(env.store, env.stockRepo, env.txRepo, env.scanRepo, env.notifications, nil, logger, env.clock)
	env.dashboard = NewDashboardService(env.txRepo, env.clock, testLoc)
	env.transfer = NewTransferService(env.stockRepo, env.txRepo, env.scanRepo, env.notifRepo, env.inventory, nil, logger, env.clock, testLoc)
	return env
}

func price(v float64) *float64 { return &v }

func qty(v int) *int { return &v }
