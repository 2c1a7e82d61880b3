package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/doguscu/barcode-scanner/internal/config"
	"github.com/doguscu/barcode-scanner/internal/handler"
	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/internal/repository"
	"github.com/doguscu/barcode-scanner/internal/service"
	"github.com/doguscu/barcode-scanner/internal/ws"
	"github.com/doguscu/barcode-scanner/pkg/database"
	zaplogger "github.com/doguscu/barcode-scanner/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultOperatorPassword = "admin123"

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.LoadEnv()

	// 2. Setup Logger
	zlog := zaplogger.NewZapLogger(&zaplogger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer zlog.Sync()

	loc := cfg.Ledger.Location()

	// 3. Setup Database
	store, err := database.ConnectDB(database.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.Database.Debug,
	})
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}
	if err := database.Migrate(store); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}
	if version, _, err := database.SchemaVersion(store); err == nil {
		zlog.Info("database ready", zap.String("driver", store.Driver()), zap.Uint("schema_version", version))
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog.Named("ws"))
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	stockRepo := repository.NewStockItemRepo(store)
	txRepo := repository.NewTransactionRepo(store)
	scanRepo := repository.NewScanResultRepo(store)
	notifRepo := repository.NewNotificationRepo(store)

	notifService := service.NewNotificationService(notifRepo, cfg.Ledger.LowStockThreshold, wsHub, zlog, time.Now)
	invService := service.NewInventoryService(store, stockRepo, txRepo, scanRepo, notifService, wsHub, zlog, time.Now)
	dashService := service.NewDashboardService(txRepo, time.Now, loc)
	transferService := service.NewTransferService(stockRepo, txRepo, scanRepo, notifRepo, invService, wsHub, zlog, time.Now, loc)
	authService := service.NewAuthService(operator(cfg, zlog), cfg.JWT.SecretKey, cfg.JWT.TTL, zlog, time.Now)

	// Demo lots go through the low-stock check like any other entry
	if cfg.Database.Seed {
		seeded, err := database.Seed(store, loc, func(item model.StockItem) {
			if _, err := notifService.MaybeNotifyLowStock(item.Brand, item.Barcode, item.Quantity); err != nil {
				zlog.Warn("low stock check failed", zap.String("barcode", item.Barcode), zap.Error(err))
			}
		})
		if err != nil {
			zlog.Warn("failed to seed demo data", zap.Error(err))
		} else if seeded {
			zlog.Info("demo data seeded")
		}
	}

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authService, zlog),
		Inventory:    handler.NewInventoryHandler(invService, zlog, loc),
		Dashboard:    handler.NewDashboardHandler(dashService, zlog, loc, time.Now),
		Notification: handler.NewNotificationHandler(notifService, zlog),
		Data:         handler.NewDataHandler(transferService, zlog),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Barcode Scanner Ledger v1.0",
		BodyLimit: 32 * 1024 * 1024,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.CORSOrigins, ","),
	}))

	// 7. Routes
	handler.SetupRoutes(app, handlers, authService, wsHub)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zlog.Panic("server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	wsHub.Stop()
	if err := store.Close(); err != nil {
		zlog.Error("failed to close store", zap.Error(err))
	}

	zlog.Info("server exited")
}

// operator builds the configured account. Without a configured hash the
// default password is used so a fresh install can log in.
func operator(cfg *config.Config, zlog *zap.Logger) model.Operator {
	op := model.Operator{Name: cfg.Operator.Name, PasswordHash: cfg.Operator.PasswordHash}
	if op.PasswordHash != "" {
		return op
	}
	if err := op.SetPassword(defaultOperatorPassword); err != nil {
		zlog.Fatal("failed to hash default operator password", zap.Error(err))
	}
	zlog.Warn("OPERATOR_PASSWORD_HASH is not set, using the default password",
		zap.String("operator", op.Name))
	return op
}
