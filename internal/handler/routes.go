package handler

import (
	"github.com/doguscu/barcode-scanner/internal/middleware"
	"github.com/doguscu/barcode-scanner/internal/service"
	"github.com/doguscu/barcode-scanner/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth         *AuthHandler
	Inventory    *InventoryHandler
	Dashboard    *DashboardHandler
	Notification *NotificationHandler
	Data         *DataHandler
}

// SetupRoutes mounts the REST API under /api/v1 and the live event socket
// under /ws. Everything except login requires a bearer token.
func SetupRoutes(app *fiber.App, h Handlers, authService service.AuthService, hub *ws.Hub) {
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(authService))
	protected.Get("/auth/me", h.Auth.Me)

	// Stock lots
	protected.Get("/stocks", h.Inventory.GetStockItems)
	protected.Post("/stocks", h.Inventory.CreateStockEntry)
	protected.Get("/stocks/counts", h.Inventory.GetProductTypeCounts)
	protected.Get("/stocks/barcode/:barcode", h.Inventory.GetStockByBarcode)
	protected.Put("/stocks/:id", h.Inventory.UpdateStockItem)
	protected.Delete("/stocks/:id", h.Inventory.DeleteStockItem)

	// Sales and ledger
	protected.Get("/sales", h.Inventory.GetSales)
	protected.Post("/sales", h.Inventory.CreateSale)
	protected.Get("/transactions", h.Inventory.GetTransactions)
	protected.Get("/scans", h.Inventory.GetScanResults)
	protected.Delete("/scans/:id", h.Inventory.DeleteScanResult)

	// Dashboard
	protected.Get("/dashboard/today", h.Dashboard.GetToday)
	protected.Get("/dashboard/profit", h.Dashboard.GetProfit)
	protected.Get("/dashboard/calendar", h.Dashboard.GetCalendar)
	protected.Get("/dashboard/totals", h.Dashboard.GetTotals)

	// Notifications
	protected.Get("/notifications", h.Notification.GetNotifications)
	protected.Get("/notifications/unread-count", h.Notification.GetUnreadCount)
	protected.Put("/notifications/read-all", h.Notification.MarkAllRead)
	protected.Put("/notifications/:id/read", h.Notification.MarkRead)
	protected.Delete("/notifications/:id", h.Notification.DeleteNotification)
	protected.Delete("/notifications", h.Notification.ClearNotifications)

	// Import / export
	protected.Get("/data/export", h.Data.Export)
	protected.Get("/data/export.xlsx", h.Data.ExportWorkbook)
	protected.Post("/data/import/validate", h.Data.ValidateImport)
	protected.Post("/data/import", h.Data.Import)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Register(c) {
			return
		}
		defer hub.Unregister(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
