package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/doguscu/barcode-scanner/internal/listing"
	"github.com/doguscu/barcode-scanner/internal/middleware"
	"github.com/doguscu/barcode-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

type InventoryHandler struct {
	service service.InventoryService
	logger  *zap.Logger
	loc     *time.Location
}

func NewInventoryHandler(s service.InventoryService, logger *zap.Logger, loc *time.Location) *InventoryHandler {
	return &InventoryHandler{service: s, logger: logger, loc: loc}
}

// POST /api/v1/stocks
func (h *InventoryHandler) CreateStockEntry(c *fiber.Ctx) error {
	var req service.StockEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.RecordStockEntry(&req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info("stock entry recorded",
		zap.String("operator", middleware.Operator(c)),
		zap.String("barcode", result.StockItem.Barcode),
		zap.Int("quantity", result.StockItem.Quantity),
	)
	return c.Status(201).JSON(fiber.Map{"message": "Stock entry recorded", "data": result})
}

// POST /api/v1/sales
func (h *InventoryHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.RecordSale(&req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info("sale recorded",
		zap.String("operator", middleware.Operator(c)),
		zap.String("barcode", result.Transaction.Barcode),
		zap.Float64("amount", result.Transaction.Amount),
	)
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": result})
}

// PUT /api/v1/stocks/:id
func (h *InventoryHandler) UpdateStockItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock item ID"})
	}

	var req service.StockUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateStockItem(id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Stock item updated", "data": updated})
}

// DELETE /api/v1/stocks/:id
func (h *InventoryHandler) DeleteStockItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock item ID"})
	}
	if err := h.service.DeleteStockItem(id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Stock item deleted"})
}

// GET /api/v1/stocks/barcode/:barcode
func (h *InventoryHandler) GetStockByBarcode(c *fiber.Ctx) error {
	item, err := h.service.GetStockByBarcode(c.Params("barcode"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(item)
}

// GET /api/v1/stocks
func (h *InventoryHandler) GetStockItems(c *fiber.Ctx) error {
	filter, sort, err := h.parseListing(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	items, err := h.service.ListStockItems(filter, sort)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(items)
}

// GET /api/v1/stocks/counts
func (h *InventoryHandler) GetProductTypeCounts(c *fiber.Ctx) error {
	counts, err := h.service.ProductTypeCounts()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(counts)
}

// GET /api/v1/sales
func (h *InventoryHandler) GetSales(c *fiber.Ctx) error {
	filter, sort, err := h.parseListing(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	sales, err := h.service.ListSales(filter, sort)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(sales)
}

// GET /api/v1/transactions?limit=N
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	transactions, err := h.service.ListTransactions(limit)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(transactions)
}

// GET /api/v1/scans
func (h *InventoryHandler) GetScanResults(c *fiber.Ctx) error {
	scans, err := h.service.ListScanResults()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(scans)
}

// DELETE /api/v1/scans/:id
func (h *InventoryHandler) DeleteScanResult(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid scan ID"})
	}
	if err := h.service.DeleteScanResult(id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"message": "Scan deleted"})
}

// parseListing reads brand, product_type, start_date, end_date (YYYY-MM-DD),
// min_amount, max_amount, sort and order from the query string.
func (h *InventoryHandler) parseListing(c *fiber.Ctx) (listing.Filter, listing.Sort, error) {
	filter := listing.Filter{
		Brand:       strings.TrimSpace(c.Query("brand")),
		ProductType: strings.TrimSpace(c.Query("product_type")),
	}

	var err error
	if filter.StartDay, err = h.parseDay(c.Query("start_date")); err != nil {
		return filter, listing.Sort{}, fmt.Errorf("invalid start_date, use YYYY-MM-DD")
	}
	if filter.EndDay, err = h.parseDay(c.Query("end_date")); err != nil {
		return filter, listing.Sort{}, fmt.Errorf("invalid end_date, use YYYY-MM-DD")
	}
	if filter.MinAmount, err = parseAmount(c.Query("min_amount")); err != nil {
		return filter, listing.Sort{}, fmt.Errorf("invalid min_amount")
	}
	if filter.MaxAmount, err = parseAmount(c.Query("max_amount")); err != nil {
		return filter, listing.Sort{}, fmt.Errorf("invalid max_amount")
	}

	sort := listing.Sort{
		Field:     listing.ParseSortField(c.Query("sort", "date")),
		Ascending: strings.EqualFold(c.Query("order", "desc"), "asc"),
	}
	return filter, sort, nil
}

func (h *InventoryHandler) parseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dayLayout, v, h.loc)
}

func parseAmount(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
