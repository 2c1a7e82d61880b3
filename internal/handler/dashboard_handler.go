package handler

import (
	"time"

	"github.com/doguscu/barcode-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service service.DashboardService
	logger  *zap.Logger
	loc     *time.Location
	now     service.Clock
}

func NewDashboardHandler(s service.DashboardService, logger *zap.Logger, loc *time.Location, now service.Clock) *DashboardHandler {
	return &DashboardHandler{service: s, logger: logger, loc: loc, now: now}
}

// GET /api/v1/dashboard/today
func (h *DashboardHandler) GetToday(c *fiber.Ctx) error {
	today, err := h.service.Today()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(today)
}

// GET /api/v1/dashboard/profit?range=week|month|custom&start_date=&end_date=
func (h *DashboardHandler) GetProfit(c *fiber.Ctx) error {
	var (
		summary *service.ProfitSummary
		err     error
	)

	switch c.Query("range", "week") {
	case "week":
		summary, err = h.service.WeeklyProfit()
	case "month":
		summary, err = h.service.MonthlyProfit()
	case "custom":
		start, perr := time.ParseInLocation(dayLayout, c.Query("start_date"), h.loc)
		if perr != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid start_date, use YYYY-MM-DD"})
		}
		end, perr := time.ParseInLocation(dayLayout, c.Query("end_date"), h.loc)
		if perr != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid end_date, use YYYY-MM-DD"})
		}
		if end.Before(start) {
			return c.Status(400).JSON(fiber.Map{"error": "end_date is before start_date"})
		}
		summary, err = h.service.ProfitForRange(start, end.AddDate(0, 0, 1))
	default:
		return c.Status(400).JSON(fiber.Map{"error": "range must be week, month or custom"})
	}

	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(summary)
}

// GET /api/v1/dashboard/calendar?year=2024&month=9
func (h *DashboardHandler) GetCalendar(c *fiber.Ctx) error {
	now := h.now().In(h.loc)
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return c.Status(400).JSON(fiber.Map{"error": "month must be between 1 and 12"})
	}

	cal, err := h.service.Calendar(year, time.Month(month))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(cal)
}

// GET /api/v1/dashboard/totals
func (h *DashboardHandler) GetTotals(c *fiber.Ctx) error {
	totals, err := h.service.Totals()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(totals)
}
