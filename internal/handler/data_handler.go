package handler

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/doguscu/barcode-scanner/internal/middleware"
	"github.com/doguscu/barcode-scanner/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DataHandler struct {
	service service.TransferService
	logger  *zap.Logger
}

func NewDataHandler(s service.TransferService, logger *zap.Logger) *DataHandler {
	return &DataHandler{service: s, logger: logger}
}

// GET /api/v1/data/export
func (h *DataHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	summary, err := h.service.Export(&buf)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info("ledger exported",
		zap.String("operator", middleware.Operator(c)),
		zap.Int("stock_items", summary.StockItems),
		zap.Int("transactions", summary.Transactions),
		zap.Int("scan_results", summary.ScanResults),
	)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, h.service.ExportFileName()))
	return c.Send(buf.Bytes())
}

// GET /api/v1/data/export.xlsx
func (h *DataHandler) ExportWorkbook(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if _, err := h.service.ExportWorkbook(&buf); err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, h.service.WorkbookFileName()))
	return c.Send(buf.Bytes())
}

// POST /api/v1/data/import/validate
func (h *DataHandler) ValidateImport(c *fiber.Ctx) error {
	body, err := documentBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	defer body.Close()

	preview, err := h.service.Validate(body)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(preview)
}

// POST /api/v1/data/import?replace=true
func (h *DataHandler) Import(c *fiber.Ctx) error {
	body, err := documentBody(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	defer body.Close()

	replace := c.QueryBool("replace", false)
	summary, err := h.service.Import(body, replace)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info("ledger imported",
		zap.String("operator", middleware.Operator(c)),
		zap.Bool("replace", replace),
		zap.Int("stock_items", summary.ImportedStocks),
		zap.Int("transactions", summary.ImportedTransactions),
		zap.Int("scan_results", summary.ImportedScans),
		zap.Int("skipped", summary.SkippedItems),
	)
	return c.JSON(fiber.Map{"message": summary.Message(), "data": summary})
}

// documentBody returns the uploaded "file" part for multipart requests and
// the raw body otherwise.
func documentBody(c *fiber.Ctx) (io.ReadCloser, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file field")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	if len(c.Body()) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return io.NopCloser(bytes.NewReader(c.Body())), nil
}
