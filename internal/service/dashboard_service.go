package service

import (
	"time"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/internal/repository"
)

type DashboardService interface {
	Today() (*TodaySummary, error)
	ProfitForRange(start, end time.Time) (*ProfitSummary, error)
	WeeklyProfit() (*ProfitSummary, error)
	MonthlyProfit() (*ProfitSummary, error)
	Calendar(year int, month time.Month) (*MonthCalendar, error)
	Totals() (*Totals, error)
}

type TodaySummary struct {
	Date       string  `json:"date"`
	Sales      float64 `json:"sales"`
	NetIncome  float64 `json:"net_income"`
	SalesCount int64   `json:"sales_count"`
}

// ProfitSummary nets every stock entry in [Start, End) against every sale in
// the same window. LotMatchedNetIncome prices each sale against the latest
// stock entry for its barcode instead.
type ProfitSummary struct {
	Start               int64   `json:"start"`
	End                 int64   `json:"end"`
	Sales               float64 `json:"sales"`
	StockEntries        float64 `json:"stock_entries"`
	NetIncome           float64 `json:"net_income"`
	LotMatchedNetIncome float64 `json:"lot_matched_net_income"`
	SalesCount          int64   `json:"sales_count"`
	StockEntryCount     int64   `json:"stock_entry_count"`
}

type DayProfit struct {
	Day        int     `json:"day"`
	Date       string  `json:"date"`
	NetIncome  float64 `json:"net_income"`
	SalesCount int64   `json:"sales_count"`
}

// MonthCalendar holds one entry per day. LeadingBlanks is the number of
// empty cells before day 1 in a Monday-first week grid.
type MonthCalendar struct {
	Year          int         `json:"year"`
	Month         int         `json:"month"`
	LeadingBlanks int         `json:"leading_blanks"`
	Days          []DayProfit `json:"days"`
	NetIncome     float64     `json:"net_income"`
}

type Totals struct {
	Sales               float64                         `json:"sales"`
	SalesCount          int64                           `json:"sales_count"`
	StockValue          float64                         `json:"stock_value"`
	StockEntryCount     int64                           `json:"stock_entry_count"`
	NetIncome           float64                         `json:"net_income"`
	LotMatchedNetIncome float64                         `json:"lot_matched_net_income"`
	ProductTypeBalances []repository.ProductTypeBalance `json:"product_type_balances"`
}

type dashboardService struct {
	txRepo repository.TransactionRepository
	now    Clock
	loc    *time.Location
}

func NewDashboardService(txRepo repository.TransactionRepository, now Clock, loc *time.Location) DashboardService {
	return &dashboardService{txRepo: txRepo, now: now, loc: loc}
}

func (s *dashboardService) current() time.Time {
	return s.now().In(s.loc)
}

func (s *dashboardService) Today() (*TodaySummary, error) {
	start := startOfDay(s.current())
	rng := rangeOf(start, start.AddDate(0, 0, 1))

	sales, err := s.txRepo.SumAmount(model.TxSale, rng)
	if err != nil {
		return nil, err
	}
	entries, err := s.txRepo.SumAmount(model.TxStockEntry, rng)
	if err != nil {
		return nil, err
	}
	count, err := s.txRepo.CountByType(model.TxSale, rng)
	if err != nil {
		return nil, err
	}

	return &TodaySummary{
		Date:       start.Format("2006-01-02"),
		Sales:      sales,
		NetIncome:  sales - entries,
		SalesCount: count,
	}, nil
}

func (s *dashboardService) ProfitForRange(start, end time.Time) (*ProfitSummary, error) {
	rng := rangeOf(start, end)
	summary := &ProfitSummary{Start: rng.Start, End: rng.End}

	var err error
	if summary.Sales, err = s.txRepo.SumAmount(model.TxSale, rng); err != nil {
		return nil, err
	}
	if summary.StockEntries, err = s.txRepo.SumAmount(model.TxStockEntry, rng); err != nil {
		return nil, err
	}
	if summary.SalesCount, err = s.txRepo.CountByType(model.TxSale, rng); err != nil {
		return nil, err
	}
	if summary.StockEntryCount, err = s.txRepo.CountByType(model.TxStockEntry, rng); err != nil {
		return nil, err
	}
	if summary.LotMatchedNetIncome, err = s.lotMatchedNetIncome(rng); err != nil {
		return nil, err
	}
	summary.NetIncome = summary.Sales - summary.StockEntries
	return summary, nil
}

// WeeklyProfit covers midnight seven days ago through the end of today.
func (s *dashboardService) WeeklyProfit() (*ProfitSummary, error) {
	return s.trailing(7)
}

// MonthlyProfit covers midnight thirty days ago through the end of today.
func (s *dashboardService) MonthlyProfit() (*ProfitSummary, error) {
	return s.trailing(30)
}

func (s *dashboardService) trailing(days int) (*ProfitSummary, error) {
	today := startOfDay(s.current())
	return s.ProfitForRange(today.AddDate(0, 0, -days), today.AddDate(0, 0, 1))
}

func (s *dashboardService) Calendar(year int, month time.Month) (*MonthCalendar, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	next := first.AddDate(0, 1, 0)

	cal := &MonthCalendar{
		Year:          year,
		Month:         int(month),
		LeadingBlanks: (int(first.Weekday()) + 6) % 7,
	}

	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		rng := rangeOf(day, day.AddDate(0, 0, 1))
		sales, err := s.txRepo.SumAmount(model.TxSale, rng)
		if err != nil {
			return nil, err
		}
		entries, err := s.txRepo.SumAmount(model.TxStockEntry, rng)
		if err != nil {
			return nil, err
		}
		count, err := s.txRepo.CountByType(model.TxSale, rng)
		if err != nil {
			return nil, err
		}
		cal.Days = append(cal.Days, DayProfit{
			Day:        day.Day(),
			Date:       day.Format("2006-01-02"),
			NetIncome:  sales - entries,
			SalesCount: count,
		})
		cal.NetIncome += sales - entries
	}
	return cal, nil
}

func (s *dashboardService) Totals() (*Totals, error) {
	totals := &Totals{}

	var err error
	if totals.Sales, err = s.txRepo.SumAmount(model.TxSale, nil); err != nil {
		return nil, err
	}
	if totals.SalesCount, err = s.txRepo.CountByType(model.TxSale, nil); err != nil {
		return nil, err
	}
	if totals.StockValue, err = s.txRepo.SumAmount(model.TxStockEntry, nil); err != nil {
		return nil, err
	}
	if totals.StockEntryCount, err = s.txRepo.CountByType(model.TxStockEntry, nil); err != nil {
		return nil, err
	}
	if totals.LotMatchedNetIncome, err = s.lotMatchedNetIncome(nil); err != nil {
		return nil, err
	}
	if totals.ProductTypeBalances, err = s.txRepo.NetUnitsByProductType(); err != nil {
		return nil, err
	}
	totals.NetIncome = totals.Sales - totals.StockValue
	return totals, nil
}

// lotMatchedNetIncome subtracts from each sale the amount of the latest stock
// entry for its barcode. Sales without any stock entry count in full.
func (s *dashboardService) lotMatchedNetIncome(rng *repository.DateRange) (float64, error) {
	sales, err := s.txRepo.FindByType(model.TxSale)
	if err != nil {
		return 0, err
	}

	costs := make(map[string]float64)
	var total float64
	for _, sale := range sales {
		if rng != nil && (sale.TransactionDate < rng.Start || sale.TransactionDate >= rng.End) {
			continue
		}
		cost, ok := costs[sale.Barcode]
		if !ok {
			entry, err := s.txRepo.FindLatestByBarcode(sale.Barcode, model.TxStockEntry)
			if err != nil {
				return 0, err
			}
			if entry != nil {
				cost = entry.Amount
			}
			costs[sale.Barcode] = cost
		}
		total += sale.Amount - cost
	}
	return total, nil
}

func rangeOf(start, end time.Time) *repository.DateRange {
	return &repository.DateRange{Start: model.EpochMillis(start), End: model.EpochMillis(end)}
}
