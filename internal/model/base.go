package model

import (
	"time"

	"gorm.io/gorm"
)

// Ledger dates are epoch milliseconds.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func FromEpochMillis(ms int64, loc *time.Location) time.Time {
	return time.UnixMilli(ms).In(loc)
}

// Hook Before Create: rows inserted without a date are stamped with the current time.
func (s *StockItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.StockDate == 0 {
		s.StockDate = EpochMillis(time.Now())
	}
	return
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.TransactionDate == 0 {
		t.TransactionDate = t.Date
	}
	if t.TransactionDate == 0 {
		t.TransactionDate = EpochMillis(time.Now())
	}
	return
}

func (s *ScanResult) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ScanDate == 0 {
		s.ScanDate = EpochMillis(time.Now())
	}
	return
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.CreatedDate == 0 {
		n.CreatedDate = EpochMillis(time.Now())
	}
	return
}
