package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/doguscu/barcode-scanner/pkg/validator"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("record not found")
	ErrStockNotFound   = errors.New("no stock item found for barcode")
	ErrInvalidDocument = errors.New("invalid import document")
)

// Clock returns the current time. Services take one so date-range logic can
// be tested against a fixed instant.
type Clock func() time.Time

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: Field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
