// Package scan validates the decoded value handed over by the barcode reader
// before it reaches the ledger.
package scan

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatText    Format = "text"
	FormatURL     Format = "url"
	FormatProduct Format = "product"
	FormatISBN    Format = "isbn"
	FormatUnknown Format = "unknown"
)

var (
	ErrEmptyCode         = errors.New("barcode is empty")
	ErrUnsupportedFormat = errors.New("unsupported barcode format")
)

// Code is one decode result. The reader delivers a single value per capture
// session; the first successful decode wins.
type Code struct {
	Value  string `json:"value"`
	Format Format `json:"format"`
}

func (f Format) Supported() bool {
	switch f {
	case FormatText, FormatURL, FormatProduct, FormatISBN, FormatUnknown:
		return true
	}
	return false
}

// Normalize trims the decoded value and checks its symbol type. An empty
// format is treated as unknown.
func Normalize(c Code) (string, error) {
	format := Format(strings.ToLower(strings.TrimSpace(string(c.Format))))
	if format == "" {
		format = FormatUnknown
	}
	if !format.Supported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Format)
	}

	value := strings.TrimSpace(c.Value)
	if value == "" {
		return "", ErrEmptyCode
	}
	return value, nil
}
