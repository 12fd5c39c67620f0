package history

import (
	"errors"

	"solpay/internal/models"
)

// Entry is a generated QR code about to be recorded.
type Entry struct {
	Label     string
	Params    models.HistoryParams
	QRDataURL string
	URL       string
}

type ImportResult struct {
	Imported int `json:"imported"`
	Errors   int `json:"errors"`
}

var (
	ErrInvalidEntry  = errors.New("invalid history entry")
	ErrInvalidImport = errors.New("import must be a JSON array of history items")
)
