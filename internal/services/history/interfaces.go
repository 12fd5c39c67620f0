package history

import (
	"context"

	"solpay/internal/models"
)

// Service defines the history store operations.
type Service interface {
	Record(ctx context.Context, entry Entry) (*models.HistoryItem, error)
	List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryItem, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
	// Export serializes every item as a JSON array, newest first.
	Export(ctx context.Context) ([]byte, error)
	// Import stores each well-formed item of a JSON array and counts the rest.
	Import(ctx context.Context, data []byte) (*ImportResult, error)
}
