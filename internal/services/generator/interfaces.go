package generator

import (
	"context"

	"solpay/internal/models"
	"solpay/internal/services/history"
)

// Service builds Solana Pay URLs and their QR codes.
type Service interface {
	Transfer(ctx context.Context, req TransferRequest) (*Result, error)
	TransactionRequest(ctx context.Context, req TransactionRequestInput) (*Result, error)
	Message(ctx context.Context, req MessageRequest) (*Result, error)
}

// Recorder is the part of the history service the generator writes to.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (*models.HistoryItem, error)
}
