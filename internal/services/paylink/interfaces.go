package paylink

import (
	"context"

	"solpay/internal/models"
)

// Store holds payment links. Implementations must make eviction plus insert,
// and every status transition, atomic.
type Store interface {
	// Create evicts expired and surplus links, then inserts a new pending link.
	Create(ctx context.Context, draft models.LinkDraft) (*models.PaymentLink, error)
	// Get returns ErrLinkNotFound for unknown ids. A pending link past its
	// expiry is returned once with status expired and removed.
	Get(ctx context.Context, id string) (*models.PaymentLink, error)
	// MarkPaid reports whether the link moved from pending to paid.
	MarkPaid(ctx context.Context, id, signature string) (bool, error)
	GetStatus(ctx context.Context, id string) (*models.LinkStatusView, error)
	Len(ctx context.Context) (int, error)
}

// Service defines the payment link operations exposed over HTTP.
type Service interface {
	CreateLink(ctx context.Context, req CreateLinkRequest) (*CreateLinkResponse, error)
	GetLink(ctx context.Context, id string) (*models.PublicPaymentLink, error)
	GetStatus(ctx context.Context, id string) (*models.LinkStatusView, error)
	MarkPaid(ctx context.Context, id, signature string) (*models.LinkStatusView, error)
	// PaymentURL is the solana: transfer URL a wallet pays the link with.
	PaymentURL(ctx context.Context, id string) (string, error)
}
