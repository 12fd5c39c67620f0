package paylink

import (
	"time"
)

const (
	DefaultTTL      = 7 * 24 * time.Hour
	DefaultCapacity = 1000

	DefaultToken = "SOL"
	DefaultLabel = "Payment"

	// maxIDAttempts bounds slug redraws on collision.
	maxIDAttempts = 10
)

// StoreConfig sizes a link store.
type StoreConfig struct {
	TTL      time.Duration
	Capacity int
}

// WithDefaults fills unset fields.
func (c StoreConfig) WithDefaults() StoreConfig {
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	return c
}

type CreateLinkRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Token     string `json:"token"`
	SPLToken  string `json:"splToken"`
	Label     string `json:"label"`
	Message   string `json:"message"`
	Memo      string `json:"memo"`
}

type CreateLinkResponse struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	QRURL      string    `json:"qrUrl"`
	PaymentURL string    `json:"paymentUrl"`
	Reference  string    `json:"reference"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
