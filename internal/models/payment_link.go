package models

import "time"

type LinkStatus string

const (
	LinkPending LinkStatus = "pending"
	LinkPaid    LinkStatus = "paid"
	LinkExpired LinkStatus = "expired"
)

// LinkDraft carries the caller-supplied fields of a new payment link.
type LinkDraft struct {
	Recipient string
	Amount    string
	Token     string
	SPLToken  string
	Label     string
	Message   string
	Memo      string
}

// PaymentLink is a shareable payment request tracked until it is paid or expires.
type PaymentLink struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Recipient string     `json:"recipient"`
	Amount    string     `json:"amount"`
	Token     string     `json:"token"`
	SPLToken  string     `json:"splToken,omitempty"`
	Label     string     `json:"label"`
	Message   string     `json:"message,omitempty"`
	Memo      string     `json:"memo,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Status    LinkStatus `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	Signature string     `json:"signature,omitempty"`
}

// IsExpiredAt reports whether a pending link has outlived its TTL at now.
func (l *PaymentLink) IsExpiredAt(now time.Time) bool {
	return l.Status == LinkPending && now.After(l.ExpiresAt)
}

// Public strips the confirmation signature.
func (l *PaymentLink) Public() PublicPaymentLink {
	return PublicPaymentLink{
		ID:        l.ID,
		Reference: l.Reference,
		Recipient: l.Recipient,
		Amount:    l.Amount,
		Token:     l.Token,
		SPLToken:  l.SPLToken,
		Label:     l.Label,
		Message:   l.Message,
		Memo:      l.Memo,
		CreatedAt: l.CreatedAt,
		ExpiresAt: l.ExpiresAt,
		Status:    l.Status,
		PaidAt:    l.PaidAt,
	}
}

func (l *PaymentLink) StatusView() LinkStatusView {
	return LinkStatusView{Status: l.Status, PaidAt: l.PaidAt, ExpiresAt: l.ExpiresAt}
}

type PublicPaymentLink struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Recipient string     `json:"recipient"`
	Amount    string     `json:"amount"`
	Token     string     `json:"token"`
	SPLToken  string     `json:"splToken,omitempty"`
	Label     string     `json:"label"`
	Message   string     `json:"message,omitempty"`
	Memo      string     `json:"memo,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Status    LinkStatus `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

type LinkStatusView struct {
	Status    LinkStatus `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	ExpiresAt time.Time  `json:"expiresAt"`
}
