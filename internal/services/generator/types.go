package generator

import (
	"strings"

	"solpay/internal/models"
	"solpay/internal/validation"
)

type TransferRequest struct {
	Recipient   string `json:"recipient" validate:"required,solana_address"`
	Amount      string `json:"amount" validate:"required,amount"`
	SPLToken    string `json:"splToken" validate:"omitempty,solana_address"`
	TokenSymbol string `json:"tokenSymbol"`
	Reference   string `json:"reference" validate:"omitempty,solana_address"`
	Label       string `json:"label" validate:"max=128"`
	Message     string `json:"message" validate:"max=2048"`
	Memo        string `json:"memo"`
}

type TransactionRequestInput struct {
	Link    string `json:"link" validate:"required,https_url"`
	Label   string `json:"label" validate:"max=128"`
	Message string `json:"message" validate:"max=2048"`
}

type MessageRequest struct {
	Recipient string `json:"recipient" validate:"required,solana_address"`
	Message   string `json:"message" validate:"required,max=2048"`
	Label     string `json:"label" validate:"max=128"`
}

// Result is a generated QR code. Params is set for transfers only.
type Result struct {
	URL       string                 `json:"url"`
	QRBase64  string                 `json:"qrBase64"`
	Reference string                 `json:"reference,omitempty"`
	Params    *models.TransferParams `json:"params,omitempty"`
	HistoryID string                 `json:"historyId,omitempty"`
}

// ValidationError lists why a generate request was refused.
type ValidationError struct {
	Issues []validation.Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		msgs = append(msgs, i.Error())
	}
	return "invalid generate request: " + strings.Join(msgs, "; ")
}
