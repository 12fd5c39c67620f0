package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type QRType string

const (
	QRTypeTransfer           QRType = "transfer"
	QRTypeTransactionRequest QRType = "transactionRequest"
	QRTypeMessage            QRType = "message"
)

func (t QRType) Valid() bool {
	switch t {
	case QRTypeTransfer, QRTypeTransactionRequest, QRTypeMessage:
		return true
	}
	return false
}

var ErrUnknownQRType = errors.New("unknown QR type")

// HistoryParams is the request that produced a history item. The concrete
// type always matches the item's Type.
type HistoryParams interface {
	Kind() QRType
	// Payee is the recipient searched by history filters, empty when the
	// request has none.
	Payee() string
}

type TransferParams struct {
	Recipient   string `json:"recipient"`
	Amount      string `json:"amount"`
	SPLToken    string `json:"splToken,omitempty"`
	TokenSymbol string `json:"tokenSymbol,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Label       string `json:"label,omitempty"`
	Message     string `json:"message,omitempty"`
	Memo        string `json:"memo,omitempty"`
}

func (TransferParams) Kind() QRType    { return QRTypeTransfer }
func (p TransferParams) Payee() string { return p.Recipient }

type TransactionRequestParams struct {
	Link    string `json:"link"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message,omitempty"`
}

func (TransactionRequestParams) Kind() QRType { return QRTypeTransactionRequest }
func (TransactionRequestParams) Payee() string { return "" }

type MessageParams struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	Label     string `json:"label,omitempty"`
}

func (MessageParams) Kind() QRType    { return QRTypeMessage }
func (p MessageParams) Payee() string { return p.Recipient }

// DecodeParams unmarshals raw into the params variant selected by t.
func DecodeParams(t QRType, raw []byte) (HistoryParams, error) {
	switch t {
	case QRTypeTransfer:
		var p TransferParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	case QRTypeTransactionRequest:
		var p TransactionRequestParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	case QRTypeMessage:
		var p MessageParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQRType, t)
	}
}

// HistoryItem records one generated QR code.
type HistoryItem struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	Timestamp int64         `gorm:"index;not null" json:"timestamp"`
	Type      QRType        `gorm:"index;size:32;not null" json:"type"`
	Label     string        `json:"label"`
	Params    HistoryParams `gorm:"-" json:"params"`
	QRDataURL string        `gorm:"type:text" json:"qrDataUrl"`
	URL       string        `gorm:"type:text;not null" json:"url"`

	// Stored forms of Params.
	Recipient string `gorm:"index" json:"-"`
	RawParams string `gorm:"column:params;type:text" json:"-"`
}

func (HistoryItem) TableName() string {
	return "history"
}

func (h *HistoryItem) BeforeSave(*gorm.DB) error {
	if h.Params == nil {
		return errors.New("history item has no params")
	}
	if h.Params.Kind() != h.Type {
		return fmt.Errorf("history params %s do not match type %s", h.Params.Kind(), h.Type)
	}
	raw, err := json.Marshal(h.Params)
	if err != nil {
		return err
	}
	h.RawParams = string(raw)
	h.Recipient = h.Params.Payee()
	return nil
}

func (h *HistoryItem) AfterFind(*gorm.DB) error {
	params, err := DecodeParams(h.Type, []byte(h.RawParams))
	if err != nil {
		return fmt.Errorf("history item %s: %w", h.ID, err)
	}
	h.Params = params
	return nil
}

func (h *HistoryItem) UnmarshalJSON(data []byte) error {
	type plain HistoryItem
	var aux struct {
		plain
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Params) == 0 || string(aux.Params) == "null" {
		return errors.New("history item has no params")
	}

	params, err := DecodeParams(aux.Type, aux.Params)
	if err != nil {
		return err
	}
	*h = HistoryItem(aux.plain)
	h.Params = params
	return nil
}

type HistoryFilter struct {
	Type   QRType
	Search string
	// From and To bound Timestamp in unix milliseconds; zero means open.
	From  int64
	To    int64
	Limit int
}
