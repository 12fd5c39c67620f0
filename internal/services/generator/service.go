// Package generator turns form input into Solana Pay URLs and QR codes and
// records each one in history.
package generator

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"solpay/internal/models"
	"solpay/internal/services/history"
	"solpay/internal/services/qr"
	"solpay/internal/solanapay"
	"solpay/internal/validation"
)

type service struct {
	qr      qr.Service
	history Recorder
	log     zerolog.Logger
}

// NewService creates a generator. history may be nil, in which case nothing
// is recorded.
func NewService(qrSvc qr.Service, history Recorder, log zerolog.Logger) Service {
	if qrSvc == nil {
		panic("qr service is required")
	}
	return &service{
		qr:      qrSvc,
		history: history,
		log:     log.With().Str("component", "generator").Logger(),
	}
}

func (s *service) Transfer(ctx context.Context, req TransferRequest) (*Result, error) {
	req = trimTransfer(req)
	if issues := validation.Struct(req); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	reference := req.Reference
	if reference == "" {
		var err error
		if reference, err = solanapay.NewReference(); err != nil {
			return nil, err
		}
	}

	symbol := req.TokenSymbol
	if symbol == "" && req.SPLToken != "" {
		symbol = "SPL"
	}

	payURL, err := solanapay.Encode(solanapay.TransferRequest{
		Recipient:  req.Recipient,
		Amount:     req.Amount,
		SPLToken:   req.SPLToken,
		References: []string{reference},
		Label:      req.Label,
		Message:    req.Message,
		Memo:       req.Memo,
	})
	if err != nil {
		return nil, fmt.Errorf("encode transfer: %w", err)
	}

	params := models.TransferParams{
		Recipient:   req.Recipient,
		Amount:      req.Amount,
		SPLToken:    req.SPLToken,
		TokenSymbol: symbol,
		Reference:   reference,
		Label:       req.Label,
		Message:     req.Message,
		Memo:        req.Memo,
	}

	label := req.Label
	if label == "" {
		if symbol == "" {
			symbol = "SOL"
		}
		label = req.Amount + " " + symbol
	}

	res, err := s.render(ctx, payURL, label, params)
	if err != nil {
		return nil, err
	}
	res.Reference = reference
	res.Params = &params
	return res, nil
}

func (s *service) TransactionRequest(ctx context.Context, req TransactionRequestInput) (*Result, error) {
	req.Link = strings.TrimSpace(req.Link)
	if issues := validation.Struct(req); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	payURL, err := solanapay.TransactionRequestURL(req.Link, req.Label, req.Message)
	if err != nil {
		return nil, &ValidationError{Issues: []validation.Issue{{
			Field: "link", Code: "INVALID_LINK", Message: "Invalid transaction request link",
		}}}
	}

	label := req.Label
	if label == "" {
		if u, err := url.Parse(req.Link); err == nil {
			label = u.Host
		}
	}

	return s.render(ctx, payURL, label, models.TransactionRequestParams{
		Link:    req.Link,
		Label:   req.Label,
		Message: req.Message,
	})
}

func (s *service) Message(ctx context.Context, req MessageRequest) (*Result, error) {
	req.Recipient = strings.TrimSpace(req.Recipient)
	if issues := validation.Struct(req); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	payURL, err := solanapay.MessageURL(req.Recipient, req.Message, req.Label)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	label := req.Label
	if label == "" {
		label = "Message"
	}

	return s.render(ctx, payURL, label, models.MessageParams{
		Recipient: req.Recipient,
		Message:   req.Message,
		Label:     req.Label,
	})
}

// render draws the QR code and records the result. A history failure is
// logged but never fails the generation.
func (s *service) render(ctx context.Context, payURL, label string, params models.HistoryParams) (*Result, error) {
	b64, err := s.qr.Base64(payURL)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}

	res := &Result{URL: payURL, QRBase64: b64}
	if s.history == nil {
		return res, nil
	}

	item, err := s.history.Record(ctx, history.Entry{
		Label:     label,
		Params:    params,
		QRDataURL: qr.DataURLPrefix + b64,
		URL:       payURL,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("type", string(params.Kind())).Msg("failed to record history")
		return res, nil
	}
	res.HistoryID = item.ID
	return res, nil
}

func trimTransfer(req TransferRequest) TransferRequest {
	req.Recipient = strings.TrimSpace(req.Recipient)
	req.Amount = strings.TrimSpace(req.Amount)
	req.SPLToken = strings.TrimSpace(req.SPLToken)
	req.Reference = strings.TrimSpace(req.Reference)
	req.TokenSymbol = strings.TrimSpace(req.TokenSymbol)
	return req
}
