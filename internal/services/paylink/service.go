// Package paylink manages shareable Solana Pay payment links.
//
// Links live for a fixed TTL and are expired lazily when read. The only
// mutation after creation is the single pending to paid transition, driven
// by an external payment watcher.
package paylink

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"solpay/internal/models"
	"solpay/internal/solanapay"
	"solpay/internal/validation"
)

type service struct {
	store   Store
	baseURL string
	log     zerolog.Logger
}

// NewService creates a new payment link service. baseURL prefixes the
// shareable /pay/<id> links.
func NewService(store Store, baseURL string, log zerolog.Logger) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With().Str("component", "paylink").Logger(),
	}
}

func (s *service) CreateLink(ctx context.Context, req CreateLinkRequest) (*CreateLinkResponse, error) {
	req = normalize(req)
	if issues := validateCreate(req); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	link, err := s.store.Create(ctx, models.LinkDraft{
		Recipient: req.Recipient,
		Amount:    req.Amount,
		Token:     req.Token,
		SPLToken:  req.SPLToken,
		Label:     req.Label,
		Message:   req.Message,
		Memo:      req.Memo,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment link: %w", err)
	}

	paymentURL, err := transferURL(link)
	if err != nil {
		return nil, fmt.Errorf("encode payment link %s: %w", link.ID, err)
	}

	s.log.Info().Str("id", link.ID).Str("recipient", link.Recipient).Str("amount", link.Amount).Msg("payment link created")

	shareURL := s.baseURL + "/pay/" + link.ID
	return &CreateLinkResponse{
		ID:         link.ID,
		URL:        shareURL,
		QRURL:      shareURL + "?qr=1",
		PaymentURL: paymentURL,
		Reference:  link.Reference,
		ExpiresAt:  link.ExpiresAt,
	}, nil
}

func (s *service) GetLink(ctx context.Context, id string) (*models.PublicPaymentLink, error) {
	link, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	public := link.Public()
	return &public, nil
}

func (s *service) GetStatus(ctx context.Context, id string) (*models.LinkStatusView, error) {
	return s.store.GetStatus(ctx, id)
}

func (s *service) MarkPaid(ctx context.Context, id, signature string) (*models.LinkStatusView, error) {
	if strings.TrimSpace(signature) == "" {
		return nil, &ValidationError{Issues: []validation.Issue{{
			Field: "signature", Code: "REQUIRED", Message: "Signature is required",
		}}}
	}

	ok, err := s.store.MarkPaid(ctx, id, signature)
	if err != nil {
		return nil, fmt.Errorf("mark payment link %s paid: %w", id, err)
	}
	if !ok {
		// Classify the refusal. Reading may expire the link, which is fine:
		// it was already unpayable.
		link, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if link.Status == models.LinkExpired {
			return nil, ErrLinkNotFound
		}
		return nil, ErrLinkNotPending
	}

	s.log.Info().Str("id", id).Str("signature", signature).Msg("payment link paid")
	return s.store.GetStatus(ctx, id)
}

func (s *service) PaymentURL(ctx context.Context, id string) (string, error) {
	link, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if link.Status == models.LinkExpired {
		return "", ErrLinkNotFound
	}
	return transferURL(link)
}

func transferURL(link *models.PaymentLink) (string, error) {
	return solanapay.Encode(solanapay.TransferRequest{
		Recipient:  link.Recipient,
		Amount:     link.Amount,
		SPLToken:   link.SPLToken,
		References: []string{link.Reference},
		Label:      link.Label,
		Message:    link.Message,
		Memo:       link.Memo,
	})
}

func normalize(req CreateLinkRequest) CreateLinkRequest {
	req.Recipient = strings.TrimSpace(req.Recipient)
	req.Amount = strings.TrimSpace(req.Amount)
	req.SPLToken = strings.TrimSpace(req.SPLToken)
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		req.Token = DefaultToken
	}
	if strings.TrimSpace(req.Label) == "" {
		req.Label = DefaultLabel
	}
	return req
}

func validateCreate(req CreateLinkRequest) []validation.Issue {
	v := validation.New()
	v.Recipient("recipient", req.Recipient)
	v.Amount("amount", req.Amount)
	if req.SPLToken != "" {
		v.Address("splToken", validation.CodeInvalidToken, "Invalid SPL token mint address", req.SPLToken)
	}
	v.MaxLengthError("label", validation.CodeLabelTooLong, req.Label, validation.MaxLabelLength)
	v.MaxLengthError("message", validation.CodeMessageTooLong, req.Message, validation.MaxMessageLength)
	return v.Errors
}
