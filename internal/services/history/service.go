// Package history keeps a browsable log of generated QR codes.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"solpay/internal/metrics"
	"solpay/internal/models"
	"solpay/internal/repositories"
	"solpay/internal/solanapay"
	"solpay/internal/validation"
)

const maxIDLength = 36

type service struct {
	repo  repositories.HistoryRepository
	clock clock.Clock
	log   zerolog.Logger
}

// NewService creates a new history service. A nil clock means wall time.
func NewService(repo repositories.HistoryRepository, clk clock.Clock, log zerolog.Logger) Service {
	if repo == nil {
		panic("history repository is required")
	}
	if clk == nil {
		clk = clock.New()
	}
	return &service{
		repo:  repo,
		clock: clk,
		log:   log.With().Str("component", "history").Logger(),
	}
}

func (s *service) Record(ctx context.Context, entry Entry) (*models.HistoryItem, error) {
	if entry.Params == nil {
		return nil, fmt.Errorf("%w: params are required", ErrInvalidEntry)
	}
	if !strings.HasPrefix(entry.URL, solanapay.Prefix) {
		return nil, fmt.Errorf("%w: url must start with %s", ErrInvalidEntry, solanapay.Prefix)
	}

	item := &models.HistoryItem{
		ID:        uuid.NewString(),
		Timestamp: s.clock.Now().UnixMilli(),
		Type:      entry.Params.Kind(),
		Label:     entry.Label,
		Params:    entry.Params,
		QRDataURL: entry.QRDataURL,
		URL:       entry.URL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	metrics.RecordHistory(string(item.Type))
	return item, nil
}

func (s *service) List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryItem, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownQRType, filter.Type)
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Clear(ctx context.Context) (int64, error) {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("deleted", n).Msg("history cleared")
	return n, nil
}

func (s *service) Export(ctx context.Context) ([]byte, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.HistoryItem{}
	}
	return json.MarshalIndent(items, "", "  ")
}

func (s *service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	result := &ImportResult{}
	for i, raw := range raws {
		var item models.HistoryItem
		if err := json.Unmarshal(raw, &item); err != nil {
			s.log.Debug().Err(err).Int("index", i).Msg("skipping malformed history record")
			result.Errors++
			continue
		}
		if err := s.checkImported(&item); err != nil {
			s.log.Debug().Err(err).Int("index", i).Msg("skipping invalid history record")
			result.Errors++
			continue
		}
		if err := s.repo.Upsert(ctx, &item); err != nil {
			s.log.Warn().Err(err).Str("id", item.ID).Msg("failed to store imported history record")
			result.Errors++
			continue
		}
		result.Imported++
	}

	s.log.Info().Int("imported", result.Imported).Int("errors", result.Errors).Msg("history imported")
	return result, nil
}

// checkImported validates an imported item and fills the fields an older
// export may lack.
func (s *service) checkImported(item *models.HistoryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if utf8.RuneCountInString(item.ID) > maxIDLength {
		return fmt.Errorf("%w: id too long", ErrInvalidEntry)
	}
	if item.Timestamp <= 0 {
		item.Timestamp = s.clock.Now().UnixMilli()
	}
	if !strings.HasPrefix(item.URL, solanapay.Prefix) {
		return fmt.Errorf("%w: url must start with %s", ErrInvalidEntry, solanapay.Prefix)
	}

	switch p := item.Params.(type) {
	case models.TransferParams:
		if len(p.Recipient) < validation.MinAddressLength {
			return fmt.Errorf("%w: recipient too short", ErrInvalidEntry)
		}
		if p.Amount == "" {
			return fmt.Errorf("%w: amount is required", ErrInvalidEntry)
		}
	case models.TransactionRequestParams:
		if !strings.HasPrefix(p.Link, "https://") {
			return fmt.Errorf("%w: link must use https", ErrInvalidEntry)
		}
	case models.MessageParams:
		if len(p.Recipient) < validation.MinAddressLength {
			return fmt.Errorf("%w: recipient too short", ErrInvalidEntry)
		}
	default:
		return fmt.Errorf("%w: missing params", ErrInvalidEntry)
	}
	return nil
}
