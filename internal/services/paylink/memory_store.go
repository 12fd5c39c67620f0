package paylink

import (
	"context"
	"sort"
	"sync"

	"github.com/facebookgo/clock"

	"solpay/internal/metrics"
	"solpay/internal/models"
	"solpay/internal/solanapay"
	"solpay/internal/utils"
)

type memoryEntry struct {
	link models.PaymentLink
	seq  uint64
}

// MemoryStore is a single-process Store. One mutex serializes every
// operation, so a lazy expiry can never interleave with MarkPaid.
type MemoryStore struct {
	mu    sync.Mutex
	links map[string]*memoryEntry
	seq   uint64

	cfg   StoreConfig
	clock clock.Clock
	newID func() (string, error)
}

// NewMemoryStore creates an empty store. A nil clock means wall time.
func NewMemoryStore(cfg StoreConfig, clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.New()
	}
	return &MemoryStore{
		links: make(map[string]*memoryEntry),
		cfg:   cfg.WithDefaults(),
		clock: clk,
		newID: utils.NewLinkID,
	}
}

func (s *MemoryStore) Create(_ context.Context, draft models.LinkDraft) (*models.PaymentLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.evict()

	id, err := s.allocateID()
	if err != nil {
		return nil, err
	}
	reference, err := solanapay.NewReference()
	if err != nil {
		return nil, err
	}

	s.seq++
	entry := &memoryEntry{
		seq: s.seq,
		link: models.PaymentLink{
			ID:        id,
			Reference: reference,
			Recipient: draft.Recipient,
			Amount:    draft.Amount,
			Token:     draft.Token,
			SPLToken:  draft.SPLToken,
			Label:     draft.Label,
			Message:   draft.Message,
			Memo:      draft.Memo,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cfg.TTL),
			Status:    models.LinkPending,
		},
	}
	s.links[id] = entry
	metrics.RecordLinkOp("create", "ok")

	link := entry.link
	return &link, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.PaymentLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.links[id]
	if !ok {
		metrics.RecordLinkOp("get", "not_found")
		return nil, ErrLinkNotFound
	}

	link := entry.link
	if link.IsExpiredAt(s.clock.Now()) {
		delete(s.links, id)
		link.Status = models.LinkExpired
		metrics.RecordLinkOp("get", "expired")
		return &link, nil
	}

	metrics.RecordLinkOp("get", "ok")
	return &link, nil
}

func (s *MemoryStore) MarkPaid(_ context.Context, id, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.links[id]
	if !ok {
		metrics.RecordLinkOp("mark_paid", "not_found")
		return false, nil
	}
	if entry.link.Status != models.LinkPending {
		metrics.RecordLinkOp("mark_paid", "not_pending")
		return false, nil
	}

	now := s.clock.Now()
	if entry.link.IsExpiredAt(now) {
		delete(s.links, id)
		metrics.RecordLinkOp("mark_paid", "expired")
		return false, nil
	}

	entry.link.Status = models.LinkPaid
	entry.link.PaidAt = &now
	entry.link.Signature = signature
	metrics.RecordLinkOp("mark_paid", "ok")
	return true, nil
}

func (s *MemoryStore) GetStatus(ctx context.Context, id string) (*models.LinkStatusView, error) {
	link, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := link.StatusView()
	return &view, nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links), nil
}

// evict drops expired pending links, then the oldest links until one more
// fits under capacity. Callers hold s.mu.
func (s *MemoryStore) evict() {
	now := s.clock.Now()

	expired := 0
	for id, entry := range s.links {
		if entry.link.IsExpiredAt(now) {
			delete(s.links, id)
			expired++
		}
	}
	metrics.RecordLinkEviction("expired", expired)

	surplus := len(s.links) - s.cfg.Capacity + 1
	if surplus <= 0 {
		return
	}

	entries := make([]*memoryEntry, 0, len(s.links))
	for _, entry := range s.links {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.link.CreatedAt.Equal(b.link.CreatedAt) {
			return a.link.CreatedAt.Before(b.link.CreatedAt)
		}
		return a.seq < b.seq
	})
	for _, entry := range entries[:surplus] {
		delete(s.links, entry.link.ID)
	}
	metrics.RecordLinkEviction("capacity", surplus)
}

func (s *MemoryStore) allocateID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if _, taken := s.links[id]; !taken {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
