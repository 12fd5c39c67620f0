package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/facebookgo/clock"
	"github.com/redis/go-redis/v9"

	"solpay/internal/metrics"
	"solpay/internal/models"
	"solpay/internal/services/paylink"
	"solpay/internal/solanapay"
	"solpay/internal/utils"
	keys "solpay/internal/utils/cache"
)

const redisIDAttempts = 10

// Each link is a hash. Two sorted sets index it: every link by createdAt and
// pending links by expiresAt. All transitions run as scripts so concurrent
// instances observe them atomically.
var (
	// KEYS: link, created index, pending index
	// ARGV: id, nowMs, capacity, link key prefix, then field/value pairs
	createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return {0, 0, 0}
end

local now = tonumber(ARGV[2])
local function drop(id)
  redis.call('DEL', ARGV[4] .. id)
  redis.call('ZREM', KEYS[2], id)
  redis.call('ZREM', KEYS[3], id)
end

local expired = redis.call('ZRANGEBYSCORE', KEYS[3], '-inf', '(' .. now)
for _, id in ipairs(expired) do
  drop(id)
end

local surplus = redis.call('ZCARD', KEYS[2]) - tonumber(ARGV[3]) + 1
if surplus > 0 then
  for _, id in ipairs(redis.call('ZRANGE', KEYS[2], 0, surplus - 1)) do
    drop(id)
  end
else
  surplus = 0
end

local fields = {}
for i = 5, #ARGV do
  fields[#fields + 1] = ARGV[i]
end
redis.call('HSET', KEYS[1], unpack(fields))
redis.call('ZADD', KEYS[2], now, ARGV[1])
redis.call('ZADD', KEYS[3], redis.call('HGET', KEYS[1], 'expiresAt'), ARGV[1])
return {1, #expired, surplus}
`)

	// KEYS: link, created index, pending index
	// ARGV: id, nowMs
	getScript = redis.NewScript(`
local fields = redis.call('HGETALL', KEYS[1])
if #fields == 0 then
  return false
end
if redis.call('HGET', KEYS[1], 'status') == 'pending'
  and tonumber(ARGV[2]) > tonumber(redis.call('HGET', KEYS[1], 'expiresAt')) then
  redis.call('DEL', KEYS[1])
  redis.call('ZREM', KEYS[2], ARGV[1])
  redis.call('ZREM', KEYS[3], ARGV[1])
  fields[#fields + 1] = 'status'
  fields[#fields + 1] = 'expired'
end
return fields
`)

	// KEYS: link, created index, pending index
	// ARGV: id, nowMs, signature
	// Returns 1 when paid, 0 when missing or settled, -1 when expired.
	markPaidScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status or status ~= 'pending' then
  return 0
end
if tonumber(ARGV[2]) > tonumber(redis.call('HGET', KEYS[1], 'expiresAt')) then
  redis.call('DEL', KEYS[1])
  redis.call('ZREM', KEYS[2], ARGV[1])
  redis.call('ZREM', KEYS[3], ARGV[1])
  return -1
end
redis.call('HSET', KEYS[1], 'status', 'paid', 'paidAt', ARGV[2], 'signature', ARGV[3])
redis.call('ZREM', KEYS[3], ARGV[1])
return 1
`)
)

// RedisStore is a paylink.Store shared by every instance pointed at the
// same Redis database. The create script deletes evicted link hashes by
// name, keys it cannot declare up front, so the store needs a standalone
// server rather than a cluster.
type RedisStore struct {
	client *redis.Client
	cfg    paylink.StoreConfig
	clock  clock.Clock
	newID  func() (string, error)
}

func NewRedisStore(client *redis.Client, cfg paylink.StoreConfig, clk clock.Clock) *RedisStore {
	if clk == nil {
		clk = clock.New()
	}
	return &RedisStore{
		client: client,
		cfg:    cfg.WithDefaults(),
		clock:  clk,
		newID:  utils.NewLinkID,
	}
}

func linkKey(id string) string {
	return keys.GenerateKey(keys.EntityPaymentLink, keys.KeyID, id)
}

func scriptKeys(id string) []string {
	return []string{
		linkKey(id),
		keys.GenerateKey(keys.EntityPaymentLink, keys.KeyIndex, "created"),
		keys.GenerateKey(keys.EntityPaymentLink, keys.KeyIndex, "pending"),
	}
}

func (s *RedisStore) Create(ctx context.Context, draft models.LinkDraft) (*models.PaymentLink, error) {
	reference, err := solanapay.NewReference()
	if err != nil {
		return nil, err
	}

	for i := 0; i < redisIDAttempts; i++ {
		id, err := s.newID()
		if err != nil {
			return nil, err
		}

		now := s.clock.Now()
		link := &models.PaymentLink{
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
		}

		args := []interface{}{id, toMillis(now), s.cfg.Capacity, keys.KeyPrefix(keys.EntityPaymentLink, keys.KeyID)}
		args = append(args, encodeLink(link)...)

		res, err := createScript.Run(ctx, s.client, scriptKeys(id), args...).Int64Slice()
		if err != nil {
			return nil, fmt.Errorf("create link: %w", err)
		}
		if len(res) != 3 {
			return nil, fmt.Errorf("create link: unexpected script reply %v", res)
		}
		if res[0] == 0 {
			continue
		}

		metrics.RecordLinkEviction("expired", int(res[1]))
		metrics.RecordLinkEviction("capacity", int(res[2]))
		metrics.RecordLinkOp("create", "ok")

		// Round-trip the timestamps through their stored precision.
		link.CreatedAt = fromMillis(toMillis(link.CreatedAt))
		link.ExpiresAt = fromMillis(toMillis(link.ExpiresAt))
		return link, nil
	}
	return nil, paylink.ErrIDExhausted
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.PaymentLink, error) {
	raw, err := getScript.Run(ctx, s.client, scriptKeys(id), id, toMillis(s.clock.Now())).StringSlice()
	if errors.Is(err, redis.Nil) {
		metrics.RecordLinkOp("get", "not_found")
		return nil, paylink.ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get link %s: %w", id, err)
	}

	link, err := decodeLink(pairs(raw))
	if err != nil {
		return nil, fmt.Errorf("decode link %s: %w", id, err)
	}
	if link.Status == models.LinkExpired {
		metrics.RecordLinkOp("get", "expired")
	} else {
		metrics.RecordLinkOp("get", "ok")
	}
	return link, nil
}

func (s *RedisStore) MarkPaid(ctx context.Context, id, signature string) (bool, error) {
	res, err := markPaidScript.Run(ctx, s.client, scriptKeys(id), id, toMillis(s.clock.Now()), signature).Int64()
	if err != nil {
		return false, fmt.Errorf("mark link %s paid: %w", id, err)
	}

	switch res {
	case 1:
		metrics.RecordLinkOp("mark_paid", "ok")
		return true, nil
	case -1:
		metrics.RecordLinkOp("mark_paid", "expired")
	default:
		metrics.RecordLinkOp("mark_paid", "rejected")
	}
	return false, nil
}

func (s *RedisStore) GetStatus(ctx context.Context, id string) (*models.LinkStatusView, error) {
	link, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := link.StatusView()
	return &view, nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n, err := s.client.ZCard(ctx, scriptKeys("")[1]).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// encodeLink flattens a link into HSET field/value arguments.
func encodeLink(l *models.PaymentLink) []interface{} {
	return []interface{}{
		"id", l.ID,
		"reference", l.Reference,
		"recipient", l.Recipient,
		"amount", l.Amount,
		"token", l.Token,
		"splToken", l.SPLToken,
		"label", l.Label,
		"message", l.Message,
		"memo", l.Memo,
		"createdAt", toMillis(l.CreatedAt),
		"expiresAt", toMillis(l.ExpiresAt),
		"status", string(l.Status),
	}
}

// pairs folds an HGETALL reply into a map. Later duplicates win.
func pairs(raw []string) map[string]string {
	m := make(map[string]string, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		m[raw[i]] = raw[i+1]
	}
	return m
}

func decodeLink(m map[string]string) (*models.PaymentLink, error) {
	createdAt, err := strconv.ParseInt(m["createdAt"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	expiresAt, err := strconv.ParseInt(m["expiresAt"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("expiresAt: %w", err)
	}

	link := &models.PaymentLink{
		ID:        m["id"],
		Reference: m["reference"],
		Recipient: m["recipient"],
		Amount:    m["amount"],
		Token:     m["token"],
		SPLToken:  m["splToken"],
		Label:     m["label"],
		Message:   m["message"],
		Memo:      m["memo"],
		CreatedAt: fromMillis(createdAt),
		ExpiresAt: fromMillis(expiresAt),
		Status:    models.LinkStatus(m["status"]),
		Signature: m["signature"],
	}

	if v, ok := m["paidAt"]; ok && v != "" {
		paidAt, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("paidAt: %w", err)
		}
		t := fromMillis(paidAt)
		link.PaidAt = &t
	}
	return link, nil
}
