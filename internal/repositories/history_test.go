package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solpay/internal/models"
)

const wallet = "HN7cABqLq46Es1jh92dQQisAq662SmxELLLsHHe4YWrH"

func newTestRepo(t *testing.T) HistoryRepository {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := OpenHistoryDB(DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db) })
	return NewHistoryRepository(db)
}

func transferItem(id string, ts int64, label, recipient string) *models.HistoryItem {
	return &models.HistoryItem{
		ID:        id,
		Timestamp: ts,
		Type:      models.QRTypeTransfer,
		Label:     label,
		Params:    models.TransferParams{Recipient: recipient, Amount: "1", Label: label},
		URL:       "solana:" + recipient + "?amount=1",
		QRDataURL: "data:image/png;base64,AAAA",
	}
}

func TestHistoryRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	item := transferItem("a", 1000, "Coffee", wallet)
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.TransferParams{Recipient: wallet, Amount: "1", Label: "Coffee"}, got.Params)
	assert.Equal(t, wallet, got.Recipient)
	assert.Equal(t, item.URL, got.URL)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrHistoryNotFound)
}

func TestHistoryRepository_RejectsMismatchedParams(t *testing.T) {
	repo := newTestRepo(t)

	item := transferItem("a", 1000, "x", wallet)
	item.Type = models.QRTypeMessage
	assert.Error(t, repo.Create(context.Background(), item))
}

func TestHistoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(ctx, transferItem("t1", 1000, "Coffee", wallet)))
	require.NoError(t, repo.Create(ctx, transferItem("t2", 3000, "Tea 100%", "So11111111111111111111111111111111111111112")))
	require.NoError(t, repo.Create(ctx, &models.HistoryItem{
		ID: "tx", Timestamp: 2000, Type: models.QRTypeTransactionRequest, Label: "Shop",
		Params: models.TransactionRequestParams{Link: "https://example.com/tx"}, URL: "solana:https://example.com/tx",
	}))
	require.NoError(t, repo.Create(ctx, &models.HistoryItem{
		ID: "m", Timestamp: 4000, Type: models.QRTypeMessage, Label: "Hello",
		Params: models.MessageParams{Recipient: wallet, Message: "hi"}, URL: "solana:" + wallet + "?message=hi",
	}))

	ids := func(items []models.HistoryItem) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter models.HistoryFilter
		want   []string
	}{
		{"all newest first", models.HistoryFilter{}, []string{"m", "t2", "tx", "t1"}},
		{"by type", models.HistoryFilter{Type: models.QRTypeTransfer}, []string{"t2", "t1"}},
		{"search label", models.HistoryFilter{Search: "coFFee"}, []string{"t1"}},
		{"search recipient", models.HistoryFilter{Search: "hn7cab"}, []string{"m", "t1"}},
		{"search literal percent", models.HistoryFilter{Search: "100%"}, []string{"t2"}},
		{"date range", models.HistoryFilter{From: 2000, To: 3000}, []string{"t2", "tx"}},
		{"limit", models.HistoryFilter{Limit: 2}, []string{"m", "t2"}},
		{"type and search", models.HistoryFilter{Type: models.QRTypeMessage, Search: "hn7"}, []string{"m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(items))
		})
	}
}

func TestHistoryRepository_UpsertDeleteClear(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Upsert(ctx, transferItem("a", 1000, "Old", wallet)))
	require.NoError(t, repo.Upsert(ctx, transferItem("a", 1000, "New", wallet)))
	require.NoError(t, repo.Upsert(ctx, transferItem("b", 2000, "Other", wallet)))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Label)

	require.NoError(t, repo.Delete(ctx, "a"))
	assert.ErrorIs(t, repo.Delete(ctx, "a"), ErrHistoryNotFound)

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
