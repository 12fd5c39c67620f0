package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"solpay/internal/logger"
	"solpay/internal/models"
	"solpay/internal/repositories"
	"solpay/internal/services/generator"
	"solpay/internal/services/history"
	"solpay/internal/services/onchain"
	"solpay/internal/services/paylink"
	"solpay/internal/services/qr"
	"solpay/internal/services/simulator"
	"solpay/internal/utils"
)

const (
	wallet = "HN7cABqLq46Es1jh92dQQisAq662SmxELLLsHHe4YWrH"
	secret = "watcher-secret"
)

type MockOnChain struct {
	mock.Mock
}

func (m *MockOnChain) ValidateOnChain(ctx context.Context, recipient string, network onchain.Network, tokenMint string) onchain.Validation {
	args := m.Called(ctx, recipient, network, tokenMint)
	return args.Get(0).(onchain.Validation)
}

type testEnv struct {
	app     *fiber.App
	clock   *clock.Mock
	onchain *MockOnChain
}

func newTestEnv(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	log := logger.Nop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repositories.OpenHistoryDB(repositories.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { repositories.CloseDB(db) })

	clk := clock.NewMock()
	clk.Add(time.Duration(1_700_000_000) * time.Second)

	qrSvc := qr.NewService(qr.DefaultConfig())
	historySvc := history.NewService(repositories.NewHistoryRepository(db), clk, log)
	store := paylink.NewMemoryStore(paylink.StoreConfig{TTL: time.Hour, Capacity: 10}, clk)
	onchainMock := new(MockOnChain)

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Links:             paylink.NewService(store, "https://pay.example.com", log),
		OnChain:           onchainMock,
		Generator:         generator.NewService(qrSvc, historySvc, log),
		Simulator:         simulator.NewService(nil, onchain.Devnet, log),
		History:           historySvc,
		QR:                qrSvc,
		DefaultNetwork:    onchain.Devnet,
		OnChainTimeout:    time.Second,
		ValidateRateLimit: rateLimit,
		WatcherJWTSecret:  secret,
		Log:               log,
	})

	return &testEnv{app: app, clock: clk, onchain: onchainMock}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers ...string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func watcherToken(t *testing.T, key string, scopes ...string) string {
	token, err := utils.GenerateWatcherToken(key, "watcher-1", time.Hour, scopes...)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestLinkLifecycle(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, body := env.do(t, http.MethodPost, "/api/links", map[string]string{
		"recipient": wallet, "amount": "1.5", "label": "Coffee",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created paylink.CreateLinkResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "https://pay.example.com/pay/"+created.ID, created.URL)
	assert.Equal(t, created.URL+"?qr=1", created.QRURL)
	assert.True(t, strings.HasPrefix(created.PaymentURL, "solana:"+wallet))

	resp, body = env.do(t, http.MethodGet, "/api/links/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "signature")

	resp, _ = env.do(t, http.MethodGet, "/api/links/"+created.ID+"/qr", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp, _ = env.do(t, http.MethodGet, "/pay/"+created.ID+"?qr=1", nil)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	paidPath := "/api/links/" + created.ID + "/paid"
	resp, _ = env.do(t, http.MethodPost, paidPath, map[string]string{"signature": "sig123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, paidPath, map[string]string{"signature": "sig123"},
		"Authorization", watcherToken(t, "other-secret"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, paidPath, map[string]string{"signature": "sig123"},
		"Authorization", watcherToken(t, secret))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = env.do(t, http.MethodPost, paidPath, map[string]string{"signature": "sig456"},
		"Authorization", watcherToken(t, secret))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/api/links/"+created.ID+"/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status models.LinkStatusView
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, models.LinkPaid, status.Status)
	require.NotNil(t, status.PaidAt)
	assert.True(t, status.ExpiresAt.Equal(created.ExpiresAt))
}

func TestLinkErrors(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, body := env.do(t, http.MethodPost, "/api/links", map[string]string{"recipient": "bad", "amount": "-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_RECIPIENT")

	resp, _ = env.do(t, http.MethodPost, "/api/links", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/links/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/links/missing/status", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/links/missing/paid", map[string]string{"signature": "s"},
		"Authorization", watcherToken(t, secret))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpiredLinkIsNotFound(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, body := env.do(t, http.MethodPost, "/api/links", map[string]string{"recipient": wallet, "amount": "1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created paylink.CreateLinkResponse
	require.NoError(t, json.Unmarshal(body, &created))

	env.clock.Add(2 * time.Hour)

	resp, body = env.do(t, http.MethodGet, "/api/links/"+created.ID+"/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"expired"`)

	resp, _ = env.do(t, http.MethodGet, "/api/links/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidateOnChain(t *testing.T) {
	env := newTestEnv(t, 60)
	env.onchain.On("ValidateOnChain", mock.Anything, wallet, onchain.Mainnet, "").
		Return(onchain.Validation{Valid: true, AccountExists: true, Balance: "5000"})

	resp, body := env.do(t, http.MethodPost, "/api/validate", map[string]string{"recipient": wallet, "network": "mainnet-beta"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"valid":true,"accountExists":true,"isExecutable":false,"balance":"5000"}`, string(body))

	resp, _ = env.do(t, http.MethodPost, "/api/validate", map[string]string{"network": "devnet"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, "/api/validate", map[string]string{"recipient": wallet, "network": "testnet"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "UNSUPPORTED_NETWORK")

	env.onchain.AssertExpectations(t)
}

func TestValidateRateLimit(t *testing.T) {
	env := newTestEnv(t, 2)
	env.onchain.On("ValidateOnChain", mock.Anything, wallet, onchain.Devnet, "").Return(onchain.Validation{})

	for i := 0; i < 2; i++ {
		resp, _ := env.do(t, http.MethodPost, "/api/validate", map[string]string{"recipient": wallet})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, _ := env.do(t, http.MethodPost, "/api/validate", map[string]string{"recipient": wallet})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Syntax checks are not limited.
	resp, _ = env.do(t, http.MethodPost, "/api/validate/syntax", map[string]string{"url": "solana:" + wallet})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidateSyntax(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, body := env.do(t, http.MethodPost, "/api/validate/syntax", map[string]string{"url": "solana:" + wallet + "?amount=0.5"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"valid":true`)
	assert.Contains(t, string(body), `"amount":"0.5"`)

	resp, body = env.do(t, http.MethodPost, "/api/validate/syntax", map[string]string{"url": "solana:bad?amount=-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"valid":false`)

	resp, _ = env.do(t, http.MethodPost, "/api/validate/syntax", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateAndHistory(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, body := env.do(t, http.MethodPost, "/api/generate/transfer", map[string]string{"recipient": wallet, "amount": "2", "label": "Lunch"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var res generator.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.NotEmpty(t, res.HistoryID)

	env.clock.Add(time.Second)
	resp, _ = env.do(t, http.MethodPost, "/api/generate/message", map[string]string{"recipient": wallet, "message": "gm"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/generate/transaction-request", map[string]string{"link": "http://insecure.example"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/api/history?type=transfer&search=lunch", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.HistoryItem
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, res.HistoryID, items[0].ID)

	resp, _ = env.do(t, http.MethodGet, "/api/history?type=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, exported := env.do(t, http.MethodGet, "/api/history/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	admin := watcherToken(t, secret, models.ScopeHistoryAdmin)
	watcher := watcherToken(t, secret)

	resp, _ = env.do(t, http.MethodDelete, "/api/history/"+res.HistoryID, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = env.do(t, http.MethodDelete, "/api/history", nil, "Authorization", watcher)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = env.do(t, http.MethodPost, "/api/history/import", exported)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/history/"+res.HistoryID, nil, "Authorization", admin)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = env.do(t, http.MethodDelete, "/api/history/"+res.HistoryID, nil, "Authorization", admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/history", nil, "Authorization", admin)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = env.do(t, http.MethodPost, "/api/history/import", exported, "Authorization", admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"imported":2,"errors":0}`, string(body))

	resp, _ = env.do(t, http.MethodPost, "/api/history/import", []byte(`{"nope":1}`), "Authorization", admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSimulate(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, body := env.do(t, http.MethodGet, "/api/simulate/scenarios", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Empty Wallet")

	resp, body = env.do(t, http.MethodPost, "/api/simulate", map[string]string{
		"recipient": wallet, "amount": "1", "scenario": "Insufficient SOL",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"outcome":"insufficient_funds"`)

	resp, _ = env.do(t, http.MethodPost, "/api/simulate", map[string]string{
		"recipient": wallet, "amount": "1", "scenario": "Whale",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, 60)

	resp, body := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, body = env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "solpay_http_requests_total")
}
