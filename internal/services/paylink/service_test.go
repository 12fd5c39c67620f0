package paylink

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"solpay/internal/logger"
	"solpay/internal/models"
	"solpay/internal/solanapay"
	"solpay/internal/validation"
)

const usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, draft models.LinkDraft) (*models.PaymentLink, error) {
	args := m.Called(ctx, draft)
	link, _ := args.Get(0).(*models.PaymentLink)
	return link, args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, id string) (*models.PaymentLink, error) {
	args := m.Called(ctx, id)
	link, _ := args.Get(0).(*models.PaymentLink)
	return link, args.Error(1)
}

func (m *MockStore) MarkPaid(ctx context.Context, id, signature string) (bool, error) {
	args := m.Called(ctx, id, signature)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) GetStatus(ctx context.Context, id string) (*models.LinkStatusView, error) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*models.LinkStatusView)
	return view, args.Error(1)
}

func (m *MockStore) Len(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestService() (Service, *MemoryStore) {
	store, _ := newTestStore(10)
	return NewService(store, "https://pay.example.com/", logger.Nop()), store
}

func TestService_CreateLink(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	res, err := svc.CreateLink(ctx, CreateLinkRequest{
		Recipient: recipient,
		Amount:    "1.5",
		SPLToken:  usdcMint,
		Token:     "USDC",
		Message:   "Thanks",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/pay/"+res.ID, res.URL)
	assert.Equal(t, "https://pay.example.com/pay/"+res.ID+"?qr=1", res.QRURL)

	parsed, err := solanapay.Decode(res.PaymentURL)
	require.NoError(t, err)
	assert.Equal(t, recipient, parsed.Recipient)
	assert.Equal(t, "1.5", parsed.Amount)
	assert.Equal(t, usdcMint, parsed.SPLToken)
	assert.Equal(t, []string{res.Reference}, parsed.References)
	assert.Equal(t, DefaultLabel, parsed.Label)

	link, err := store.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "USDC", link.Token)
	assert.Equal(t, res.ExpiresAt, link.ExpiresAt)
}

func TestService_CreateLinkDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	res, err := svc.CreateLink(ctx, CreateLinkRequest{Recipient: " " + recipient + " ", Amount: "2"})
	require.NoError(t, err)

	link, err := svc.GetLink(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, recipient, link.Recipient)
	assert.Equal(t, DefaultToken, link.Token)
	assert.Equal(t, DefaultLabel, link.Label)
	assert.Equal(t, models.LinkPending, link.Status)
}

func TestService_CreateLinkValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateLinkRequest
		codes []string
	}{
		{
			name:  "bad recipient and amount",
			req:   CreateLinkRequest{Recipient: "bad", Amount: "-1"},
			codes: []string{validation.CodeInvalidRecipient, validation.CodeInvalidAmount},
		},
		{
			name:  "missing amount",
			req:   CreateLinkRequest{Recipient: recipient},
			codes: []string{validation.CodeInvalidAmount},
		},
		{
			name:  "bad mint",
			req:   CreateLinkRequest{Recipient: recipient, Amount: "1", SPLToken: "mint"},
			codes: []string{validation.CodeInvalidToken},
		},
		{
			name:  "oversized label",
			req:   CreateLinkRequest{Recipient: recipient, Amount: "1", Label: strings.Repeat("x", validation.MaxLabelLength+1)},
			codes: []string{validation.CodeLabelTooLong},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			svc := NewService(store, "https://pay.example.com", logger.Nop())

			_, err := svc.CreateLink(context.Background(), tt.req)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, 0, len(verr.Issues))
			for _, i := range verr.Issues {
				got = append(got, i.Code)
			}
			assert.Equal(t, tt.codes, got)
			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateLinkStoreFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	svc := NewService(store, "https://pay.example.com", logger.Nop())

	_, err := svc.CreateLink(context.Background(), CreateLinkRequest{Recipient: recipient, Amount: "1"})
	assert.ErrorContains(t, err, "redis down")
	store.AssertExpectations(t)
}

func TestService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	res, err := svc.CreateLink(ctx, CreateLinkRequest{Recipient: recipient, Amount: "1.5"})
	require.NoError(t, err)

	status, err := svc.MarkPaid(ctx, res.ID, "sig123")
	require.NoError(t, err)
	assert.Equal(t, models.LinkPaid, status.Status)
	assert.NotNil(t, status.PaidAt)
	assert.Equal(t, res.ExpiresAt, status.ExpiresAt)

	_, err = svc.MarkPaid(ctx, res.ID, "sig456")
	assert.ErrorIs(t, err, ErrLinkNotPending)

	_, err = svc.MarkPaid(ctx, "missing", "sig")
	assert.ErrorIs(t, err, ErrLinkNotFound)

	var verr *ValidationError
	_, err = svc.MarkPaid(ctx, res.ID, " ")
	assert.True(t, errors.As(err, &verr))

	public, err := svc.GetLink(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LinkPaid, public.Status)
}

func TestService_ExpiredLinkIsNotFound(t *testing.T) {
	ctx := context.Background()
	store, clk := newTestStore(10)
	svc := NewService(store, "https://pay.example.com", logger.Nop())

	res, err := svc.CreateLink(ctx, CreateLinkRequest{Recipient: recipient, Amount: "1"})
	require.NoError(t, err)

	clk.Add(2 * time.Hour)
	_, err = svc.MarkPaid(ctx, res.ID, "sig")
	assert.ErrorIs(t, err, ErrLinkNotFound)

	_, err = svc.GetStatus(ctx, res.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestService_PaymentURL(t *testing.T) {
	ctx := context.Background()
	store, clk := newTestStore(10)
	svc := NewService(store, "https://pay.example.com", logger.Nop())

	res, err := svc.CreateLink(ctx, CreateLinkRequest{Recipient: recipient, Amount: "1", Memo: "order-1"})
	require.NoError(t, err)

	paymentURL, err := svc.PaymentURL(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.PaymentURL, paymentURL)
	assert.Contains(t, paymentURL, "memo=order-1")

	clk.Add(2 * time.Hour)
	_, err = svc.PaymentURL(ctx, res.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)
}
