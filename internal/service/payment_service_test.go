// FILE: internal/service/payment_service_test.go
package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"

	"ai-charstudio-be/internal/config"
	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidSignature(t *testing.T) {
	serverKey := "SB-Mid-server-testkey"
	orderId := "f2a664e5-44b1-4b25-92eb-17c6b7d8a2ce"
	statusCode := "200"
	grossAmount := "500.00"

	valid := fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+statusCode+grossAmount+serverKey)))

	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{name: "matching signature", signature: valid, want: true},
		{name: "empty signature", signature: "", want: false},
		{name: "tampered signature", signature: valid[:len(valid)-1] + "0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidSignature(orderId, statusCode, grossAmount, tt.signature, serverKey)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidSignatureRejectsTamperedAmount(t *testing.T) {
	serverKey := "SB-Mid-server-testkey"
	orderId := "f2a664e5-44b1-4b25-92eb-17c6b7d8a2ce"

	signature := fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+"200"+"500.00"+serverKey)))

	assert.False(t, ValidSignature(orderId, "200", "10000.00", signature, serverKey))
}

func TestSplitDescription(t *testing.T) {
	tests := []struct {
		name            string
		answer          string
		wantDescription string
		wantStyle       string
	}{
		{
			name:            "description with style line",
			answer:          "A cheerful robot with round blue eyes.\nStyle: Pixel Art",
			wantDescription: "A cheerful robot with round blue eyes.",
			wantStyle:       "Pixel Art",
		},
		{
			name:            "missing style falls back to default",
			answer:          "A cheerful robot with round blue eyes.",
			wantDescription: "A cheerful robot with round blue eyes.",
			wantStyle:       defaultStyle,
		},
		{
			name:            "empty style falls back to default",
			answer:          "A cheerful robot.\nStyle:   ",
			wantDescription: "A cheerful robot.",
			wantStyle:       defaultStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			description, style := splitDescription(tt.answer)
			assert.Equal(t, tt.wantDescription, description)
			assert.Equal(t, tt.wantStyle, style)
		})
	}
}

type stubPaymentRepo struct {
	purchase *entity.CreditPurchase

	events    []*entity.PaymentEvent
	findCalls int
	markCalls int
}

func (r *stubPaymentRepo) CreatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error {
	return nil
}

func (r *stubPaymentRepo) FindOnePurchase(ctx context.Context, specs ...specification.Specification) (*entity.CreditPurchase, error) {
	r.findCalls++
	return r.purchase, nil
}

func (r *stubPaymentRepo) FindAllPurchases(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPurchase, error) {
	return nil, nil
}

func (r *stubPaymentRepo) MarkPurchaseStatus(ctx context.Context, id uuid.UUID, from, to entity.PurchaseStatus) (bool, error) {
	r.markCalls++
	return true, nil
}

func (r *stubPaymentRepo) CreateEvent(ctx context.Context, event *entity.PaymentEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *stubPaymentRepo) FindAllEvents(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentEvent, error) {
	return nil, nil
}

func newWebhookService(repo *stubPaymentRepo, serverKey string) IPaymentService {
	cfg := &config.Config{}
	cfg.Payment.ServerKey = serverKey
	factory := stubUowFactory{uow: &stubUnitOfWork{payments: repo}}
	return NewPaymentService(cfg, factory, nil, nil, nil, nil)
}

func TestHandleNotificationRecordsRejectedSignature(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc := newWebhookService(repo, "SB-Mid-server-testkey")

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		TransactionStatus: "settlement",
		OrderId:           "f2a664e5-44b1-4b25-92eb-17c6b7d8a2ce",
		StatusCode:        "200",
		GrossAmount:       "500.00",
		SignatureKey:      "forged",
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	if assert.Len(t, repo.events, 1, "rejected notifications must stay inspectable") {
		assert.False(t, repo.events[0].SignatureValid)
		assert.Nil(t, repo.events[0].ProcessedAt)
		assert.Equal(t, "settlement", repo.events[0].EventType)
	}
	assert.Zero(t, repo.findCalls, "no purchase lookup on a bad signature")
	assert.Zero(t, repo.markCalls, "no status transition on a bad signature")
}

func TestHandleNotificationUnknownPurchase(t *testing.T) {
	serverKey := "SB-Mid-server-testkey"
	orderId := "f2a664e5-44b1-4b25-92eb-17c6b7d8a2ce"
	signature := fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+"200"+"500.00"+serverKey)))

	repo := &stubPaymentRepo{}
	svc := newWebhookService(repo, serverKey)

	err := svc.HandleNotification(context.Background(), &dto.MidtransWebhookRequest{
		TransactionStatus: "settlement",
		OrderId:           orderId,
		StatusCode:        "200",
		GrossAmount:       "500.00",
		SignatureKey:      signature,
	})

	assert.ErrorIs(t, err, ErrInvalidPayload)
	if assert.Len(t, repo.events, 1) {
		assert.True(t, repo.events[0].SignatureValid)
		assert.NotNil(t, repo.events[0].ProcessedAt)
	}
	assert.Zero(t, repo.markCalls)
}
