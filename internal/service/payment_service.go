// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-charstudio-be/internal/config"
	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/pkg/mailer"
	"ai-charstudio-be/internal/repository/specification"
	"ai-charstudio-be/internal/repository/unitofwork"
	"ai-charstudio-be/pkg/events"
	"ai-charstudio-be/pkg/ledger"

	pktNats "ai-charstudio-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

type IPaymentService interface {
	CreateCheckout(ctx context.Context, userUID, email, name string) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	cfg              *config.Config
	uowFactory       unitofwork.RepositoryFactory
	creditLedger     *ledger.Ledger
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	emailService     mailer.IEmailService
	snapClient       snap.Client
}

func NewPaymentService(
	cfg *config.Config,
	uowFactory unitofwork.RepositoryFactory,
	creditLedger *ledger.Ledger,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
) IPaymentService {
	env := midtrans.Sandbox
	if cfg.Payment.IsProduction {
		env = midtrans.Production
	}

	var sClient snap.Client
	sClient.New(cfg.Payment.ServerKey, env)

	return &paymentService{
		cfg:              cfg,
		uowFactory:       uowFactory,
		creditLedger:     creditLedger,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		emailService:     emailService,
		snapClient:       sClient,
	}
}

// CreateCheckout opens a hosted payment session for the fixed credit pack.
// The purchase row is written first so the webhook path always finds a
// pending purchase to settle, keyed by the Midtrans order id.
func (s *paymentService) CreateCheckout(ctx context.Context, userUID, email, name string) (*dto.CheckoutResponse, error) {
	orderId := uuid.New()

	purchase := &entity.CreditPurchase{
		Id:        orderId,
		UserUID:   userUID,
		Credits:   s.cfg.Payment.CreditPackSize,
		Amount:    s.cfg.Payment.CreditPackPrice,
		Status:    entity.PurchaseStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PaymentRepository().CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	finishRedirectURL := fmt.Sprintf("%s/app?payment=success", s.cfg.App.FrontendURL)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId.String(),
			GrossAmt: purchase.Amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: finishRedirectURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    "credit-pack",
				Price: purchase.Amount,
				Qty:   1,
				Name:  fmt.Sprintf("CharStudio Credit Pack (%d credits)", purchase.Credits),
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := s.snapClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	if s.eventPublisher != nil {
		evt := events.NewCheckoutCreated(userUID, orderId.String(), purchase.Amount)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish CHECKOUT_CREATED event: %v\n", err)
		}
	}

	return &dto.CheckoutResponse{URL: snapResp.RedirectURL}, nil
}

// ValidSignature checks the Midtrans notification signature:
// SHA512(order_id + status_code + gross_amount + server_key).
func ValidSignature(orderId, statusCode, grossAmount, signatureKey, serverKey string) bool {
	signatureInput := orderId + statusCode + grossAmount + serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	return signatureKey == expected
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	valid := ValidSignature(req.OrderId, req.StatusCode, req.GrossAmount, req.SignatureKey, s.cfg.Payment.ServerKey)
	s.recordEvent(ctx, req, valid)
	if !valid {
		fmt.Printf("[WEBHOOK ERROR] Signature mismatch for OrderId=%s\n", req.OrderId)
		return ErrInvalidSignature
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Invalid order_id format: %s\n", req.OrderId)
		return ErrInvalidPayload
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	purchase, err := uow.PaymentRepository().FindOnePurchase(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if purchase == nil {
		fmt.Printf("[WEBHOOK ERROR] Purchase not found: %s\n", req.OrderId)
		return ErrInvalidPayload
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		if req.TransactionStatus == "capture" && req.FraudStatus != "" && req.FraudStatus != "accept" {
			fmt.Printf("[WEBHOOK] Capture held by fraud status '%s' - no action\n", req.FraudStatus)
			return nil
		}
		return s.settle(ctx, purchase, orderId)
	case "deny", "cancel", "expire":
		_, err := uow.PaymentRepository().MarkPurchaseStatus(ctx, orderId, entity.PurchaseStatusPending, entity.PurchaseStatusFailed)
		return err
	default:
		fmt.Printf("[WEBHOOK] Status '%s' - no action taken\n", req.TransactionStatus)
		return nil
	}
}

func (s *paymentService) settle(ctx context.Context, purchase *entity.CreditPurchase, orderId uuid.UUID) error {
	granted, err := s.creditLedger.GrantCredits(ctx, purchase.UserUID, purchase.Credits, orderId)
	if err != nil {
		return err
	}
	if !granted {
		// redelivered notification for an already settled purchase
		return nil
	}

	s.publishGrantAudit(ctx, purchase, orderId)

	if s.eventPublisher != nil {
		evt := events.NewCreditsGranted(purchase.UserUID, orderId.String(), purchase.Credits)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish CREDITS_GRANTED event: %v\n", err)
		}
	}

	s.sendReceipt(ctx, purchase, orderId)
	return nil
}

// recordEvent keeps the raw notification for reconciliation, including ones
// that failed signature verification. Failures are logged only; the
// settlement decision does not depend on this row.
func (s *paymentService) recordEvent(ctx context.Context, req *dto.MidtransWebhookRequest, signatureValid bool) {
	payload, err := json.Marshal(req)
	if err != nil {
		return
	}

	now := time.Now()
	event := &entity.PaymentEvent{
		Id:             uuid.New(),
		OrderId:        req.OrderId,
		EventType:      req.TransactionStatus,
		SignatureValid: signatureValid,
		Payload:        payload,
		CreatedAt:      now,
	}
	if signatureValid {
		event.ProcessedAt = &now
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PaymentRepository().CreateEvent(ctx, event); err != nil {
		fmt.Printf("[WEBHOOK WARN] Failed to record payment event for %s: %v\n", req.OrderId, err)
	}
}

func (s *paymentService) publishGrantAudit(ctx context.Context, purchase *entity.CreditPurchase, orderId uuid.UUID) {
	msg := dto.CreditAuditMessage{
		UserUID:         purchase.UserUID,
		TransactionType: string(entity.CreditTransactionGrant),
		Amount:          purchase.Credits,
		ServiceUsed:     "payments/webhook",
		RelatedId:       orderId.String(),
	}
	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		fmt.Printf("[WEBHOOK WARN] Failed to publish grant audit message: %v\n", err)
	}
}

func (s *paymentService) sendReceipt(ctx context.Context, purchase *entity.CreditPurchase, orderId uuid.UUID) {
	if s.emailService == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	acc, err := uow.AccountRepository().FindByUID(ctx, purchase.UserUID)
	if err != nil || acc == nil || acc.Email == nil {
		return
	}

	if err := s.emailService.SendReceipt(*acc.Email, orderId.String(), purchase.Credits); err != nil {
		fmt.Printf("[WEBHOOK WARN] Failed to send receipt for %s: %v\n", orderId, err)
	}
}
