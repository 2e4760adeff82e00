// FILE: internal/entity/payment_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "pending"
	PurchaseStatusPaid    PurchaseStatus = "paid"
	PurchaseStatusFailed  PurchaseStatus = "failed"
)

// CreditPurchase tracks one checkout session. The purchase id doubles as the
// processor order id, so the webhook can reconcile the payment back to a user
// and the settlement state makes credit grants idempotent per event.
type CreditPurchase struct {
	Id        uuid.UUID
	UserUID   string
	Credits   int
	Amount    int64
	Status    PurchaseStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentEvent stores every received processor notification, valid or not,
// for audit and replay inspection.
type PaymentEvent struct {
	Id             uuid.UUID
	OrderId        string
	EventType      string
	SignatureValid bool
	Payload        []byte
	ProcessedAt    *time.Time
	CreatedAt      time.Time
}
