// FILE: internal/entity/account_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the per-user entitlement record. Keyed by the identity
// provider's stable uid, created lazily on first access and never deleted.
type Account struct {
	UserUID           string
	Email             *string
	Credits           int
	IsPremium         bool
	GenerationCount   int
	ModificationCount int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreditTransactionType string

const (
	CreditTransactionGrant CreditTransactionType = "grant"
	CreditTransactionSpend CreditTransactionType = "spend"
	CreditTransactionFree  CreditTransactionType = "free"
)

// CreditTransaction is an append-only audit row recorded for every ledger outcome.
type CreditTransaction struct {
	Id              uuid.UUID
	UserUID         string
	TransactionType CreditTransactionType
	Amount          int
	ServiceUsed     *string
	RelatedId       *uuid.UUID
	Notes           *string
	CreatedAt       time.Time
}
