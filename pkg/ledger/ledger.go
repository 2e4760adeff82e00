// Package ledger applies the atomic check-and-deduct rules that gate paid
// operations against a user's entitlement account.
package ledger

import (
	"context"
	"errors"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/pkg/logger"
	"ai-charstudio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionFailed   = errors.New("entitlement transaction failed")
)

type Outcome string

const (
	OutcomeFree   Outcome = "free"
	OutcomePaid   Outcome = "paid"
	OutcomeDenied Outcome = "denied"
)

// maxAttempts bounds the optimistic-write retry loop before the gate
// surfaces ErrTransactionFailed.
const maxAttempts = 5

type Ledger struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func New(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *Ledger {
	return &Ledger{
		uowFactory: uowFactory,
		log:        log,
	}
}

// EvaluateGeneration is the pure gate decision on a loaded account.
// First generation per user is always free, regardless of balance.
func EvaluateGeneration(acc *entity.Account) Outcome {
	if acc.GenerationCount < 1 {
		return OutcomeFree
	}
	if acc.Credits >= 1 {
		return OutcomePaid
	}
	return OutcomeDenied
}

// EvaluateModification mirrors EvaluateGeneration on the modification counter.
func EvaluateModification(acc *entity.Account) Outcome {
	if acc.ModificationCount < 1 {
		return OutcomeFree
	}
	if acc.Credits >= 1 {
		return OutcomePaid
	}
	return OutcomeDenied
}

// GateGeneration authorizes one generation for uid, creating the account when
// absent. Returns OutcomeFree or OutcomePaid on success; OutcomeDenied with
// ErrInsufficientCredits when the balance cannot cover it.
func (l *Ledger) GateGeneration(ctx context.Context, uid string) (Outcome, error) {
	return l.gate(ctx, uid, true)
}

// GateModification is the same gate on the modification counter, except an
// absent account is an error: a modification presumes a prior generation.
func (l *Ledger) GateModification(ctx context.Context, uid string) (Outcome, error) {
	return l.gate(ctx, uid, false)
}

func (l *Ledger) gate(ctx context.Context, uid string, isGeneration bool) (Outcome, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		outcome, conflict, err := l.tryGate(ctx, uid, isGeneration)
		if err != nil {
			return OutcomeDenied, err
		}
		if !conflict {
			return outcome, nil
		}
		l.log.Warn("ledger", "gate write conflict, retrying", map[string]interface{}{
			"user_uid": uid,
			"attempt":  attempt,
		})
	}
	l.log.Error("ledger", "gate retries exhausted", map[string]interface{}{
		"user_uid": uid,
	})
	return OutcomeDenied, ErrTransactionFailed
}

// tryGate runs one optimistic attempt. conflict=true means a concurrent
// writer changed the row between read and write and the caller should retry.
func (l *Ledger) tryGate(ctx context.Context, uid string, isGeneration bool) (outcome Outcome, conflict bool, err error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return OutcomeDenied, false, ErrTransactionFailed
	}
	defer uow.Rollback()

	accounts := uow.AccountRepository()

	var acc *entity.Account
	if isGeneration {
		acc, err = accounts.FirstOrCreate(ctx, uid, nil)
	} else {
		acc, err = accounts.FindByUID(ctx, uid)
	}
	if err != nil {
		// lost a concurrent first-insert race; the winner's row exists now,
		// so the next attempt will load it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return OutcomeDenied, true, nil
		}
		return OutcomeDenied, false, ErrTransactionFailed
	}
	if acc == nil {
		return OutcomeDenied, false, ErrAccountNotFound
	}

	if isGeneration {
		outcome = EvaluateGeneration(acc)
	} else {
		outcome = EvaluateModification(acc)
	}
	if outcome == OutcomeDenied {
		return OutcomeDenied, false, ErrInsufficientCredits
	}

	updates := map[string]interface{}{}
	if isGeneration {
		updates["generation_count"] = acc.GenerationCount + 1
	} else {
		updates["modification_count"] = acc.ModificationCount + 1
	}
	if outcome == OutcomePaid {
		updates["credits"] = acc.Credits - 1
	}

	applied, err := accounts.CompareAndUpdate(ctx, acc, updates)
	if err != nil {
		return OutcomeDenied, false, ErrTransactionFailed
	}
	if !applied {
		return OutcomeDenied, true, nil
	}

	if err := uow.Commit(); err != nil {
		return OutcomeDenied, false, ErrTransactionFailed
	}
	return outcome, false, nil
}

// GrantCredits applies a payment-driven grant: flips the purchase identified
// by orderId from pending to paid and merges the credits into the account,
// all in one transaction. A re-delivered event whose purchase has already
// settled returns granted=false without touching the account.
func (l *Ledger) GrantCredits(ctx context.Context, uid string, amount int, orderId uuid.UUID) (bool, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, ErrTransactionFailed
	}
	defer uow.Rollback()

	applied, err := uow.PaymentRepository().MarkPurchaseStatus(ctx, orderId, entity.PurchaseStatusPending, entity.PurchaseStatusPaid)
	if err != nil {
		return false, ErrTransactionFailed
	}
	if !applied {
		l.log.Info("ledger", "grant skipped, purchase already settled", map[string]interface{}{
			"user_uid": uid,
			"order_id": orderId.String(),
		})
		return false, nil
	}

	if err := uow.AccountRepository().GrantCredits(ctx, uid, amount); err != nil {
		return false, ErrTransactionFailed
	}

	if err := uow.Commit(); err != nil {
		return false, ErrTransactionFailed
	}
	return true, nil
}
