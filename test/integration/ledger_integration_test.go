package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/repository/specification"
	"ai-charstudio-be/internal/repository/unitofwork"
	"ai-charstudio-be/pkg/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

func createPendingPurchase(t *testing.T, uowFactory unitofwork.RepositoryFactory, uid string, credits int) uuid.UUID {
	t.Helper()

	orderId := uuid.New()
	uow := uowFactory.NewUnitOfWork(context.Background())
	err := uow.PaymentRepository().CreatePurchase(context.Background(), &entity.CreditPurchase{
		Id:        orderId,
		UserUID:   uid,
		Credits:   credits,
		Amount:    500,
		Status:    entity.PurchaseStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	assert.NoError(t, err)
	return orderId
}

func TestLedgerLifecycle(t *testing.T) {
	uowFactory := connectTestDB(t)
	creditLedger := ledger.New(uowFactory, testLogger{})
	ctx := context.Background()

	uid := "it-user-" + uuid.New().String()

	// First generation is free and creates the account.
	outcome, err := creditLedger.GateGeneration(ctx, uid)
	assert.NoError(t, err)
	assert.Equal(t, ledger.OutcomeFree, outcome)

	uow := uowFactory.NewUnitOfWork(ctx)
	acc, err := uow.AccountRepository().FindByUID(ctx, uid)
	assert.NoError(t, err)
	if assert.NotNil(t, acc) {
		assert.Equal(t, 0, acc.Credits)
		assert.Equal(t, 1, acc.GenerationCount)
		assert.False(t, acc.IsPremium)
	}

	// Free allowance is spent and the balance is zero.
	_, err = creditLedger.GateGeneration(ctx, uid)
	assert.ErrorIs(t, err, ledger.ErrInsufficientCredits)

	// A settled purchase grants credits and flips the premium flag.
	orderId := createPendingPurchase(t, uowFactory, uid, 10)
	granted, err := creditLedger.GrantCredits(ctx, uid, 10, orderId)
	assert.NoError(t, err)
	assert.True(t, granted)

	acc, err = uow.AccountRepository().FindByUID(ctx, uid)
	assert.NoError(t, err)
	if assert.NotNil(t, acc) {
		assert.Equal(t, 10, acc.Credits)
		assert.True(t, acc.IsPremium)
	}

	// A redelivered notification for the same order grants nothing.
	granted, err = creditLedger.GrantCredits(ctx, uid, 10, orderId)
	assert.NoError(t, err)
	assert.False(t, granted)

	acc, _ = uow.AccountRepository().FindByUID(ctx, uid)
	assert.Equal(t, 10, acc.Credits)

	// Paid generation consumes the granted balance.
	outcome, err = creditLedger.GateGeneration(ctx, uid)
	assert.NoError(t, err)
	assert.Equal(t, ledger.OutcomePaid, outcome)

	acc, _ = uow.AccountRepository().FindByUID(ctx, uid)
	assert.Equal(t, 9, acc.Credits)
	assert.Equal(t, 2, acc.GenerationCount)

	// First modification is free too, on its own counter.
	outcome, err = creditLedger.GateModification(ctx, uid)
	assert.NoError(t, err)
	assert.Equal(t, ledger.OutcomeFree, outcome)

	acc, _ = uow.AccountRepository().FindByUID(ctx, uid)
	assert.Equal(t, 9, acc.Credits)
	assert.Equal(t, 1, acc.ModificationCount)
}

func TestLedgerModificationRequiresAccount(t *testing.T) {
	uowFactory := connectTestDB(t)
	creditLedger := ledger.New(uowFactory, testLogger{})

	uid := "it-ghost-" + uuid.New().String()
	_, err := creditLedger.GateModification(context.Background(), uid)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestLedgerNoDoubleSpend(t *testing.T) {
	uowFactory := connectTestDB(t)
	creditLedger := ledger.New(uowFactory, testLogger{})
	ctx := context.Background()

	uid := "it-race-" + uuid.New().String()

	// Burn the free allowance, then leave exactly one credit on the account.
	_, err := creditLedger.GateGeneration(ctx, uid)
	assert.NoError(t, err)

	orderId := createPendingPurchase(t, uowFactory, uid, 1)
	granted, err := creditLedger.GrantCredits(ctx, uid, 1, orderId)
	assert.NoError(t, err)
	assert.True(t, granted)

	var wg sync.WaitGroup
	results := make([]error, 2)
	outcomes := make([]ledger.Outcome, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], results[i] = creditLedger.GateGeneration(ctx, uid)
		}(i)
	}
	wg.Wait()

	paid := 0
	denied := 0
	for i := 0; i < 2; i++ {
		switch {
		case results[i] == nil && outcomes[i] == ledger.OutcomePaid:
			paid++
		case errors.Is(results[i], ledger.ErrInsufficientCredits):
			denied++
		default:
			t.Fatalf("unexpected result: outcome=%v err=%v", outcomes[i], results[i])
		}
	}
	assert.Equal(t, 1, paid, "exactly one concurrent call may spend the last credit")
	assert.Equal(t, 1, denied)

	uow := uowFactory.NewUnitOfWork(ctx)
	acc, err := uow.AccountRepository().FindByUID(ctx, uid)
	assert.NoError(t, err)
	if assert.NotNil(t, acc) {
		assert.Equal(t, 0, acc.Credits)
		assert.Equal(t, 2, acc.GenerationCount)
	}
}

func TestProjectHistoryScopedAndOrdered(t *testing.T) {
	uowFactory := connectTestDB(t)
	ctx := context.Background()

	owner := "it-owner-" + uuid.New().String()
	other := "it-other-" + uuid.New().String()

	uow := uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	seed := []*entity.Project{
		{Id: uuid.New(), UserUID: owner, Prompt: "first", Kind: entity.GenerationKindBasic, ImageURL: "u1", CreatedAt: now.Add(-2 * time.Hour)},
		{Id: uuid.New(), UserUID: owner, Prompt: "second", Kind: entity.GenerationKindStory, ImageURL: "u2", CreatedAt: now.Add(-1 * time.Hour)},
		{Id: uuid.New(), UserUID: other, Prompt: "foreign", Kind: entity.GenerationKindBasic, ImageURL: "u3", CreatedAt: now},
	}
	for _, p := range seed {
		assert.NoError(t, uow.ProjectRepository().Create(ctx, p))
	}

	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.OwnedBy{UserUID: owner},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	assert.NoError(t, err)
	if assert.Len(t, projects, 2) {
		assert.Equal(t, "second", projects[0].Prompt)
		assert.Equal(t, "first", projects[1].Prompt)
		for _, p := range projects {
			assert.Equal(t, owner, p.UserUID)
		}
	}
}
