package ledger

import (
	"context"
	"testing"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/repository/contract"
	"ai-charstudio-be/internal/repository/specification"
	"ai-charstudio-be/internal/repository/unitofwork"

	"gorm.io/gorm"
)

func TestEvaluateGeneration(t *testing.T) {
	tests := []struct {
		name    string
		account entity.Account
		want    Outcome
	}{
		{
			name:    "fresh account is free",
			account: entity.Account{Credits: 0, GenerationCount: 0},
			want:    OutcomeFree,
		},
		{
			name:    "first generation free even with balance",
			account: entity.Account{Credits: 7, GenerationCount: 0},
			want:    OutcomeFree,
		},
		{
			name:    "second generation spends a credit",
			account: entity.Account{Credits: 1, GenerationCount: 1},
			want:    OutcomePaid,
		},
		{
			name:    "no credits after free use is denied",
			account: entity.Account{Credits: 0, GenerationCount: 1},
			want:    OutcomeDenied,
		},
		{
			name:    "modification counter does not influence generation gate",
			account: entity.Account{Credits: 0, GenerationCount: 3, ModificationCount: 0},
			want:    OutcomeDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateGeneration(&tt.account)
			if got != tt.want {
				t.Errorf("EvaluateGeneration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateModification(t *testing.T) {
	tests := []struct {
		name    string
		account entity.Account
		want    Outcome
	}{
		{
			name:    "first modification free",
			account: entity.Account{Credits: 0, ModificationCount: 0},
			want:    OutcomeFree,
		},
		{
			name:    "paid modification decrements shared balance",
			account: entity.Account{Credits: 2, ModificationCount: 1},
			want:    OutcomePaid,
		},
		{
			name:    "denied when free use and credits exhausted",
			account: entity.Account{Credits: 0, ModificationCount: 5},
			want:    OutcomeDenied,
		},
		{
			name:    "generation counter does not grant free modification",
			account: entity.Account{Credits: 0, GenerationCount: 0, ModificationCount: 1},
			want:    OutcomeDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateModification(&tt.account)
			if got != tt.want {
				t.Errorf("EvaluateModification() = %q, want %q", got, tt.want)
			}
		})
	}
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// racyAccountRepo loses the first-insert race once: the first FirstOrCreate
// fails with a duplicate key, as if a concurrent request inserted the row in
// between, and every later call finds the winner's row.
type racyAccountRepo struct {
	account            entity.Account
	firstOrCreateCalls int
}

func (r *racyAccountRepo) Create(ctx context.Context, account *entity.Account) error { return nil }

func (r *racyAccountRepo) FindByUID(ctx context.Context, uid string) (*entity.Account, error) {
	acc := r.account
	return &acc, nil
}

func (r *racyAccountRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	return nil, nil
}

func (r *racyAccountRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (r *racyAccountRepo) FirstOrCreate(ctx context.Context, uid string, email *string) (*entity.Account, error) {
	r.firstOrCreateCalls++
	if r.firstOrCreateCalls == 1 {
		return nil, gorm.ErrDuplicatedKey
	}
	acc := r.account
	return &acc, nil
}

func (r *racyAccountRepo) CompareAndUpdate(ctx context.Context, observed *entity.Account, updates map[string]interface{}) (bool, error) {
	return true, nil
}

func (r *racyAccountRepo) GrantCredits(ctx context.Context, uid string, amount int) error {
	return nil
}

type stubUnitOfWork struct {
	accounts contract.AccountRepository
}

func (u *stubUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *stubUnitOfWork) Commit() error                   { return nil }
func (u *stubUnitOfWork) Rollback() error                 { return nil }

func (u *stubUnitOfWork) AccountRepository() contract.AccountRepository { return u.accounts }
func (u *stubUnitOfWork) ProjectRepository() contract.ProjectRepository { return nil }
func (u *stubUnitOfWork) PaymentRepository() contract.PaymentRepository { return nil }
func (u *stubUnitOfWork) CreditTransactionRepository() contract.CreditTransactionRepository {
	return nil
}

type stubFactory struct {
	uow unitofwork.UnitOfWork
}

func (f stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func TestGateGenerationAbsorbsLostInsertRace(t *testing.T) {
	accounts := &racyAccountRepo{account: entity.Account{UserUID: "user-1", Credits: 3, GenerationCount: 1}}
	l := New(stubFactory{uow: &stubUnitOfWork{accounts: accounts}}, nopLogger{})

	outcome, err := l.GateGeneration(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GateGeneration() error = %v, want nil", err)
	}
	if outcome != OutcomePaid {
		t.Errorf("GateGeneration() = %q, want %q", outcome, OutcomePaid)
	}
	if accounts.firstOrCreateCalls != 2 {
		t.Errorf("FirstOrCreate calls = %d, want 2 (one lost race, one retry)", accounts.firstOrCreateCalls)
	}
}
