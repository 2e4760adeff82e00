package unitofwork

import (
	"context"

	"ai-charstudio-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	AccountRepository() contract.AccountRepository
	ProjectRepository() contract.ProjectRepository
	PaymentRepository() contract.PaymentRepository
	CreditTransactionRepository() contract.CreditTransactionRepository
}
