package contract

import (
	"context"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/repository/specification"
)

type CreditTransactionRepository interface {
	Create(ctx context.Context, tx *entity.CreditTransaction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
