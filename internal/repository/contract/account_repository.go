package contract

import (
	"context"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/repository/specification"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByUID(ctx context.Context, uid string) (*entity.Account, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FirstOrCreate loads the account for uid, inserting a zeroed row when
	// absent. Returns the account as stored.
	FirstOrCreate(ctx context.Context, uid string, email *string) (*entity.Account, error)

	// CompareAndUpdate applies the column updates only when the account row
	// still matches the previously observed counter values. Returns false
	// without error when a concurrent writer got there first.
	CompareAndUpdate(ctx context.Context, observed *entity.Account, updates map[string]interface{}) (bool, error)

	// GrantCredits is a merge-style upsert: increments credits and flips the
	// premium flag, creating the row when absent.
	GrantCredits(ctx context.Context, uid string, amount int) error
}
