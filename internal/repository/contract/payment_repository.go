package contract

import (
	"context"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	CreatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error
	FindOnePurchase(ctx context.Context, specs ...specification.Specification) (*entity.CreditPurchase, error)
	FindAllPurchases(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPurchase, error)

	// MarkPurchaseStatus transitions a purchase out of its current status.
	// Returns false when the purchase was already in the target status, which
	// callers use to skip re-granting on webhook re-delivery.
	MarkPurchaseStatus(ctx context.Context, id uuid.UUID, from, to entity.PurchaseStatus) (bool, error)

	CreateEvent(ctx context.Context, event *entity.PaymentEvent) error
	FindAllEvents(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentEvent, error)
}
