package implementation

import (
	"context"
	"errors"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/mapper"
	"ai-charstudio-be/internal/model"
	"ai-charstudio-be/internal/repository/contract"
	"ai-charstudio-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) CreatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error {
	m := r.mapper.PurchaseToModel(purchase)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*purchase = *r.mapper.PurchaseToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) FindOnePurchase(ctx context.Context, specs ...specification.Specification) (*entity.CreditPurchase, error) {
	var m model.CreditPurchase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PurchaseToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAllPurchases(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPurchase, error) {
	var models []*model.CreditPurchase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	purchases := make([]*entity.CreditPurchase, 0, len(models))
	for _, m := range models {
		purchases = append(purchases, r.mapper.PurchaseToEntity(m))
	}
	return purchases, nil
}

// MarkPurchaseStatus uses the from-status in the WHERE clause so the
// transition applies at most once per purchase.
func (r *PaymentRepositoryImpl) MarkPurchaseStatus(ctx context.Context, id uuid.UUID, from, to entity.PurchaseStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CreditPurchase{}).
		Where("id = ?", id).
		Where("status = ?", string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentRepositoryImpl) CreateEvent(ctx context.Context, event *entity.PaymentEvent) error {
	m := r.mapper.EventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.EventToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) FindAllEvents(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentEvent, error) {
	var models []*model.PaymentEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	events := make([]*entity.PaymentEvent, 0, len(models))
	for _, m := range models {
		events = append(events, r.mapper.EventToEntity(m))
	}
	return events, nil
}
