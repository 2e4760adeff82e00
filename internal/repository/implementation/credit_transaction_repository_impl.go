package implementation

import (
	"context"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/mapper"
	"ai-charstudio-be/internal/model"
	"ai-charstudio-be/internal/repository/contract"
	"ai-charstudio-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CreditTransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccountMapper
}

func NewCreditTransactionRepository(db *gorm.DB) contract.CreditTransactionRepository {
	return &CreditTransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccountMapper(),
	}
}

func (r *CreditTransactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CreditTransactionRepositoryImpl) Create(ctx context.Context, tx *entity.CreditTransaction) error {
	m := r.mapper.CreditTransactionToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.CreditTransactionToEntity(m)
	return nil
}

func (r *CreditTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var models []*model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	txs := make([]*entity.CreditTransaction, 0, len(models))
	for _, m := range models {
		txs = append(txs, r.mapper.CreditTransactionToEntity(m))
	}
	return txs, nil
}

func (r *CreditTransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CreditTransaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
