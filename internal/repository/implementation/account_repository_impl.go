package implementation

import (
	"context"
	"errors"

	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/mapper"
	"ai-charstudio-be/internal/model"
	"ai-charstudio-be/internal/repository/contract"
	"ai-charstudio-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccountMapper
}

func NewAccountRepository(db *gorm.DB) contract.AccountRepository {
	return &AccountRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccountMapper(),
	}
}

func (r *AccountRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *entity.Account) error {
	m := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) FindByUID(ctx context.Context, uid string) (*entity.Account, error) {
	var m model.Account
	if err := r.db.WithContext(ctx).Where("user_uid = ?", uid).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AccountRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	var m model.Account
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AccountRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Account{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AccountRepositoryImpl) FirstOrCreate(ctx context.Context, uid string, email *string) (*entity.Account, error) {
	m := model.Account{UserUID: uid, Email: email}
	err := r.db.WithContext(ctx).
		Where(model.Account{UserUID: uid}).
		Attrs(model.Account{Email: email}).
		FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// CompareAndUpdate guards the write with the counter values the caller read,
// so two concurrent gates for the same user cannot both apply.
func (r *AccountRepositoryImpl) CompareAndUpdate(ctx context.Context, observed *entity.Account, updates map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("user_uid = ?", observed.UserUID).
		Where("credits = ?", observed.Credits).
		Where("generation_count = ?", observed.GenerationCount).
		Where("modification_count = ?", observed.ModificationCount).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AccountRepositoryImpl) GrantCredits(ctx context.Context, uid string, amount int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_uid"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"credits":    gorm.Expr("accounts.credits + ?", amount),
			"is_premium": true,
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&model.Account{
		UserUID:   uid,
		Credits:   amount,
		IsPremium: true,
	}).Error
}
