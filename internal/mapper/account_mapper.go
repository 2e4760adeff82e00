package mapper

import (
	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/model"
)

type AccountMapper struct{}

func NewAccountMapper() *AccountMapper {
	return &AccountMapper{}
}

func (m *AccountMapper) ToEntity(a *model.Account) *entity.Account {
	if a == nil {
		return nil
	}
	return &entity.Account{
		UserUID:           a.UserUID,
		Email:             a.Email,
		Credits:           a.Credits,
		IsPremium:         a.IsPremium,
		GenerationCount:   a.GenerationCount,
		ModificationCount: a.ModificationCount,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (m *AccountMapper) ToModel(a *entity.Account) *model.Account {
	if a == nil {
		return nil
	}
	return &model.Account{
		UserUID:           a.UserUID,
		Email:             a.Email,
		Credits:           a.Credits,
		IsPremium:         a.IsPremium,
		GenerationCount:   a.GenerationCount,
		ModificationCount: a.ModificationCount,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (m *AccountMapper) CreditTransactionToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:              t.Id,
		UserUID:         t.UserUID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		ServiceUsed:     t.ServiceUsed,
		RelatedId:       t.RelatedId,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}

func (m *AccountMapper) CreditTransactionToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:              t.Id,
		UserUID:         t.UserUID,
		TransactionType: entity.CreditTransactionType(t.TransactionType),
		Amount:          t.Amount,
		ServiceUsed:     t.ServiceUsed,
		RelatedId:       t.RelatedId,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt,
	}
}
