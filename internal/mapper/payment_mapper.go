package mapper

import (
	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) PurchaseToEntity(p *model.CreditPurchase) *entity.CreditPurchase {
	if p == nil {
		return nil
	}
	return &entity.CreditPurchase{
		Id:        p.Id,
		UserUID:   p.UserUID,
		Credits:   p.Credits,
		Amount:    p.Amount,
		Status:    entity.PurchaseStatus(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PaymentMapper) PurchaseToModel(p *entity.CreditPurchase) *model.CreditPurchase {
	if p == nil {
		return nil
	}
	return &model.CreditPurchase{
		Id:        p.Id,
		UserUID:   p.UserUID,
		Credits:   p.Credits,
		Amount:    p.Amount,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PaymentMapper) EventToModel(e *entity.PaymentEvent) *model.PaymentEvent {
	if e == nil {
		return nil
	}
	return &model.PaymentEvent{
		Id:             e.Id,
		OrderId:        e.OrderId,
		EventType:      e.EventType,
		SignatureValid: e.SignatureValid,
		Payload:        datatypes.JSON(e.Payload),
		ProcessedAt:    e.ProcessedAt,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *PaymentMapper) EventToEntity(e *model.PaymentEvent) *entity.PaymentEvent {
	if e == nil {
		return nil
	}
	return &entity.PaymentEvent{
		Id:             e.Id,
		OrderId:        e.OrderId,
		EventType:      e.EventType,
		SignatureValid: e.SignatureValid,
		Payload:        []byte(e.Payload),
		ProcessedAt:    e.ProcessedAt,
		CreatedAt:      e.CreatedAt,
	}
}
