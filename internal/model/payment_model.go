package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreditPurchase struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserUID   string    `gorm:"type:varchar(128);not null;index"`
	Credits   int       `gorm:"not null"`
	Amount    int64     `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CreditPurchase) TableName() string {
	return "credit_purchases"
}

// PaymentEvent stores provider notifications with the raw payload so
// re-deliveries and rejected signatures stay inspectable.
type PaymentEvent struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId        string         `gorm:"type:varchar(64);not null;index"`
	EventType      string         `gorm:"type:varchar(50);not null;index"`
	SignatureValid bool           `gorm:"not null;default:false"`
	Payload        datatypes.JSON `gorm:"not null"`
	ProcessedAt    *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (PaymentEvent) TableName() string {
	return "payment_events"
}
