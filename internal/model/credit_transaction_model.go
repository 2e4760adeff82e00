package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditTransaction struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserUID         string     `gorm:"type:varchar(128);not null;index"`
	TransactionType string     `gorm:"type:varchar(20);not null"`
	Amount          int        `gorm:"not null"`
	ServiceUsed     *string    `gorm:"type:text;index"`
	RelatedId       *uuid.UUID `gorm:"type:uuid"`
	Notes           *string    `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"default:now();not null"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
