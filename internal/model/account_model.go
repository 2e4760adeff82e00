package model

import (
	"time"
)

type Account struct {
	UserUID           string    `gorm:"type:varchar(128);primaryKey"`
	Email             *string   `gorm:"type:varchar(255);index"`
	Credits           int       `gorm:"not null;default:0;check:credits >= 0"`
	IsPremium         bool      `gorm:"not null;default:false"`
	GenerationCount   int       `gorm:"not null;default:0"`
	ModificationCount int       `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}
