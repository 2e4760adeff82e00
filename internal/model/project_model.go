package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserUID       string    `gorm:"type:varchar(128);not null;index:idx_projects_user_created,priority:1"`
	Prompt        string    `gorm:"type:text;not null"`
	RefinedPrompt string    `gorm:"type:text;not null"`
	Style         string    `gorm:"type:varchar(100);not null"`
	Kind          string    `gorm:"type:varchar(20);not null"`
	ImageURL      string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index:idx_projects_user_created,priority:2,sort:desc"`
}

func (Project) TableName() string {
	return "projects"
}
