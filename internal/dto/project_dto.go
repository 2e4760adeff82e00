// FILE: internal/dto/project_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProjectDTO struct {
	Id            uuid.UUID `json:"id"`
	Prompt        string    `json:"prompt"`
	RefinedPrompt string    `json:"refined_prompt"`
	Style         string    `json:"style"`
	Type          string    `json:"type"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProjectListResponse struct {
	Projects []ProjectDTO `json:"projects"`
}
