// FILE: internal/dto/generate_dto.go
package dto

// --- Analyze DTOs ---

type AnalyzeResponse struct {
	Description string `json:"description"`
	Style       string `json:"style"`
}

// --- Generation DTOs ---

type GenerateCharacterRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1"`
	Style  string `json:"style"`
	Type   string `json:"type" validate:"omitempty,oneof=basic story mockup emoji"`
}

type GenerateCharacterResponse struct {
	Status        string `json:"status"`
	ImageURL      string `json:"image_url"`
	RefinedPrompt string `json:"refined_prompt"`
	Type          string `json:"type"`
}

type ModifyCharacterRequest struct {
	ProjectId          string `json:"projectId" validate:"required,uuid"`
	ModificationPrompt string `json:"modificationPrompt" validate:"required,min=1"`
}

type ModifyCharacterResponse struct {
	Status   string `json:"status"`
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
}
