// FILE: internal/entity/project_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type GenerationKind string

const (
	GenerationKindBasic        GenerationKind = "basic"
	GenerationKindStory        GenerationKind = "story"
	GenerationKindMockup       GenerationKind = "mockup"
	GenerationKindEmoji        GenerationKind = "emoji"
	GenerationKindModification GenerationKind = "modification"
)

// Project is the persisted outcome of a generation or modification.
// Immutable once written; append-only history per user.
type Project struct {
	Id            uuid.UUID
	UserUID       string
	Prompt        string
	RefinedPrompt string
	Style         string
	Kind          GenerationKind
	ImageURL      string
	CreatedAt     time.Time
}
