// FILE: internal/dto/auth_dto.go
package dto

// ProfileResponse merges identity claims with the caller's entitlement
// fields. Served by GET /auth/me.
type ProfileResponse struct {
	UID               string `json:"uid"`
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
	Credits           int    `json:"credits"`
	IsPremium         bool   `json:"isPremium"`
	GenerationCount   int    `json:"generation_count"`
	ModificationCount int    `json:"modification_count"`
}
