// FILE: internal/service/user_service.go
package service

import (
	"context"

	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/repository/unitofwork"
	"ai-charstudio-be/pkg/identity"
)

type IUserService interface {
	GetProfile(ctx context.Context, principal *identity.Principal) (*dto.ProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

// GetProfile merges identity claims with the caller's entitlement fields.
// The account row is created on first fetch with zero counters, so any later
// gate sees a consistent starting state.
func (s *userService) GetProfile(ctx context.Context, principal *identity.Principal) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var email *string
	if principal.Email != "" {
		email = &principal.Email
	}

	acc, err := uow.AccountRepository().FirstOrCreate(ctx, principal.UID, email)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UID:               principal.UID,
		Email:             principal.Email,
		Name:              principal.Name,
		Credits:           acc.Credits,
		IsPremium:         acc.IsPremium,
		GenerationCount:   acc.GenerationCount,
		ModificationCount: acc.ModificationCount,
	}, nil
}
