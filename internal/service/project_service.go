// FILE: internal/service/project_service.go
package service

import (
	"context"

	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/repository/specification"
	"ai-charstudio-be/internal/repository/unitofwork"
)

type IProjectService interface {
	ListProjects(ctx context.Context, userUID string) (*dto.ProjectListResponse, error)
}

type projectService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory) IProjectService {
	return &projectService{uowFactory: uowFactory}
}

// ListProjects returns the caller's history, newest first. Always scoped to
// the requesting user.
func (s *projectService) ListProjects(ctx context.Context, userUID string) (*dto.ProjectListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.OwnedBy{UserUID: userUID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ProjectListResponse{Projects: make([]dto.ProjectDTO, 0, len(projects))}
	for _, p := range projects {
		res.Projects = append(res.Projects, dto.ProjectDTO{
			Id:            p.Id,
			Prompt:        p.Prompt,
			RefinedPrompt: p.RefinedPrompt,
			Style:         p.Style,
			Type:          string(p.Kind),
			ImageURL:      p.ImageURL,
			CreatedAt:     p.CreatedAt,
		})
	}
	return res, nil
}
