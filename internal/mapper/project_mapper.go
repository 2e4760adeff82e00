package mapper

import (
	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/model"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}
	return &entity.Project{
		Id:            p.Id,
		UserUID:       p.UserUID,
		Prompt:        p.Prompt,
		RefinedPrompt: p.RefinedPrompt,
		Style:         p.Style,
		Kind:          entity.GenerationKind(p.Kind),
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *ProjectMapper) ToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}
	return &model.Project{
		Id:            p.Id,
		UserUID:       p.UserUID,
		Prompt:        p.Prompt,
		RefinedPrompt: p.RefinedPrompt,
		Style:         p.Style,
		Kind:          string(p.Kind),
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *ProjectMapper) ToEntities(models []*model.Project) []*entity.Project {
	entities := make([]*entity.Project, 0, len(models))
	for _, p := range models {
		entities = append(entities, m.ToEntity(p))
	}
	return entities
}
