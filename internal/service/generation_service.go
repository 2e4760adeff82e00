// FILE: internal/service/generation_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/pkg/logger"
	"ai-charstudio-be/internal/repository/specification"
	"ai-charstudio-be/internal/repository/unitofwork"
	"ai-charstudio-be/pkg/events"
	"ai-charstudio-be/pkg/identity"
	"ai-charstudio-be/pkg/imagegen"
	"ai-charstudio-be/pkg/ledger"

	pktNats "ai-charstudio-be/pkg/nats"

	"github.com/google/uuid"
)

// ErrProjectNotFound reports a source project that does not exist or belongs
// to another user.
var ErrProjectNotFound = errors.New("project not found")

type IGenerationService interface {
	GenerateCharacter(ctx context.Context, principal *identity.Principal, req *dto.GenerateCharacterRequest) (*dto.GenerateCharacterResponse, error)
	ModifyCharacter(ctx context.Context, principal *identity.Principal, req *dto.ModifyCharacterRequest) (*dto.ModifyCharacterResponse, error)
}

type generationService struct {
	uowFactory       unitofwork.RepositoryFactory
	creditLedger     *ledger.Ledger
	pipeline         *imagegen.Pipeline
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	creditLedger *ledger.Ledger,
	pipeline *imagegen.Pipeline,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:       uowFactory,
		creditLedger:     creditLedger,
		pipeline:         pipeline,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

func (s *generationService) GenerateCharacter(ctx context.Context, principal *identity.Principal, req *dto.GenerateCharacterRequest) (*dto.GenerateCharacterResponse, error) {
	kind := entity.GenerationKindBasic
	if req.Type != "" {
		kind = entity.GenerationKind(req.Type)
	}

	style := req.Style
	if style == "" {
		style = defaultStyle
	}

	outcome, err := s.creditLedger.GateGeneration(ctx, principal.UID)
	if err != nil {
		return nil, err
	}

	imgReq := imagegen.Request{Prompt: req.Prompt, Style: style, Kind: kind}
	refinedPrompt := imgReq.Refined()
	result := s.pipeline.Generate(ctx, imgReq)

	projectId := s.saveProject(ctx, &entity.Project{
		Id:            uuid.New(),
		UserUID:       principal.UID,
		Prompt:        req.Prompt,
		RefinedPrompt: refinedPrompt,
		Style:         style,
		Kind:          kind,
		ImageURL:      result.ImageURL,
		CreatedAt:     time.Now(),
	})

	s.publishAudit(ctx, principal.UID, outcome, "generate/"+string(kind), projectId)
	s.publishCompleted(ctx, principal.UID, projectId, string(kind), result.Strategy)

	return &dto.GenerateCharacterResponse{
		Status:        string(outcome),
		ImageURL:      result.ImageURL,
		RefinedPrompt: refinedPrompt,
		Type:          string(kind),
	}, nil
}

func (s *generationService) ModifyCharacter(ctx context.Context, principal *identity.Principal, req *dto.ModifyCharacterRequest) (*dto.ModifyCharacterResponse, error) {
	sourceId, err := uuid.Parse(req.ProjectId)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	source, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: sourceId},
		specification.OwnedBy{UserUID: principal.UID},
	)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrProjectNotFound
	}

	outcome, err := s.creditLedger.GateModification(ctx, principal.UID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("%s, modified: %s", source.RefinedPrompt, req.ModificationPrompt)
	result := s.pipeline.Generate(ctx, imagegen.Request{Prompt: prompt, Kind: entity.GenerationKindModification})

	projectId := s.saveProject(ctx, &entity.Project{
		Id:            uuid.New(),
		UserUID:       principal.UID,
		Prompt:        req.ModificationPrompt,
		RefinedPrompt: prompt,
		Style:         source.Style,
		Kind:          entity.GenerationKindModification,
		ImageURL:      result.ImageURL,
		CreatedAt:     time.Now(),
	})

	s.publishAudit(ctx, principal.UID, outcome, "generate/modification", projectId)
	s.publishCompleted(ctx, principal.UID, projectId, string(entity.GenerationKindModification), result.Strategy)

	return &dto.ModifyCharacterResponse{
		Status:   string(outcome),
		ImageURL: result.ImageURL,
		Prompt:   prompt,
	}, nil
}

// saveProject persists the outcome. Failures are logged and swallowed: by
// this point the credit is already charged and the caller already has an
// image to show. Returns the project id, or "" when the write failed.
func (s *generationService) saveProject(ctx context.Context, project *entity.Project) string {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		s.log.Error("generation", "failed to persist project, continuing", map[string]interface{}{
			"user_uid": project.UserUID,
			"kind":     string(project.Kind),
			"error":    err.Error(),
		})
		return ""
	}
	return project.Id.String()
}

func (s *generationService) publishAudit(ctx context.Context, uid string, outcome ledger.Outcome, serviceUsed, projectId string) {
	msg := dto.CreditAuditMessage{
		UserUID:     uid,
		ServiceUsed: serviceUsed,
		RelatedId:   projectId,
	}
	switch outcome {
	case ledger.OutcomePaid:
		msg.TransactionType = string(entity.CreditTransactionSpend)
		msg.Amount = 1
	case ledger.OutcomeFree:
		msg.TransactionType = string(entity.CreditTransactionFree)
		msg.Amount = 0
	default:
		return
	}

	msgJson, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.log.Warn("generation", "failed to publish credit audit message", map[string]interface{}{
			"user_uid": uid,
			"error":    err.Error(),
		})
	}
}

func (s *generationService) publishCompleted(ctx context.Context, uid, projectId, kind, strategy string) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewGenerationCompleted(uid, projectId, kind, strategy)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish GENERATION_COMPLETED event: %v\n", err)
	}
}
