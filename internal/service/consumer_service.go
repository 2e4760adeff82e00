// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/internal/entity"
	"ai-charstudio-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the credit audit topic and records every ledger
// movement in credit_transactions. The audit trail is advisory: processing
// happens off the request path and must never block a user response.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CreditAuditMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	tx := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserUID:         payload.UserUID,
		TransactionType: entity.CreditTransactionType(payload.TransactionType),
		Amount:          payload.Amount,
		CreatedAt:       time.Now(),
	}
	if payload.ServiceUsed != "" {
		tx.ServiceUsed = &payload.ServiceUsed
	}
	if payload.Notes != "" {
		tx.Notes = &payload.Notes
	}
	if payload.RelatedId != "" {
		if relatedId, err := uuid.Parse(payload.RelatedId); err == nil {
			tx.RelatedId = &relatedId
		}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CreditTransactionRepository().Create(ctx, tx); err != nil {
		log.Printf("[ERROR] Failed to record credit transaction for %s: %v", payload.UserUID, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[INFO] Recorded %s of %d credit(s) for %s", payload.TransactionType, payload.Amount, payload.UserUID)
	msg.Ack()
}
