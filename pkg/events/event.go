package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CREDITS_GRANTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by the constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewGenerationCompleted fires after the image pipeline produced a result,
// regardless of which strategy served it.
func NewGenerationCompleted(userUID, projectId, kind, strategy string) Event {
	return BaseEvent{
		Type: "GENERATION_COMPLETED",
		Data: map[string]interface{}{
			"user_uid":   userUID,
			"project_id": projectId,
			"kind":       kind,
			"strategy":   strategy,
		},
		OccurredAt: time.Now(),
	}
}

// NewCreditsGranted fires once per settled purchase.
func NewCreditsGranted(userUID, orderId string, credits int) Event {
	return BaseEvent{
		Type: "CREDITS_GRANTED",
		Data: map[string]interface{}{
			"user_uid": userUID,
			"order_id": orderId,
			"credits":  credits,
		},
		OccurredAt: time.Now(),
	}
}

// NewCheckoutCreated fires when a checkout session is handed to the payment
// gateway.
func NewCheckoutCreated(userUID, orderId string, amount int64) Event {
	return BaseEvent{
		Type: "CHECKOUT_CREATED",
		Data: map[string]interface{}{
			"user_uid": userUID,
			"order_id": orderId,
			"amount":   amount,
		},
		OccurredAt: time.Now(),
	}
}
