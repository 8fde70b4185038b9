package client

import "context"

func NewCreatedEvent(_ context.Context, data Client) *CreatedEvent {
	return &CreatedEvent{Data: data}
}

func NewUpdatedEvent(_ context.Context, data Client) *UpdatedEvent {
	return &UpdatedEvent{Data: data}
}

func NewEnrichedEvent(_ context.Context, data Client) *EnrichedEvent {
	return &EnrichedEvent{Data: data}
}

type CreatedEvent struct {
	Data   Client
	Result Client
}

type UpdatedEvent struct {
	Data   Client
	Result Client
}

type DeletedEvent struct {
	Result Client
}

// EnrichedEvent fires after a registry lookup updated the client profile.
type EnrichedEvent struct {
	Data   Client
	Result Client
}

// PaymentReceivedEvent is published when an accounting webhook reports a
// payment against one of the practice's clients.
type PaymentReceivedEvent struct {
	ClientID   string
	ExternalID string
	Amount     string
}
