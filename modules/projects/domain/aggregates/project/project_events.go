package project

import "context"

func NewCreatedEvent(_ context.Context, data Project) *CreatedEvent {
	return &CreatedEvent{Data: data}
}

func NewUpdatedEvent(_ context.Context, data Project) *UpdatedEvent {
	return &UpdatedEvent{Data: data}
}

func NewStageChangedEvent(_ context.Context, data Project, from string) *StageChangedEvent {
	return &StageChangedEvent{Data: data, FromStage: from}
}

type CreatedEvent struct {
	Data   Project
	Result Project
}

type UpdatedEvent struct {
	Data   Project
	Result Project
}

type StageChangedEvent struct {
	Data      Project
	FromStage string
	Result    Project
}
