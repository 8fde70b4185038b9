package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/project"
)

type CreateProjectDTO struct {
	ClientID    string `json:"clientId" validate:"required,uuid"`
	Name        string `json:"name" validate:"required"`
	OfferingID  string `json:"offeringId" validate:"required,uuid"`
	ProjectType string `json:"projectType" validate:"required"`
	AssigneeID  string `json:"assigneeId" validate:"omitempty,uuid"`
	OwnerID     string `json:"ownerId" validate:"omitempty,uuid"`
	DueDate     string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	TargetDate  string `json:"targetDate" validate:"omitempty,datetime=2006-01-02"`
}

type MoveStageDTO struct {
	Stage string `json:"stage" validate:"required"`
}

type ProjectResponse struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"clientId"`
	Name           string     `json:"name"`
	OfferingID     string     `json:"offeringId"`
	ProjectType    string     `json:"projectType"`
	StageName      string     `json:"stageName"`
	StageEnteredAt time.Time  `json:"stageEnteredAt"`
	AssigneeID     string     `json:"assigneeId,omitempty"`
	OwnerID        string     `json:"ownerId,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	TargetDate     *time.Time `json:"targetDate,omitempty"`
	ServiceDueDate *time.Time `json:"serviceDueDate,omitempty"`
	Archived       bool       `json:"archived"`
	Completed      bool       `json:"completed"`
}

func NewProjectResponse(p project.Project) ProjectResponse {
	out := ProjectResponse{
		ID:             p.ID().String(),
		ClientID:       p.ClientID().String(),
		Name:           p.Name(),
		OfferingID:     p.OfferingID().String(),
		ProjectType:    p.ProjectType(),
		StageName:      p.StageName(),
		StageEnteredAt: p.StageEnteredAt(),
		DueDate:        p.DueDate(),
		TargetDate:     p.TargetDate(),
		ServiceDueDate: p.ServiceDueDate(),
		Archived:       p.Archived(),
		Completed:      p.Completed(),
	}
	if p.AssigneeID() != uuid.Nil {
		out.AssigneeID = p.AssigneeID().String()
	}
	if p.OwnerID() != uuid.Nil {
		out.OwnerID = p.OwnerID().String()
	}
	return out
}
