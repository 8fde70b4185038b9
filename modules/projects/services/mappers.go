package services

import (
	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/project"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// toFilterRecord flattens the aggregate into the engine's record shape.
func toFilterRecord(p project.Project) filter.Project {
	return filter.Project{
		ID:             p.ID().String(),
		ClientID:       p.ClientID().String(),
		Name:           p.Name(),
		ServiceID:      p.OfferingID().String(),
		ProjectType:    p.ProjectType(),
		StageName:      p.StageName(),
		StageEnteredAt: p.StageEnteredAt(),
		AssigneeID:     uuidString(p.AssigneeID()),
		OwnerID:        uuidString(p.OwnerID()),
		DueDate:        p.DueDate(),
		TargetDate:     p.TargetDate(),
		ServiceDueDate: p.ServiceDueDate(),
		Archived:       p.Archived(),
		Completed:      p.Completed(),
	}
}

func uuidString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
