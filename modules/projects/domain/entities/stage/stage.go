// Package stage holds the workflow stage catalogue and the duration rules
// that drive the behind-schedule classification.
package stage

import (
	"context"

	"github.com/google/uuid"
)

type Stage struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ProjectType string
	Name        string
	Position    int
}

// DurationRule caps how long a project may sit in one stage of one project
// type before it counts as behind schedule.
type DurationRule struct {
	ProjectType      string
	StageName        string
	MaxInstanceHours float64
}

type Repository interface {
	GetAll(ctx context.Context) ([]Stage, error)
	GetDurationRules(ctx context.Context) ([]DurationRule, error)
	UpsertDurationRule(ctx context.Context, rule DurationRule) error
}
