package project

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Limit           int
	Offset          int
	Search          string
	ClientID        uuid.UUID
	IncludeArchived bool
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetAll(ctx context.Context, params *FindParams) ([]Project, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	Create(ctx context.Context, data Project) (Project, error)
	Update(ctx context.Context, data Project) (Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
