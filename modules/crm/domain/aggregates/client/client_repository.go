package client

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	Limit      int
	Offset     int
	Search     string
	ActiveOnly bool
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetAll(ctx context.Context) ([]Client, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	GetByCompanyNumber(ctx context.Context, number string) (Client, error)
	Create(ctx context.Context, data Client) (Client, error)
	Update(ctx context.Context, data Client) (Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
