package user

import (
	"context"

	"github.com/google/uuid"
)

// FindParams narrows and pages the user listing.
type FindParams struct {
	Limit  int
	Offset int
	Search string
	Role   Role
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetAll(ctx context.Context) ([]User, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, data User) (User, error)
	Update(ctx context.Context, data User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
