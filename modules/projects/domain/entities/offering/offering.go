// Package offering holds the services a practice sells. Offerings are the
// "service" dimension of the projects filter.
package offering

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Offering struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(name string) *Offering {
	now := time.Now()
	return &Offering{
		ID:        uuid.New(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Repository interface {
	GetAll(ctx context.Context) ([]*Offering, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Offering, error)
	GetByName(ctx context.Context, name string) (*Offering, error)
	Create(ctx context.Context, data *Offering) (*Offering, error)
}
