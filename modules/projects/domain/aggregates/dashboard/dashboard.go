// Package dashboard holds persisted widget boards. Like saved views the
// payload (bundle + widget configurations) is stored opaquely.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Dashboard struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Shared     bool
	Homescreen bool
	Payload    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func New(ownerID uuid.UUID, name, payload string) *Dashboard {
	now := time.Now()
	return &Dashboard{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Repository interface {
	// GetVisibleToOwner returns the owner's boards plus shared ones.
	GetVisibleToOwner(ctx context.Context, ownerID uuid.UUID) ([]*Dashboard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Dashboard, error)
	Create(ctx context.Context, data *Dashboard) (*Dashboard, error)
	Update(ctx context.Context, data *Dashboard) (*Dashboard, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
