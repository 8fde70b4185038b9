// Package savedview holds named, persisted filter bundles. The payload is
// opaque to the server: it stores and returns the serialized bundle without
// interpreting it, so client and server payload schemas evolve together.
package savedview

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SavedView struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Mode      string
	Payload   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(ownerID uuid.UUID, name, mode, payload string) *SavedView {
	now := time.Now()
	return &SavedView{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Mode:      mode,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Repository interface {
	GetAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]*SavedView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SavedView, error)
	Create(ctx context.Context, data *SavedView) (*SavedView, error)
	Update(ctx context.Context, data *SavedView) (*SavedView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
