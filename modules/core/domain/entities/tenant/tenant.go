// Package tenant holds the practice identity every other aggregate is
// scoped by. Tenancy is row-level: each table carries tenant_id and every
// repository filters on the value resolved from context.
package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID        uuid.UUID
	Name      string
	Domain    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(name, domain string) *Tenant {
	now := time.Now()
	return &Tenant{
		ID:        uuid.New(),
		Name:      name,
		Domain:    domain,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
	Create(ctx context.Context, data *Tenant) (*Tenant, error)
}
