package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ledgerflow/practice-sdk/modules/core/domain/entities/tenant"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

var ErrTenantNotFound = errors.New("tenant not found")

const (
	tenantSelectQuery = `SELECT id, name, domain, created_at, updated_at FROM tenants`
	tenantInsertQuery = `
		INSERT INTO tenants (id, name, domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
)

type PgTenantRepository struct{}

func NewTenantRepository() tenant.Repository {
	return &PgTenantRepository{}
}

func (g *PgTenantRepository) getOne(ctx context.Context, query string, args ...any) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var t tenant.Tenant
	err = tx.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Domain, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query tenant")
	}
	return &t, nil
}

func (g *PgTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return g.getOne(ctx, tenantSelectQuery+" WHERE id = $1", id)
}

func (g *PgTenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	return g.getOne(ctx, tenantSelectQuery+" WHERE domain = $1", domain)
}

func (g *PgTenantRepository) Create(ctx context.Context, data *tenant.Tenant) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, tenantInsertQuery, data.ID, data.Name, data.Domain, data.CreatedAt, data.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert tenant")
	}
	return g.GetByID(ctx, data.ID)
}
