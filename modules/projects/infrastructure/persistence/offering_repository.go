package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/offering"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

var ErrOfferingNotFound = errors.New("offering not found")

const (
	offeringSelectQuery = `
		SELECT id, tenant_id, name, active, created_at, updated_at
		FROM offerings`

	offeringInsertQuery = `
		INSERT INTO offerings (id, tenant_id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

type PgOfferingRepository struct{}

func NewOfferingRepository() offering.Repository {
	return &PgOfferingRepository{}
}

func (g *PgOfferingRepository) getOne(ctx context.Context, query string, args ...any) (*offering.Offering, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var o offering.Offering
	err = tx.QueryRow(ctx, query, args...).Scan(&o.ID, &o.TenantID, &o.Name, &o.Active, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query offering")
	}
	return &o, nil
}

func (g *PgOfferingRepository) GetAll(ctx context.Context) ([]*offering.Offering, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, offeringSelectQuery+" WHERE tenant_id = $1 ORDER BY name", tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query offerings")
	}
	defer rows.Close()

	var out []*offering.Offering
	for rows.Next() {
		var o offering.Offering
		if err := rows.Scan(&o.ID, &o.TenantID, &o.Name, &o.Active, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan offering")
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

func (g *PgOfferingRepository) GetByID(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return g.getOne(ctx, offeringSelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
}

func (g *PgOfferingRepository) GetByName(ctx context.Context, name string) (*offering.Offering, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return g.getOne(ctx, offeringSelectQuery+" WHERE name = $1 AND tenant_id = $2", name, tenantID)
}

func (g *PgOfferingRepository) Create(ctx context.Context, data *offering.Offering) (*offering.Offering, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, offeringInsertQuery, data.ID, tenantID, data.Name, data.Active, data.CreatedAt, data.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert offering")
	}
	return g.GetByID(ctx, data.ID)
}
