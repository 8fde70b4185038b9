package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/dashboard"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

var ErrDashboardNotFound = errors.New("dashboard not found")

const (
	dashboardSelectQuery = `
		SELECT id, tenant_id, owner_id, name, shared, homescreen, payload, created_at, updated_at
		FROM dashboards`

	dashboardInsertQuery = `
		INSERT INTO dashboards (id, tenant_id, owner_id, name, shared, homescreen, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	dashboardUpdateQuery = `
		UPDATE dashboards SET name = $1, shared = $2, homescreen = $3, payload = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7`

	dashboardDeleteQuery = `DELETE FROM dashboards WHERE id = $1 AND tenant_id = $2`
)

type PgDashboardRepository struct{}

func NewDashboardRepository() dashboard.Repository {
	return &PgDashboardRepository{}
}

func (g *PgDashboardRepository) queryDashboards(ctx context.Context, query string, args ...any) ([]*dashboard.Dashboard, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query dashboards")
	}
	defer rows.Close()

	var out []*dashboard.Dashboard
	for rows.Next() {
		var d dashboard.Dashboard
		if err := rows.Scan(&d.ID, &d.TenantID, &d.OwnerID, &d.Name, &d.Shared, &d.Homescreen, &d.Payload, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan dashboard")
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (g *PgDashboardRepository) GetVisibleToOwner(ctx context.Context, ownerID uuid.UUID) ([]*dashboard.Dashboard, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return g.queryDashboards(ctx,
		dashboardSelectQuery+" WHERE tenant_id = $1 AND (owner_id = $2 OR shared) ORDER BY name",
		tenantID, ownerID)
}

func (g *PgDashboardRepository) GetByID(ctx context.Context, id uuid.UUID) (*dashboard.Dashboard, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	var d dashboard.Dashboard
	err = tx.QueryRow(ctx, dashboardSelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID).
		Scan(&d.ID, &d.TenantID, &d.OwnerID, &d.Name, &d.Shared, &d.Homescreen, &d.Payload, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDashboardNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query dashboard")
	}
	return &d, nil
}

func (g *PgDashboardRepository) Create(ctx context.Context, data *dashboard.Dashboard) (*dashboard.Dashboard, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, dashboardInsertQuery,
		data.ID, tenantID, data.OwnerID, data.Name, data.Shared, data.Homescreen, data.Payload, data.CreatedAt, data.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert dashboard")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgDashboardRepository) Update(ctx context.Context, data *dashboard.Dashboard) (*dashboard.Dashboard, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tag, err := tx.Exec(ctx, dashboardUpdateQuery,
		data.Name, data.Shared, data.Homescreen, data.Payload, time.Now(), data.ID, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update dashboard")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrDashboardNotFound
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgDashboardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, dashboardDeleteQuery, id, tenantID)
	if err != nil {
		return errors.Wrap(err, "failed to delete dashboard")
	}
	if tag.RowsAffected() == 0 {
		return ErrDashboardNotFound
	}
	return nil
}
