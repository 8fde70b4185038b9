package persistence

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/savedview"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

var ErrSavedViewNotFound = errors.New("saved view not found")

const (
	savedViewSelectQuery = `
		SELECT id, tenant_id, owner_id, name, mode, payload, created_at, updated_at
		FROM saved_views`

	savedViewInsertQuery = `
		INSERT INTO saved_views (id, tenant_id, owner_id, name, mode, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	savedViewUpdateQuery = `
		UPDATE saved_views SET name = $1, mode = $2, payload = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`

	savedViewDeleteQuery = `DELETE FROM saved_views WHERE id = $1 AND tenant_id = $2`
)

type PgSavedViewRepository struct{}

func NewSavedViewRepository() savedview.Repository {
	return &PgSavedViewRepository{}
}

func (g *PgSavedViewRepository) queryViews(ctx context.Context, query string, args ...any) ([]*savedview.SavedView, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query saved views")
	}
	defer rows.Close()

	var out []*savedview.SavedView
	for rows.Next() {
		var v savedview.SavedView
		if err := rows.Scan(&v.ID, &v.TenantID, &v.OwnerID, &v.Name, &v.Mode, &v.Payload, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan saved view")
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (g *PgSavedViewRepository) GetAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]*savedview.SavedView, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return g.queryViews(ctx,
		savedViewSelectQuery+" WHERE tenant_id = $1 AND owner_id = $2 ORDER BY name",
		tenantID, ownerID)
}

func (g *PgSavedViewRepository) GetByID(ctx context.Context, id uuid.UUID) (*savedview.SavedView, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	var v savedview.SavedView
	err = tx.QueryRow(ctx, savedViewSelectQuery+" WHERE id = $1 AND tenant_id = $2", id, tenantID).
		Scan(&v.ID, &v.TenantID, &v.OwnerID, &v.Name, &v.Mode, &v.Payload, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSavedViewNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query saved view")
	}
	return &v, nil
}

func (g *PgSavedViewRepository) Create(ctx context.Context, data *savedview.SavedView) (*savedview.SavedView, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, savedViewInsertQuery,
		data.ID, tenantID, data.OwnerID, data.Name, data.Mode, data.Payload, data.CreatedAt, data.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert saved view")
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgSavedViewRepository) Update(ctx context.Context, data *savedview.SavedView) (*savedview.SavedView, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tag, err := tx.Exec(ctx, savedViewUpdateQuery,
		data.Name, data.Mode, data.Payload, time.Now(), data.ID, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update saved view")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSavedViewNotFound
	}
	return g.GetByID(ctx, data.ID)
}

func (g *PgSavedViewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, savedViewDeleteQuery, id, tenantID)
	if err != nil {
		return errors.Wrap(err, "failed to delete saved view")
	}
	if tag.RowsAffected() == 0 {
		return ErrSavedViewNotFound
	}
	return nil
}
