package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/preference"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

const (
	preferenceSelectQuery = `
		SELECT user_id, tenant_id, default_view_type, default_view_id
		FROM view_preferences WHERE user_id = $1 AND tenant_id = $2`

	// Full overwrite: the previous default is replaced wholesale.
	preferenceUpsertQuery = `
		INSERT INTO view_preferences (user_id, tenant_id, default_view_type, default_view_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, tenant_id)
		DO UPDATE SET default_view_type = EXCLUDED.default_view_type,
		              default_view_id = EXCLUDED.default_view_id`
)

type PgPreferenceRepository struct{}

func NewPreferenceRepository() preference.Repository {
	return &PgPreferenceRepository{}
}

func (g *PgPreferenceRepository) GetForUser(ctx context.Context, userID uuid.UUID) (*preference.Preference, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	var p preference.Preference
	err = tx.QueryRow(ctx, preferenceSelectQuery, userID, tenantID).
		Scan(&p.UserID, &p.TenantID, &p.DefaultViewType, &p.DefaultViewID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No stored default is a valid state, not an error.
		return &preference.Preference{UserID: userID, TenantID: tenantID}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query view preference")
	}
	return &p, nil
}

func (g *PgPreferenceRepository) Write(ctx context.Context, data *preference.Preference) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, preferenceUpsertQuery, data.UserID, tenantID, data.DefaultViewType, data.DefaultViewID)
	if err != nil {
		return errors.Wrap(err, "failed to write view preference")
	}
	return nil
}
