package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/stage"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

const (
	stageSelectQuery = `
		SELECT id, tenant_id, project_type, name, position
		FROM stages WHERE tenant_id = $1 ORDER BY project_type, position`

	durationRuleSelectQuery = `
		SELECT project_type, stage_name, max_instance_hours
		FROM stage_duration_rules WHERE tenant_id = $1`

	durationRuleUpsertQuery = `
		INSERT INTO stage_duration_rules (tenant_id, project_type, stage_name, max_instance_hours)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, project_type, stage_name)
		DO UPDATE SET max_instance_hours = EXCLUDED.max_instance_hours`
)

type PgStageRepository struct{}

func NewStageRepository() stage.Repository {
	return &PgStageRepository{}
}

func (g *PgStageRepository) GetAll(ctx context.Context) ([]stage.Stage, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, stageSelectQuery, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query stages")
	}
	defer rows.Close()

	var out []stage.Stage
	for rows.Next() {
		var s stage.Stage
		if err := rows.Scan(&s.ID, &s.TenantID, &s.ProjectType, &s.Name, &s.Position); err != nil {
			return nil, errors.Wrap(err, "failed to scan stage")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (g *PgStageRepository) GetDurationRules(ctx context.Context) ([]stage.DurationRule, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, durationRuleSelectQuery, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query stage duration rules")
	}
	defer rows.Close()

	var out []stage.DurationRule
	for rows.Next() {
		var r stage.DurationRule
		if err := rows.Scan(&r.ProjectType, &r.StageName, &r.MaxInstanceHours); err != nil {
			return nil, errors.Wrap(err, "failed to scan stage duration rule")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *PgStageRepository) UpsertDurationRule(ctx context.Context, rule stage.DurationRule) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, durationRuleUpsertQuery, tenantID, rule.ProjectType, rule.StageName, rule.MaxInstanceHours)
	if err != nil {
		return errors.Wrap(err, "failed to upsert stage duration rule")
	}
	return nil
}
