package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/project"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

var ErrProjectNotFound = errors.New("project not found")

const (
	projectSelectQuery = `
		SELECT
			p.id,
			p.tenant_id,
			p.client_id,
			p.name,
			p.offering_id,
			p.project_type,
			p.stage_name,
			p.stage_entered_at,
			p.assignee_id,
			p.owner_id,
			p.due_date,
			p.target_date,
			p.service_due_date,
			p.archived,
			p.completed,
			p.created_at,
			p.updated_at
		FROM projects p`

	projectCountQuery = `SELECT COUNT(p.id) FROM projects p`

	projectInsertQuery = `
		INSERT INTO projects (
			id, tenant_id, client_id, name, offering_id, project_type,
			stage_name, stage_entered_at, assignee_id, owner_id,
			due_date, target_date, service_due_date, archived, completed,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	projectUpdateQuery = `
		UPDATE projects SET
			name = $1, stage_name = $2, stage_entered_at = $3, assignee_id = $4,
			owner_id = $5, due_date = $6, target_date = $7, service_due_date = $8,
			archived = $9, completed = $10, updated_at = $11
		WHERE id = $12 AND tenant_id = $13`

	projectDeleteQuery = `DELETE FROM projects WHERE id = $1 AND tenant_id = $2`
)

type projectRow struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	ClientID       uuid.UUID
	Name           string
	OfferingID     uuid.UUID
	ProjectType    string
	StageName      string
	StageEnteredAt time.Time
	AssigneeID     uuid.NullUUID
	OwnerID        uuid.NullUUID
	DueDate        *time.Time
	TargetDate     *time.Time
	ServiceDueDate *time.Time
	Archived       bool
	Completed      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r projectRow) toDomain() project.Project {
	opts := []project.Option{
		project.WithID(r.ID),
		project.WithTenantID(r.TenantID),
		project.WithStage(r.StageName, r.StageEnteredAt),
		project.WithDueDate(r.DueDate),
		project.WithTargetDate(r.TargetDate),
		project.WithServiceDueDate(r.ServiceDueDate),
		project.WithArchived(r.Archived),
		project.WithCompleted(r.Completed),
		project.WithCreatedAt(r.CreatedAt),
		project.WithUpdatedAt(r.UpdatedAt),
	}
	if r.AssigneeID.Valid {
		opts = append(opts, project.WithAssigneeID(r.AssigneeID.UUID))
	}
	if r.OwnerID.Valid {
		opts = append(opts, project.WithOwnerID(r.OwnerID.UUID))
	}
	return project.New(r.ClientID, r.Name, r.OfferingID, r.ProjectType, opts...)
}

type PgProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &PgProjectRepository{}
}

func (g *PgProjectRepository) buildFilters(ctx context.Context, params *project.FindParams) ([]string, []any, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get tenant from context")
	}

	where := []string{"p.tenant_id = $1"}
	args := []any{tenantID}

	if params == nil {
		return where, args, nil
	}
	if !params.IncludeArchived {
		where = append(where, "p.archived = FALSE")
	}
	if params.ClientID != uuid.Nil {
		args = append(args, params.ClientID)
		where = append(where, fmt.Sprintf("p.client_id = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	return where, args, nil
}

func (g *PgProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query projects")
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		var r projectRow
		if err := rows.Scan(
			&r.ID, &r.TenantID, &r.ClientID, &r.Name, &r.OfferingID, &r.ProjectType,
			&r.StageName, &r.StageEnteredAt, &r.AssigneeID, &r.OwnerID,
			&r.DueDate, &r.TargetDate, &r.ServiceDueDate, &r.Archived, &r.Completed,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan project")
		}
		out = append(out, r.toDomain())
	}
	return out, rows.Err()
}

func (g *PgProjectRepository) Count(ctx context.Context, params *project.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, projectCountQuery+" WHERE "+strings.Join(where, " AND "), args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count projects")
	}
	return count, nil
}

func (g *PgProjectRepository) GetAll(ctx context.Context, params *project.FindParams) ([]project.Project, error) {
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return nil, err
	}
	query := projectSelectQuery + " WHERE " + strings.Join(where, " AND ") + " ORDER BY p.due_date NULLS LAST, p.name"
	return g.queryProjects(ctx, query, args...)
}

func (g *PgProjectRepository) GetPaginated(ctx context.Context, params *project.FindParams) ([]project.Project, error) {
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return nil, err
	}
	query := projectSelectQuery + " WHERE " + strings.Join(where, " AND ") + " ORDER BY p.due_date NULLS LAST, p.name"
	args = append(args, params.Limit, params.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return g.queryProjects(ctx, query, args...)
}

func (g *PgProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := g.queryProjects(ctx, projectSelectQuery+" WHERE p.id = $1 AND p.tenant_id = $2", id, tenantID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrProjectNotFound
	}
	return projects[0], nil
}

func (g *PgProjectRepository) Create(ctx context.Context, data project.Project) (project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, projectInsertQuery,
		data.ID(), tenantID, data.ClientID(), data.Name(), data.OfferingID(), data.ProjectType(),
		data.StageName(), data.StageEnteredAt(), nullableUUID(data.AssigneeID()), nullableUUID(data.OwnerID()),
		data.DueDate(), data.TargetDate(), data.ServiceDueDate(), data.Archived(), data.Completed(),
		data.CreatedAt(), data.UpdatedAt(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert project")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgProjectRepository) Update(ctx context.Context, data project.Project) (project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tag, err := tx.Exec(ctx, projectUpdateQuery,
		data.Name(), data.StageName(), data.StageEnteredAt(), nullableUUID(data.AssigneeID()),
		nullableUUID(data.OwnerID()), data.DueDate(), data.TargetDate(), data.ServiceDueDate(),
		data.Archived(), data.Completed(), time.Now(),
		data.ID(), tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update project")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrProjectNotFound
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, projectDeleteQuery, id, tenantID)
	if err != nil {
		return errors.Wrap(err, "failed to delete project")
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func nullableUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
