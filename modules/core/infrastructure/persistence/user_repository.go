package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/core/domain/aggregates/user"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

var ErrUserNotFound = errors.New("user not found")

const (
	userSelectQuery = `
		SELECT
			u.id,
			u.tenant_id,
			u.email,
			u.name,
			u.role,
			u.active,
			u.created_at,
			u.updated_at
		FROM users u`

	userCountQuery = `SELECT COUNT(u.id) FROM users u`

	userInsertQuery = `
		INSERT INTO users (id, tenant_id, email, name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	userUpdateQuery = `
		UPDATE users SET email = $1, name = $2, role = $3, active = $4, updated_at = $5
		WHERE id = $6 AND tenant_id = $7`

	userDeleteQuery = `DELETE FROM users WHERE id = $1 AND tenant_id = $2`
)

type userRow struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Email     string
	Name      string
	Role      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r userRow) toDomain() user.User {
	return user.New(
		r.Email,
		r.Name,
		user.Role(r.Role),
		user.WithID(r.ID),
		user.WithTenantID(r.TenantID),
		user.WithActive(r.Active),
		user.WithCreatedAt(r.CreatedAt),
		user.WithUpdatedAt(r.UpdatedAt),
	)
}

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) buildFilters(ctx context.Context, params *user.FindParams) ([]string, []any, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get tenant from context")
	}

	where := []string{"u.tenant_id = $1"}
	args := []any{tenantID}

	if params == nil {
		return where, args, nil
	}
	if params.Role != "" {
		args = append(args, string(params.Role))
		where = append(where, fmt.Sprintf("u.role = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		idx := len(args)
		where = append(where, fmt.Sprintf("(u.name ILIKE $%d OR u.email ILIKE $%d)", idx, idx))
	}
	return where, args, nil
}

func (g *PgUserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query users")
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		var r userRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.Email, &r.Name, &r.Role, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		out = append(out, r.toDomain())
	}
	return out, rows.Err()
}

func (g *PgUserRepository) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return 0, err
	}
	var count int64
	query := userCountQuery + " WHERE " + joinWhere(where)
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}
	return count, nil
}

func (g *PgUserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	where, args, err := g.buildFilters(ctx, nil)
	if err != nil {
		return nil, err
	}
	return g.queryUsers(ctx, userSelectQuery+" WHERE "+joinWhere(where)+" ORDER BY u.name", args...)
}

func (g *PgUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return nil, err
	}
	query := userSelectQuery + " WHERE " + joinWhere(where) + " ORDER BY u.name"
	args = append(args, params.Limit, params.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return g.queryUsers(ctx, query, args...)
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	users, err := g.queryUsers(ctx, userSelectQuery+" WHERE u.id = $1 AND u.tenant_id = $2", id, tenantID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

func (g *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	users, err := g.queryUsers(ctx, userSelectQuery+" WHERE u.email = $1 AND u.tenant_id = $2", email, tenantID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

func (g *PgUserRepository) Create(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, userInsertQuery,
		data.ID(), tenantID, data.Email(), data.Name(), string(data.Role()),
		data.Active(), data.CreatedAt(), data.UpdatedAt(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert user")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgUserRepository) Update(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tag, err := tx.Exec(ctx, userUpdateQuery,
		data.Email(), data.Name(), string(data.Role()), data.Active(), time.Now(),
		data.ID(), tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, userDeleteQuery, id, tenantID)
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
