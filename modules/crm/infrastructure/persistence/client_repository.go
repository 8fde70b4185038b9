package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/practice-sdk/modules/crm/domain/aggregates/client"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

var ErrClientNotFound = errors.New("client not found")

const (
	clientSelectQuery = `
		SELECT
			c.id,
			c.tenant_id,
			c.name,
			c.company_number,
			c.email,
			c.annual_fee,
			c.active,
			c.incorporated_at,
			c.registered_address,
			c.created_at,
			c.updated_at
		FROM clients c`

	clientCountQuery = `SELECT COUNT(c.id) FROM clients c`

	clientInsertQuery = `
		INSERT INTO clients (
			id, tenant_id, name, company_number, email, annual_fee, active,
			incorporated_at, registered_address, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	clientUpdateQuery = `
		UPDATE clients SET
			name = $1, company_number = $2, email = $3, annual_fee = $4,
			active = $5, incorporated_at = $6, registered_address = $7, updated_at = $8
		WHERE id = $9 AND tenant_id = $10`

	clientDeleteQuery = `DELETE FROM clients WHERE id = $1 AND tenant_id = $2`
)

type clientRow struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	Name              string
	CompanyNumber     string
	Email             string
	AnnualFee         decimal.Decimal
	Active            bool
	IncorporatedAt    *time.Time
	RegisteredAddress string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r clientRow) toDomain() client.Client {
	return client.New(
		r.Name,
		client.WithID(r.ID),
		client.WithTenantID(r.TenantID),
		client.WithCompanyNumber(r.CompanyNumber),
		client.WithEmail(r.Email),
		client.WithAnnualFee(r.AnnualFee),
		client.WithActive(r.Active),
		client.WithIncorporatedAt(r.IncorporatedAt),
		client.WithRegisteredAddress(r.RegisteredAddress),
		client.WithCreatedAt(r.CreatedAt),
		client.WithUpdatedAt(r.UpdatedAt),
	)
}

type PgClientRepository struct{}

func NewClientRepository() client.Repository {
	return &PgClientRepository{}
}

func (g *PgClientRepository) buildFilters(ctx context.Context, params *client.FindParams) ([]string, []any, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get tenant from context")
	}

	where := []string{"c.tenant_id = $1"}
	args := []any{tenantID}

	if params == nil {
		return where, args, nil
	}
	if params.ActiveOnly {
		where = append(where, "c.active")
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		idx := len(args)
		where = append(where, fmt.Sprintf("(c.name ILIKE $%d OR c.company_number ILIKE $%d)", idx, idx))
	}
	return where, args, nil
}

func (g *PgClientRepository) queryClients(ctx context.Context, query string, args ...any) ([]client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query clients")
	}
	defer rows.Close()

	var out []client.Client
	for rows.Next() {
		var r clientRow
		if err := rows.Scan(
			&r.ID, &r.TenantID, &r.Name, &r.CompanyNumber, &r.Email,
			&r.AnnualFee, &r.Active, &r.IncorporatedAt, &r.RegisteredAddress,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan client")
		}
		out = append(out, r.toDomain())
	}
	return out, rows.Err()
}

func (g *PgClientRepository) Count(ctx context.Context, params *client.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return 0, err
	}
	var count int64
	query := clientCountQuery + " WHERE " + joinWhere(where)
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count clients")
	}
	return count, nil
}

func (g *PgClientRepository) GetAll(ctx context.Context) ([]client.Client, error) {
	where, args, err := g.buildFilters(ctx, nil)
	if err != nil {
		return nil, err
	}
	return g.queryClients(ctx, clientSelectQuery+" WHERE "+joinWhere(where)+" ORDER BY c.name", args...)
}

func (g *PgClientRepository) GetPaginated(ctx context.Context, params *client.FindParams) ([]client.Client, error) {
	where, args, err := g.buildFilters(ctx, params)
	if err != nil {
		return nil, err
	}
	query := clientSelectQuery + " WHERE " + joinWhere(where) + " ORDER BY c.name"
	args = append(args, params.Limit, params.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return g.queryClients(ctx, query, args...)
}

func (g *PgClientRepository) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := g.queryClients(ctx, clientSelectQuery+" WHERE c.id = $1 AND c.tenant_id = $2", id, tenantID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, ErrClientNotFound
	}
	return clients[0], nil
}

func (g *PgClientRepository) GetByCompanyNumber(ctx context.Context, number string) (client.Client, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := g.queryClients(ctx, clientSelectQuery+" WHERE c.company_number = $1 AND c.tenant_id = $2", number, tenantID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, ErrClientNotFound
	}
	return clients[0], nil
}

func (g *PgClientRepository) Create(ctx context.Context, data client.Client) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, clientInsertQuery,
		data.ID(), tenantID, data.Name(), data.CompanyNumber(), data.Email(),
		data.AnnualFee(), data.Active(), data.IncorporatedAt(), data.RegisteredAddress(),
		data.CreatedAt(), data.UpdatedAt(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert client")
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgClientRepository) Update(ctx context.Context, data client.Client) (client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	tag, err := tx.Exec(ctx, clientUpdateQuery,
		data.Name(), data.CompanyNumber(), data.Email(), data.AnnualFee(),
		data.Active(), data.IncorporatedAt(), data.RegisteredAddress(), time.Now(),
		data.ID(), tenantID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update client")
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrClientNotFound
	}
	return g.GetByID(ctx, data.ID())
}

func (g *PgClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, clientDeleteQuery, id, tenantID)
	if err != nil {
		return errors.Wrap(err, "failed to delete client")
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}
