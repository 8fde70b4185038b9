package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/modules/core/domain/aggregates/user"
	"github.com/ledgerflow/practice-sdk/modules/core/services"
	"github.com/ledgerflow/practice-sdk/pkg/eventbus"
	"github.com/ledgerflow/practice-sdk/pkg/logging"
)

var errStubNotFound = context.Canceled

type stubUserRepo struct {
	users map[uuid.UUID]user.User
}

func newStubUserRepo(seed ...user.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uuid.UUID]user.User{}}
	for _, u := range seed {
		r.users[u.ID()] = u
	}
	return r
}

func (r *stubUserRepo) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) GetAll(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	return r.GetAll(ctx)
}

func (r *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) Create(ctx context.Context, data user.User) (user.User, error) {
	r.users[data.ID()] = data
	return data, nil
}

func (r *stubUserRepo) Update(ctx context.Context, data user.User) (user.User, error) {
	r.users[data.ID()] = data
	return data, nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func TestUserService_GetPaginatedWithTotal(t *testing.T) {
	t.Parallel()

	repo := newStubUserRepo(
		user.New("ana@firm.test", "Ana", user.RoleManager),
		user.New("ben@firm.test", "Ben", user.RoleStaff),
	)
	svc := services.NewUserService(repo, eventbus.NewEventPublisher(logging.SilentLogger()))

	users, total, err := svc.GetPaginatedWithTotal(context.Background(), &user.FindParams{Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)
}

func TestUserService_GetByEmail(t *testing.T) {
	t.Parallel()

	ana := user.New("ana@firm.test", "Ana", user.RoleManager)
	svc := services.NewUserService(newStubUserRepo(ana), eventbus.NewEventPublisher(logging.SilentLogger()))

	got, err := svc.GetByEmail(context.Background(), "ana@firm.test")
	require.NoError(t, err)
	require.Equal(t, ana.ID(), got.ID())

	_, err = svc.GetByEmail(context.Background(), "nobody@firm.test")
	require.Error(t, err)
}
