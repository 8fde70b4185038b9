package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/core/domain/aggregates/user"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
	"github.com/ledgerflow/practice-sdk/pkg/eventbus"
)

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	return s.repo.Count(ctx, params)
}

func (s *UserService) GetAll(ctx context.Context) ([]user.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) GetPaginatedWithTotal(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	us, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return us, total, nil
}

func (s *UserService) Create(ctx context.Context, data user.User) (user.User, error) {
	createdEvent := user.NewCreatedEvent(ctx, data)

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		return s.repo.Create(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	createdEvent.Result = created
	s.publisher.Publish(createdEvent)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, data user.User) (user.User, error) {
	updatedEvent := user.NewUpdatedEvent(ctx, data)

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		return s.repo.Update(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	updatedEvent.Result = updated
	s.publisher.Publish(updatedEvent)
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (user.User, error) {
	deletedEvent := &user.DeletedEvent{}

	deleted, err := composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return nil, err
		}
		return existing, nil
	})
	if err != nil {
		return nil, err
	}

	deletedEvent.Data = deleted
	deletedEvent.Result = deleted
	s.publisher.Publish(deletedEvent)
	return deleted, nil
}
