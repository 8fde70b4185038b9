package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/savedview"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
	"github.com/ledgerflow/practice-sdk/pkg/serrors"
)

var ErrViewNameRequired = serrors.NewFieldRequiredError("name")

type SavedViewService struct {
	repo savedview.Repository
}

func NewSavedViewService(repo savedview.Repository) *SavedViewService {
	return &SavedViewService{repo: repo}
}

func (s *SavedViewService) GetAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]*savedview.SavedView, error) {
	return s.repo.GetAllForOwner(ctx, ownerID)
}

func (s *SavedViewService) GetByID(ctx context.Context, id uuid.UUID) (*savedview.SavedView, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates before touching storage. The payload is stored opaquely;
// the server never interprets bundle contents.
func (s *SavedViewService) Create(ctx context.Context, ownerID uuid.UUID, name, mode, payload string) (*savedview.SavedView, error) {
	if name == "" {
		return nil, ErrViewNameRequired
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*savedview.SavedView, error) {
		return s.repo.Create(txCtx, savedview.New(ownerID, name, mode, payload))
	})
}

func (s *SavedViewService) Update(ctx context.Context, data *savedview.SavedView) (*savedview.SavedView, error) {
	if data.Name == "" {
		return nil, ErrViewNameRequired
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*savedview.SavedView, error) {
		return s.repo.Update(txCtx, data)
	})
}

func (s *SavedViewService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}
