package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/offering"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

type OfferingService struct {
	repo offering.Repository
}

func NewOfferingService(repo offering.Repository) *OfferingService {
	return &OfferingService{repo: repo}
}

func (s *OfferingService) GetAll(ctx context.Context) ([]*offering.Offering, error) {
	return s.repo.GetAll(ctx)
}

func (s *OfferingService) GetByID(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OfferingService) GetByName(ctx context.Context, name string) (*offering.Offering, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *OfferingService) Create(ctx context.Context, name string) (*offering.Offering, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*offering.Offering, error) {
		return s.repo.Create(txCtx, offering.New(name))
	})
}
