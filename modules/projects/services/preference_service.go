package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/preference"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
)

type PreferenceService struct {
	repo preference.Repository
}

func NewPreferenceService(repo preference.Repository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

func (s *PreferenceService) GetForUser(ctx context.Context, userID uuid.UUID) (*preference.Preference, error) {
	return s.repo.GetForUser(ctx, userID)
}

func (s *PreferenceService) Write(ctx context.Context, data *preference.Preference) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Write(txCtx, data)
	})
}
