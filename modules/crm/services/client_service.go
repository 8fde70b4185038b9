package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ledgerflow/practice-sdk/modules/crm/domain/aggregates/client"
	"github.com/ledgerflow/practice-sdk/modules/crm/infrastructure/registry"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
	"github.com/ledgerflow/practice-sdk/pkg/eventbus"
)

type ClientService struct {
	repo      client.Repository
	registry  registry.CompanyRegistry
	publisher eventbus.EventBus
}

func NewClientService(repo client.Repository, reg registry.CompanyRegistry, publisher eventbus.EventBus) *ClientService {
	return &ClientService{
		repo:      repo,
		registry:  reg,
		publisher: publisher,
	}
}

func (s *ClientService) Count(ctx context.Context, params *client.FindParams) (int64, error) {
	return s.repo.Count(ctx, params)
}

func (s *ClientService) GetAll(ctx context.Context) ([]client.Client, error) {
	return s.repo.GetAll(ctx)
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) GetPaginatedWithTotal(ctx context.Context, params *client.FindParams) ([]client.Client, int64, error) {
	cs, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return cs, total, nil
}

// Search ranks the tenant's clients against a free-text query. Unlike the
// ILIKE filter in FindParams this tolerates typos and partial words.
func (s *ClientService) Search(ctx context.Context, q string) ([]client.Client, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return RankByName(q, all), nil
}

// RankByName orders clients by fuzzy match quality against q. Clients whose
// names do not match at all are dropped.
func RankByName(q string, clients []client.Client) []client.Client {
	if q == "" {
		return clients
	}
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name()
	}
	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.Sort(ranks)

	out := make([]client.Client, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, clients[rank.OriginalIndex])
	}
	return out
}

func (s *ClientService) Create(ctx context.Context, data client.Client) (client.Client, error) {
	createdEvent := client.NewCreatedEvent(ctx, data)

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
		return s.repo.Create(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	createdEvent.Result = created
	s.publisher.Publish(createdEvent)
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, data client.Client) (client.Client, error) {
	updatedEvent := client.NewUpdatedEvent(ctx, data)

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
		return s.repo.Update(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	updatedEvent.Result = updated
	s.publisher.Publish(updatedEvent)
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) (client.Client, error) {
	deletedEvent := &client.DeletedEvent{}

	deleted, err := composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
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

	deletedEvent.Result = deleted
	s.publisher.Publish(deletedEvent)
	return deleted, nil
}

// Enrich looks the client's company number up on the public register and
// stores the returned profile on the record.
func (s *ClientService) Enrich(ctx context.Context, id uuid.UUID, companyNumber string) (client.Client, error) {
	profile, err := s.registry.Lookup(ctx, companyNumber)
	if err != nil {
		return nil, err
	}

	enriched, err := composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		updated := existing.SetRegistryProfile(profile.CompanyNumber, profile.RegisteredAddress, profile.IncorporatedAt)
		return s.repo.Update(txCtx, updated)
	})
	if err != nil {
		return nil, err
	}

	event := client.NewEnrichedEvent(ctx, enriched)
	event.Result = enriched
	s.publisher.Publish(event)
	return enriched, nil
}
