package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/project"
	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/stage"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
	"github.com/ledgerflow/practice-sdk/pkg/eventbus"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

type ProjectService struct {
	repo      project.Repository
	stageRepo stage.Repository
	snapshots viewstate.SnapshotStore
	publisher eventbus.EventBus
}

func NewProjectService(
	repo project.Repository,
	stageRepo stage.Repository,
	snapshots viewstate.SnapshotStore,
	publisher eventbus.EventBus,
) *ProjectService {
	return &ProjectService{
		repo:      repo,
		stageRepo: stageRepo,
		snapshots: snapshots,
		publisher: publisher,
	}
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) GetPaginatedWithTotal(ctx context.Context, params *project.FindParams) ([]project.Project, int64, error) {
	ps, err := s.repo.GetPaginated(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return ps, total, nil
}

// Listing returns the flattened records the filtering engine consumes and
// refreshes the coarse cache for the query's key on the way out.
func (s *ProjectService) Listing(ctx context.Context, q viewstate.ProjectQuery) ([]filter.Project, error) {
	params := &project.FindParams{IncludeArchived: q.IncludeArchived}
	ps, err := s.repo.GetAll(ctx, params)
	if err != nil {
		return nil, err
	}
	records := make([]filter.Project, 0, len(ps))
	for _, p := range ps {
		records = append(records, toFilterRecord(p))
	}
	if s.snapshots != nil && q.CacheEligible() {
		_ = s.snapshots.Write(ctx, q.Key(), records)
	}
	return records, nil
}

// CachedListing returns the last known-good listing when one exists.
func (s *ProjectService) CachedListing(ctx context.Context, q viewstate.ProjectQuery) (viewstate.Snapshot, bool) {
	if s.snapshots == nil || !q.CacheEligible() {
		return viewstate.Snapshot{}, false
	}
	snap, ok, err := s.snapshots.Read(ctx, q.Key())
	if err != nil || !ok {
		return viewstate.Snapshot{}, false
	}
	return snap, true
}

// StageDurations resolves the behind-schedule rule lookup.
func (s *ProjectService) StageDurations(ctx context.Context) (filter.StageDurations, error) {
	rules, err := s.stageRepo.GetDurationRules(ctx)
	if err != nil {
		return nil, err
	}
	out := make(filter.StageDurations, len(rules))
	for _, r := range rules {
		out[filter.DurationKey{ProjectType: r.ProjectType, StageName: r.StageName}] = r.MaxInstanceHours
	}
	return out, nil
}

func (s *ProjectService) Create(ctx context.Context, data project.Project) (project.Project, error) {
	createdEvent := project.NewCreatedEvent(ctx, data)

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		return s.repo.Create(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	createdEvent.Result = created
	s.publisher.Publish(createdEvent)
	return created, nil
}

func (s *ProjectService) Update(ctx context.Context, data project.Project) (project.Project, error) {
	updatedEvent := project.NewUpdatedEvent(ctx, data)

	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		return s.repo.Update(txCtx, data)
	})
	if err != nil {
		return nil, err
	}

	updatedEvent.Result = updated
	s.publisher.Publish(updatedEvent)
	return updated, nil
}

// MoveToStage advances a project through its workflow and announces the
// transition.
func (s *ProjectService) MoveToStage(ctx context.Context, id uuid.UUID, stageName string) (project.Project, error) {
	moved, err := composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		updated, err := s.repo.Update(txCtx, existing.MoveToStage(stageName))
		if err != nil {
			return nil, err
		}
		event := project.NewStageChangedEvent(txCtx, updated, existing.StageName())
		event.Result = updated
		s.publisher.Publish(event)
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (s *ProjectService) Archive(ctx context.Context, id uuid.UUID) (project.Project, error) {
	return s.mutate(ctx, id, project.Project.Archive)
}

func (s *ProjectService) Restore(ctx context.Context, id uuid.UUID) (project.Project, error) {
	return s.mutate(ctx, id, project.Project.Restore)
}

func (s *ProjectService) Complete(ctx context.Context, id uuid.UUID) (project.Project, error) {
	return s.mutate(ctx, id, project.Project.Complete)
}

func (s *ProjectService) mutate(ctx context.Context, id uuid.UUID, op func(project.Project) project.Project) (project.Project, error) {
	updated, err := composables.InTxResult(ctx, func(txCtx context.Context) (project.Project, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		return s.repo.Update(txCtx, op(existing))
	})
	if err != nil {
		return nil, err
	}
	event := project.NewUpdatedEvent(ctx, updated)
	event.Result = updated
	s.publisher.Publish(event)
	return updated, nil
}
