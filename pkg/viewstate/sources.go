package viewstate

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ledgerflow/practice-sdk/pkg/swr"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// Fetcher is the read contract against the server. Implementations are HTTP
// or repository clients; the engine only sees resolved values.
type Fetcher interface {
	Projects(ctx context.Context, q ProjectQuery) ([]filter.Project, error)
	Members(ctx context.Context) ([]Member, error)
	Offerings(ctx context.Context) ([]Offering, error)
	StageDurations(ctx context.Context) (filter.StageDurations, error)
	SavedViews(ctx context.Context) ([]SavedView, error)
	Dashboards(ctx context.Context) ([]Dashboard, error)
	Preference(ctx context.Context) (Preference, error)
	ColumnPrefs(ctx context.Context) ([]string, error)
}

// SnapshotStore is the server-side coarse cache of the project listing. It
// is keyed more coarsely than the live query surface, so not every filter
// combination is eligible for it.
type SnapshotStore interface {
	Read(ctx context.Context, key string) (Snapshot, bool, error)
	Write(ctx context.Context, key string, projects []filter.Project) error
}

// ProjectQuery is the parameter set of the projects read. Distinct
// parameter combinations cache distinctly.
type ProjectQuery struct {
	IncludeArchived bool
	ServiceDueDate  filter.DynamicDate
}

// CacheEligible reports whether the server-side coarse cache covers this
// parameter combination. Exotic service-due-date queries bypass it; a live
// uncached fetch for those is correct behavior, not a bug.
func (q ProjectQuery) CacheEligible() bool {
	return q.ServiceDueDate == filter.DateAll || q.ServiceDueDate == ""
}

// Key is the canonical snapshot key for this parameter combination. Every
// snapshot reader and writer must derive keys through it; two spellings of
// the same query would otherwise cache past each other.
func (q ProjectQuery) Key() string {
	key := "projects|archived=0"
	if q.IncludeArchived {
		key = "projects|archived=1"
	}
	if q.ServiceDueDate != filter.DateAll && q.ServiceDueDate != "" {
		key += "|svcdue=" + string(q.ServiceDueDate)
	}
	return key
}

// ProjectsResult is the three-phase read projection: Projects always holds
// something renderable; FromCache/Syncing describe which phase served it.
type ProjectsResult struct {
	Projects  []filter.Project
	FromCache bool
	CachedAt  time.Time
	// Syncing is true while a cached snapshot is on screen and a
	// background revalidation is in flight.
	Syncing bool
}

// SourcesConfig carries the per-resource staleness windows.
type SourcesConfig struct {
	ProjectsTTL   time.Duration
	ReferenceTTL  time.Duration // members, offerings, stage durations
	CollectionTTL time.Duration // saved views, dashboards, prefs
}

func (c *SourcesConfig) fill() {
	if c.ProjectsTTL == 0 {
		c.ProjectsTTL = 30 * time.Second
	}
	if c.ReferenceTTL == 0 {
		c.ReferenceTTL = 5 * time.Minute
	}
	if c.CollectionTTL == 0 {
		c.CollectionTTL = time.Minute
	}
}

// Sources orchestrates every read the page needs: parameterized, cached,
// de-duplicated, each gated on authentication (and sometimes role or mode).
type Sources struct {
	fetcher   Fetcher
	snapshots SnapshotStore
	cache     *swr.Cache
	cfg       SourcesConfig
	log       *logrus.Logger
}

func NewSources(fetcher Fetcher, snapshots SnapshotStore, cache *swr.Cache, cfg SourcesConfig, log *logrus.Logger) *Sources {
	cfg.fill()
	return &Sources{
		fetcher:   fetcher,
		snapshots: snapshots,
		cache:     cache,
		cfg:       cfg,
		log:       log,
	}
}

// Projects serves the primary listing. Before the first live fetch lands,
// a cache-eligible query is served from the coarse snapshot (phase 1), with
// a background revalidation when the snapshot is past its freshness window
// (phase 2). Once the in-process cache is warm it is the source of truth:
// later reads come back fresh with Syncing off (phase 3). Fresh data
// replaces the cached value wholesale, never in place.
func (s *Sources) Projects(ctx context.Context, q ProjectQuery, loadingView bool) (ProjectsResult, error) {
	eligible := q.CacheEligible() || loadingView
	if _, warm := s.cache.Peek(q.Key()); !warm && eligible && s.snapshots != nil {
		snap, ok, err := s.snapshots.Read(ctx, q.Key())
		if err != nil {
			s.log.WithError(err).Warn("viewstate: snapshot read failed, falling back to live fetch")
		} else if ok {
			if snap.Stale {
				s.revalidateProjects(ctx, q)
			}
			return ProjectsResult{
				Projects:  snap.Projects,
				FromCache: true,
				CachedAt:  snap.CachedAt,
				Syncing:   snap.Stale,
			}, nil
		}
	}

	projects, res, err := swr.GetTyped(ctx, s.cache, q.Key(), s.cfg.ProjectsTTL, func(ctx context.Context) ([]filter.Project, error) {
		return s.fetchAndSnapshot(ctx, q)
	})
	if err != nil {
		return ProjectsResult{}, err
	}
	return ProjectsResult{
		Projects:  projects,
		FromCache: res.Stale,
		CachedAt:  res.FetchedAt,
		Syncing:   res.Stale,
	}, nil
}

// revalidateProjects refreshes the listing through the in-process cache so
// concurrent revalidations of the same key collapse into one fetch, and so
// the warm entry serves every read after the refresh lands.
func (s *Sources) revalidateProjects(ctx context.Context, q ProjectQuery) {
	detached := context.WithoutCancel(ctx)
	go func() {
		_, _, err := swr.GetTyped(detached, s.cache, q.Key(), s.cfg.ProjectsTTL, func(ctx context.Context) ([]filter.Project, error) {
			return s.fetchAndSnapshot(ctx, q)
		})
		if err != nil {
			s.log.WithError(err).Warn("viewstate: project revalidation failed")
		}
	}()
}

func (s *Sources) fetchAndSnapshot(ctx context.Context, q ProjectQuery) ([]filter.Project, error) {
	projects, err := s.fetcher.Projects(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.snapshots != nil && q.CacheEligible() {
		if err := s.snapshots.Write(ctx, q.Key(), projects); err != nil {
			s.log.WithError(err).Warn("viewstate: snapshot write failed")
		}
	}
	return projects, nil
}

func (s *Sources) Members(ctx context.Context) ([]Member, error) {
	members, _, err := swr.GetTyped(ctx, s.cache, "members", s.cfg.ReferenceTTL, s.fetcher.Members)
	return members, err
}

func (s *Sources) Offerings(ctx context.Context) ([]Offering, error) {
	offerings, _, err := swr.GetTyped(ctx, s.cache, "offerings", s.cfg.ReferenceTTL, s.fetcher.Offerings)
	return offerings, err
}

// StageDurations returns the lookup together with its load state. A failed
// fetch yields LoadFailed; the schedule predicate then skips every record
// rather than misclassifying.
func (s *Sources) StageDurations(ctx context.Context) (filter.StageDurations, filter.LoadState) {
	durations, _, err := swr.GetTyped(ctx, s.cache, "stageDurations", s.cfg.ReferenceTTL, s.fetcher.StageDurations)
	if err != nil {
		s.log.WithError(err).Warn("viewstate: stage duration lookup failed")
		return nil, filter.LoadFailed
	}
	return durations, filter.LoadReady
}

func (s *Sources) SavedViews(ctx context.Context) ([]SavedView, error) {
	views, _, err := swr.GetTyped(ctx, s.cache, "savedViews", s.cfg.CollectionTTL, s.fetcher.SavedViews)
	return views, err
}

func (s *Sources) Dashboards(ctx context.Context) ([]Dashboard, error) {
	dashboards, _, err := swr.GetTyped(ctx, s.cache, "dashboards", s.cfg.CollectionTTL, s.fetcher.Dashboards)
	return dashboards, err
}

func (s *Sources) Preference(ctx context.Context) (Preference, error) {
	pref, _, err := swr.GetTyped(ctx, s.cache, "preference", s.cfg.CollectionTTL, s.fetcher.Preference)
	return pref, err
}

func (s *Sources) ColumnPrefs(ctx context.Context) ([]string, error) {
	cols, _, err := swr.GetTyped(ctx, s.cache, "columnPrefs", s.cfg.CollectionTTL, s.fetcher.ColumnPrefs)
	return cols, err
}

// InvalidateColumnPrefs drops the cached column layout so dependent readers
// refetch after a write.
func (s *Sources) InvalidateColumnPrefs() {
	s.cache.Invalidate("columnPrefs")
}

// InvalidateSavedViews drops the cached view collection after a mutation.
func (s *Sources) InvalidateSavedViews() {
	s.cache.Invalidate("savedViews")
}

// InvalidateDashboards drops the cached dashboard collection after a
// mutation.
func (s *Sources) InvalidateDashboards() {
	s.cache.Invalidate("dashboards")
}

// AssigneesPresent returns the distinct assignee ids in the loaded set, in
// first-seen order. Derived from what the user can currently see, not from
// a separate query.
func AssigneesPresent(projects []filter.Project) []string {
	return distinct(projects, func(p filter.Project) string { return p.AssigneeID })
}

// OwnersPresent returns the distinct service-owner ids in the loaded set.
func OwnersPresent(projects []filter.Project) []string {
	return distinct(projects, func(p filter.Project) string { return p.OwnerID })
}

func distinct(projects []filter.Project, key func(filter.Project) string) []string {
	seen := make(map[string]struct{}, len(projects))
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
