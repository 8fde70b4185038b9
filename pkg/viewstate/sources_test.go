package viewstate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/pkg/logging"
	"github.com/ledgerflow/practice-sdk/pkg/swr"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

func newSources(fetcher *fakeFetcher, snaps *fakeSnapshots) *Sources {
	log := logging.SilentLogger()
	return NewSources(fetcher, snaps, swr.New(log), SourcesConfig{}, log)
}

func TestSources_Projects_ColdFetchWritesSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{projects: someProjects(3)}
	snaps := newFakeSnapshots()
	sources := newSources(fetcher, snaps)

	res, err := sources.Projects(context.Background(), ProjectQuery{}, false)
	require.NoError(t, err)
	require.False(t, res.FromCache)
	require.False(t, res.Syncing)
	require.Len(t, res.Projects, 3)

	snaps.mu.Lock()
	writes := snaps.writes
	snaps.mu.Unlock()
	require.Equal(t, 1, writes)
}

func TestSources_Projects_SnapshotServedThenRevalidated(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{projects: someProjects(5)}
	snaps := newFakeSnapshots()
	snaps.data["projects|archived=0"] = Snapshot{
		Projects: someProjects(2),
		CachedAt: time.Now().Add(-time.Minute),
		Stale:    true,
	}
	sources := newSources(fetcher, snaps)

	res, err := sources.Projects(context.Background(), ProjectQuery{}, false)
	require.NoError(t, err)
	require.True(t, res.FromCache)
	require.True(t, res.Syncing)
	require.Len(t, res.Projects, 2, "the snapshot is shown as-is while revalidation runs")

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fetcher.projectCalls) == 1
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		snaps.mu.Lock()
		defer snaps.mu.Unlock()
		return len(snaps.data["projects|archived=0"].Projects) == 5
	}, time.Second, 5*time.Millisecond, "revalidation replaces the snapshot wholesale")

	// Phase 3: once the revalidated value is in the read-through cache,
	// reads come back fresh and the syncing indicator drops.
	require.Eventually(t, func() bool {
		res, err := sources.Projects(context.Background(), ProjectQuery{}, false)
		require.NoError(t, err)
		return !res.FromCache && !res.Syncing && len(res.Projects) == 5
	}, time.Second, 5*time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&fetcher.projectCalls),
		"the revalidated value serves later reads without refetching")
}

func TestSources_Projects_FreshSnapshotServedWithoutRefetch(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{projects: someProjects(5)}
	snaps := newFakeSnapshots()
	snaps.data["projects|archived=0"] = Snapshot{
		Projects: someProjects(2),
		CachedAt: time.Now(),
	}
	sources := newSources(fetcher, snaps)

	res, err := sources.Projects(context.Background(), ProjectQuery{}, false)
	require.NoError(t, err)
	require.True(t, res.FromCache)
	require.False(t, res.Syncing, "a snapshot within its freshness window needs no revalidation")
	require.Zero(t, atomic.LoadInt32(&fetcher.projectCalls))
}

func TestSources_Projects_RepeatedStaleReadsFetchOnce(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{projects: someProjects(5)}
	snaps := newFakeSnapshots()
	snaps.data["projects|archived=0"] = Snapshot{
		Projects: someProjects(2),
		CachedAt: time.Now().Add(-time.Hour),
		Stale:    true,
	}
	sources := newSources(fetcher, snaps)

	first, err := sources.Projects(context.Background(), ProjectQuery{}, false)
	require.NoError(t, err)
	require.True(t, first.FromCache)
	require.True(t, first.Syncing)

	require.Eventually(t, func() bool {
		_, warm := sources.cache.Peek((ProjectQuery{}).Key())
		return warm
	}, time.Second, 5*time.Millisecond, "revalidation must land in the read-through cache")

	for i := 0; i < 9; i++ {
		res, err := sources.Projects(context.Background(), ProjectQuery{}, false)
		require.NoError(t, err)
		require.False(t, res.FromCache)
		require.Len(t, res.Projects, 5)
	}
	// Repeated reads of the same key ride the warm entry; they must not fan
	// out into one fetch each.
	require.EqualValues(t, 1, atomic.LoadInt32(&fetcher.projectCalls))
}

func TestSources_Projects_IneligibleQueryBypassesSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{projects: someProjects(4)}
	snaps := newFakeSnapshots()
	sources := newSources(fetcher, snaps)

	q := ProjectQuery{ServiceDueDate: filter.DateOverdue}
	require.False(t, q.CacheEligible())

	res, err := sources.Projects(context.Background(), q, false)
	require.NoError(t, err)
	require.False(t, res.FromCache)
	require.Len(t, res.Projects, 4)

	snaps.mu.Lock()
	writes := snaps.writes
	snaps.mu.Unlock()
	require.Zero(t, writes, "exotic parameter combinations never populate the coarse cache")
}

func TestSources_Projects_DistinctQueriesCacheDistinctly(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{projects: someProjects(2)}
	sources := newSources(fetcher, newFakeSnapshots())

	_, err := sources.Projects(context.Background(), ProjectQuery{}, false)
	require.NoError(t, err)
	_, err = sources.Projects(context.Background(), ProjectQuery{IncludeArchived: true}, false)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&fetcher.projectCalls))

	// Repeating a combination within its staleness window is a cache hit.
	_, err = sources.Projects(context.Background(), ProjectQuery{IncludeArchived: true}, false)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&fetcher.projectCalls))
}

func TestSources_StageDurations_FailureYieldsLoadFailed(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{durationsErr: errors.New("upstream down")}
	sources := newSources(fetcher, newFakeSnapshots())

	durations, state := sources.StageDurations(context.Background())
	require.Nil(t, durations)
	require.Equal(t, filter.LoadFailed, state)
}

func TestSources_StageDurations_SuccessYieldsLoadReady(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{durations: filter.StageDurations{
		{ProjectType: "vat", StageName: "review"}: 48,
	}}
	sources := newSources(fetcher, newFakeSnapshots())

	durations, state := sources.StageDurations(context.Background())
	require.Equal(t, filter.LoadReady, state)
	require.Len(t, durations, 1)
}

func TestSources_InvalidateSavedViews_Refetches(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{views: []SavedView{{ID: "v-1", Name: "Mine"}}}
	sources := newSources(fetcher, newFakeSnapshots())

	views, err := sources.SavedViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	fetcher.mu.Lock()
	fetcher.views = append(fetcher.views, SavedView{ID: "v-2", Name: "Theirs"})
	fetcher.mu.Unlock()

	views, err = sources.SavedViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1, "within the staleness window the cached collection is served")

	sources.InvalidateSavedViews()
	views, err = sources.SavedViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
}

func TestAssigneesPresent_DistinctFirstSeenOrder(t *testing.T) {
	t.Parallel()

	projects := []filter.Project{
		{ID: "1", AssigneeID: "u-2", OwnerID: "u-1"},
		{ID: "2", AssigneeID: "u-1"},
		{ID: "3", AssigneeID: "u-2", OwnerID: "u-3"},
		{ID: "4"},
	}
	require.Equal(t, []string{"u-2", "u-1"}, AssigneesPresent(projects))
	require.Equal(t, []string{"u-1", "u-3"}, OwnersPresent(projects))
}
