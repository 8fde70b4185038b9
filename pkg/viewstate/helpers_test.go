package viewstate

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ledgerflow/practice-sdk/pkg/logging"
	"github.com/ledgerflow/practice-sdk/pkg/swr"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
	"github.com/sirupsen/logrus"
)

type fakeFetcher struct {
	mu sync.Mutex

	projects     []filter.Project
	projectCalls int32
	members      []Member
	offerings    []Offering
	durations    filter.StageDurations
	durationsErr error
	views        []SavedView
	dashboards   []Dashboard
	pref         Preference
	columns      []string
}

func (f *fakeFetcher) Projects(ctx context.Context, q ProjectQuery) ([]filter.Project, error) {
	atomic.AddInt32(&f.projectCalls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projects, nil
}

func (f *fakeFetcher) Members(ctx context.Context) ([]Member, error)     { return f.members, nil }
func (f *fakeFetcher) Offerings(ctx context.Context) ([]Offering, error) { return f.offerings, nil }

func (f *fakeFetcher) StageDurations(ctx context.Context) (filter.StageDurations, error) {
	if f.durationsErr != nil {
		return nil, f.durationsErr
	}
	return f.durations, nil
}

func (f *fakeFetcher) SavedViews(ctx context.Context) ([]SavedView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views, nil
}

func (f *fakeFetcher) Dashboards(ctx context.Context) ([]Dashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dashboards, nil
}

func (f *fakeFetcher) Preference(ctx context.Context) (Preference, error) { return f.pref, nil }
func (f *fakeFetcher) ColumnPrefs(ctx context.Context) ([]string, error)  { return f.columns, nil }

type fakeSnapshots struct {
	mu     sync.Mutex
	data   map[string]Snapshot
	writes int
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{data: map[string]Snapshot{}}
}

func (s *fakeSnapshots) Read(ctx context.Context, key string) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.data[key]
	return snap, ok, nil
}

func (s *fakeSnapshots) Write(ctx context.Context, key string, projects []filter.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = Snapshot{Projects: projects}
	s.writes++
	return nil
}

type fakeMutator struct {
	mu sync.Mutex

	created       []SavedView
	updated       []SavedView
	deletedViews  []string
	deletedBoards []string
	prefs         []Preference
	prefErr       error
	columns       [][]string
	nextID        int
}

func (m *fakeMutator) CreateView(ctx context.Context, name string, mode filter.PresentationMode, payload string) (SavedView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	view := SavedView{ID: string(rune('a' + m.nextID - 1)), Name: name, Mode: mode, Payload: payload}
	m.created = append(m.created, view)
	return view, nil
}

func (m *fakeMutator) UpdateView(ctx context.Context, view SavedView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, view)
	return nil
}

func (m *fakeMutator) DeleteView(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedViews = append(m.deletedViews, id)
	return nil
}

func (m *fakeMutator) DeleteDashboard(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedBoards = append(m.deletedBoards, id)
	return nil
}

func (m *fakeMutator) WritePreference(ctx context.Context, pref Preference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefErr != nil {
		return m.prefErr
	}
	m.prefs = append(m.prefs, pref)
	return nil
}

func (m *fakeMutator) WriteColumnPrefs(ctx context.Context, columns []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.columns = append(m.columns, columns)
	return nil
}

func (m *fakeMutator) lastPref() (Preference, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prefs) == 0 {
		return Preference{}, false
	}
	return m.prefs[len(m.prefs)-1], true
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *fakeNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// syncDetach makes best-effort writes synchronous so tests can observe them
// deterministically.
func syncDetach(log *logrus.Logger, op string, fn func() error) {
	_ = fn()
}

type storeFixture struct {
	store    *Store
	fetcher  *fakeFetcher
	snaps    *fakeSnapshots
	mutator  *fakeMutator
	notifier *fakeNotifier
	url      *fakeURL
}

func newStoreFixture(viewer filter.Viewer) *storeFixture {
	fetcher := &fakeFetcher{}
	snaps := newFakeSnapshots()
	mutator := &fakeMutator{}
	notifier := &fakeNotifier{}
	port := newFakeURL()
	log := logging.SilentLogger()
	sources := NewSources(fetcher, snaps, swr.New(log), SourcesConfig{}, log)

	store := NewStore(StoreConfig{
		Sources:  sources,
		Mutator:  mutator,
		URL:      port,
		Notifier: notifier,
		Logger:   log,
		Viewer:   viewer,
		Detach:   syncDetach,
	})
	store.SetAuthenticated(true)
	return &storeFixture{
		store:    store,
		fetcher:  fetcher,
		snaps:    snaps,
		mutator:  mutator,
		notifier: notifier,
		url:      port,
	}
}
