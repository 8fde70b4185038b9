package viewstate

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ledgerflow/practice-sdk/pkg/serrors"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

var (
	ErrNameRequired      = serrors.NewFieldRequiredError("name")
	ErrViewNotFound      = serrors.NewNotFoundError("saved view")
	ErrDashboardNotFound = serrors.NewNotFoundError("dashboard")
)

// Mutator is the write contract against the server. Callers invalidate the
// affected read-side caches after a successful write.
type Mutator interface {
	CreateView(ctx context.Context, name string, mode filter.PresentationMode, payload string) (SavedView, error)
	UpdateView(ctx context.Context, view SavedView) error
	DeleteView(ctx context.Context, id string) error
	DeleteDashboard(ctx context.Context, id string) error
	WritePreference(ctx context.Context, pref Preference) error
	WriteColumnPrefs(ctx context.Context, columns []string) error
}

// Notifier is the single uniform channel for user-facing notices.
type Notifier interface {
	Notify(message string)
}

// StoreConfig wires the store's ports. URL and Notifier may be nil for
// headless use.
type StoreConfig struct {
	Sources  *Sources
	Mutator  Mutator
	URL      URLPort
	Notifier Notifier
	Logger   *logrus.Logger
	Viewer   filter.Viewer

	// Detach overrides the fire-and-forget policy for preference writes.
	// Tests substitute a synchronous version; production leaves it nil.
	Detach func(log *logrus.Logger, op string, fn func() error)
}

// Store owns every primitive state slice of the projects page and wires the
// engine, sources, URL sync and persistence together. All methods are safe
// for use from a single goroutine; the store itself serializes access.
type Store struct {
	mu sync.Mutex

	engine   Engine
	sources  *Sources
	mutator  Mutator
	url      URLPort
	notifier Notifier
	log      *logrus.Logger
	detach   func(log *logrus.Logger, op string, fn func() error)

	viewer        filter.Viewer
	authenticated bool

	bundle  filter.Bundle
	mode    filter.PresentationMode
	page    int
	perPage int

	currentViewID      string
	currentDashboardID string
	widgets            []Widget

	projects       []filter.Project
	syncing        bool
	durations      filter.StageDurations
	durationsState filter.LoadState

	views      []SavedView
	dashboards []Dashboard
	pref       Preference

	viewsLoaded      bool
	dashboardsLoaded bool
	prefLoaded       bool
	restored         bool
}

func NewStore(cfg StoreConfig) *Store {
	detach := cfg.Detach
	if detach == nil {
		detach = bestEffort
	}
	bundle := filter.DefaultBundle()
	return &Store{
		engine:   NewEngine(),
		sources:  cfg.Sources,
		mutator:  cfg.Mutator,
		url:      cfg.URL,
		notifier: cfg.Notifier,
		log:      cfg.Logger,
		detach:   detach,
		viewer:   cfg.Viewer,
		bundle:   bundle,
		mode:     filter.ModeList,
		page:     1,
		perPage:  bundle.List.PageSize,
	}
}

func (s *Store) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}

// --- primitive state access -------------------------------------------------

func (s *Store) Bundle() filter.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.Clone()
}

func (s *Store) Mode() filter.PresentationMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Store) CurrentViewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentViewID
}

func (s *Store) CurrentDashboardID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentDashboardID
}

func (s *Store) Widgets() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Widget(nil), s.widgets...)
}

func (s *Store) SetAuthenticated(ok bool) {
	s.mu.Lock()
	s.authenticated = ok
	s.mu.Unlock()
}

func (s *Store) SetMode(mode filter.PresentationMode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

func (s *Store) SetPage(page int) {
	s.mu.Lock()
	s.page = ClampPage(page, s.totalPagesLocked())
	s.mu.Unlock()
}

func (s *Store) SetPerPage(perPage int) {
	s.mu.Lock()
	if perPage > 0 {
		s.perPage = perPage
	}
	s.mu.Unlock()
}

// UpdateBundle applies mutate to a copy of the bundle. When the bundle
// actually changes, the page resets to 1 and the schedule status is
// mirrored into the URL.
func (s *Store) UpdateBundle(mutate func(*filter.Bundle)) {
	s.mu.Lock()
	next := s.bundle.Clone()
	mutate(&next)
	if next.Equal(s.bundle) {
		s.mu.Unlock()
		return
	}
	s.bundle = next
	s.page = 1
	status := next.ScheduleStatus
	s.mu.Unlock()

	ExportScheduleStatus(s.url, status)
}

// ImportURL applies whitelisted query parameters to the live bundle.
func (s *Store) ImportURL() {
	if s.url == nil {
		return
	}
	values := s.url.Query()
	s.mu.Lock()
	next := s.bundle.Clone()
	if ImportFromQuery(values, &next) {
		s.bundle = next
		s.page = 1
	}
	s.mu.Unlock()
}

// --- data loading -----------------------------------------------------------

// Refresh pulls every read the current state needs. Gated on
// authentication: an unauthenticated store never fetches.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if !s.authenticated {
		s.mu.Unlock()
		return nil
	}
	query := ProjectQuery{
		IncludeArchived: s.bundle.ShowArchived && s.mode != filter.ModeKanban,
		ServiceDueDate:  s.bundle.ServiceDueDate,
	}
	needDurations := s.bundle.ScheduleStatus != filter.ScheduleAll
	loadingView := s.currentViewID != ""
	s.mu.Unlock()

	result, err := s.sources.Projects(ctx, query, loadingView)
	if err != nil {
		return err
	}

	var durations filter.StageDurations
	state := filter.LoadPending
	if needDurations {
		durations, state = s.sources.StageDurations(ctx)
	}

	views, err := s.sources.SavedViews(ctx)
	if err != nil {
		return err
	}
	dashboards, err := s.sources.Dashboards(ctx)
	if err != nil {
		return err
	}
	pref, err := s.sources.Preference(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.projects = result.Projects
	s.syncing = result.Syncing
	if needDurations {
		s.durations = durations
		s.durationsState = state
	}
	s.views = views
	s.viewsLoaded = true
	s.dashboards = dashboards
	s.dashboardsLoaded = true
	s.pref = pref
	s.prefLoaded = true
	s.mu.Unlock()
	return nil
}

// Syncing reports whether a cached snapshot is on screen while revalidation
// is still in flight.
func (s *Store) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncing
}

// --- projection ---------------------------------------------------------

// Visible recomputes the filtered and paginated projection. The page clamp
// invariant is enforced here: a shrinking collection can never strand the
// user past the last page.
func (s *Store) Visible() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.applyLocked()
	clamped := ClampPage(s.page, res.TotalPages)
	if clamped != s.page {
		s.page = clamped
		res = s.applyLocked()
	}
	return res
}

func (s *Store) applyLocked() Result {
	return s.engine.Apply(s.projects, s.bundle, EngineContext{
		Mode:           s.mode,
		Viewer:         s.viewer,
		Durations:      s.durations,
		DurationsState: s.durationsState,
	}, s.page, s.perPage)
}

func (s *Store) totalPagesLocked() int {
	return s.applyLocked().TotalPages
}

// ActiveFilterCount is the badge count of non-default dimensions.
func (s *Store) ActiveFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ActiveFilterCount(s.bundle, DefaultApplicability(s.viewer))
}

// --- saved views ----------------------------------------------------------

// SaveView serializes the live bundle under a new name. Validation happens
// before any network round-trip.
func (s *Store) SaveView(ctx context.Context, name string) (SavedView, error) {
	if name == "" {
		return SavedView{}, ErrNameRequired
	}
	s.mu.Lock()
	payload, err := MarshalBundle(s.bundle)
	mode := s.mode
	s.mu.Unlock()
	if err != nil {
		return SavedView{}, err
	}

	view, err := s.mutator.CreateView(ctx, name, mode, payload)
	if err != nil {
		return SavedView{}, err
	}
	s.sources.InvalidateSavedViews()

	s.mu.Lock()
	s.views = append(s.views, view)
	s.currentViewID = view.ID
	s.currentDashboardID = ""
	s.widgets = nil
	s.mu.Unlock()
	return view, nil
}

// UpdateView overwrites an existing view with the live bundle. The target
// must be present in the loaded collection.
func (s *Store) UpdateView(ctx context.Context, id string) error {
	s.mu.Lock()
	var existing *SavedView
	for i := range s.views {
		if s.views[i].ID == id {
			existing = &s.views[i]
			break
		}
	}
	if existing == nil {
		s.mu.Unlock()
		return ErrViewNotFound
	}
	payload, err := MarshalBundle(s.bundle)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	updated := *existing
	updated.Payload = payload
	updated.Mode = s.mode
	s.mu.Unlock()

	if err := s.mutator.UpdateView(ctx, updated); err != nil {
		return err
	}
	s.sources.InvalidateSavedViews()

	s.mu.Lock()
	for i := range s.views {
		if s.views[i].ID == id {
			s.views[i] = updated
		}
	}
	s.mu.Unlock()
	return nil
}

// LoadView copies a saved view's bundle into live state. Loading is
// non-destructive: the stored view is never mutated. When the payload
// demands the stage-duration lookup and that lookup cannot be loaded, the
// schedule filter downgrades to "all" with a user-visible notice — a filter
// that cannot be evaluated is never applied.
func (s *Store) LoadView(ctx context.Context, id string) error {
	s.mu.Lock()
	var view *SavedView
	for i := range s.views {
		if s.views[i].ID == id {
			view = &s.views[i]
			break
		}
	}
	s.mu.Unlock()
	if view == nil {
		return ErrViewNotFound
	}

	bundle, err := UnmarshalBundle(view.Payload)
	if err != nil {
		return err
	}

	if bundle.ScheduleStatus != filter.ScheduleAll {
		durations, state := s.sources.StageDurations(ctx)
		if state != filter.LoadReady {
			bundle.ScheduleStatus = filter.ScheduleAll
			s.notify("Schedule data could not be loaded; the schedule filter was reset.")
		} else {
			s.mu.Lock()
			s.durations = durations
			s.durationsState = state
			s.mu.Unlock()
		}
	}

	if len(bundle.List.Columns) > 0 {
		// Column layout round-trips through the preference store so every
		// consumer of the layout refetches it.
		if err := s.mutator.WriteColumnPrefs(ctx, bundle.List.Columns); err != nil {
			return err
		}
		s.sources.InvalidateColumnPrefs()
	}

	s.mu.Lock()
	s.bundle = bundle
	s.mode = view.Mode
	if view.Mode == filter.ModeList {
		// The payload's pagination is ignored on load.
		s.page = 1
	}
	if bundle.List.PageSize > 0 {
		s.perPage = bundle.List.PageSize
	}
	s.currentViewID = view.ID
	s.currentDashboardID = ""
	s.widgets = nil
	mode := s.mode
	status := bundle.ScheduleStatus
	s.mu.Unlock()

	ExportScheduleStatus(s.url, status)
	s.detach(s.log, "record default view", func() error {
		return s.mutator.WritePreference(ctx, Preference{
			DefaultViewType: string(mode),
			DefaultViewID:   id,
		})
	})
	return nil
}

// DeleteView removes a saved view; deleting the current one clears
// current-view tracking.
func (s *Store) DeleteView(ctx context.Context, id string) error {
	if err := s.mutator.DeleteView(ctx, id); err != nil {
		return err
	}
	s.sources.InvalidateSavedViews()

	s.mu.Lock()
	for i := range s.views {
		if s.views[i].ID == id {
			s.views = append(s.views[:i], s.views[i+1:]...)
			break
		}
	}
	if s.currentViewID == id {
		s.currentViewID = ""
	}
	s.mu.Unlock()
	return nil
}

// --- dashboards -------------------------------------------------------------

// LoadDashboard copies a dashboard's bundle and widgets into live state.
// Legacy payloads stored the service filter as a display name; those are
// repaired by name lookup against the loaded offerings, falling back to
// "all" with a developer-facing warning when nothing matches.
func (s *Store) LoadDashboard(ctx context.Context, id string) error {
	s.mu.Lock()
	var dashboard *Dashboard
	for i := range s.dashboards {
		if s.dashboards[i].ID == id {
			dashboard = &s.dashboards[i]
			break
		}
	}
	s.mu.Unlock()
	if dashboard == nil {
		return ErrDashboardNotFound
	}

	bundle, widgets, err := UnmarshalDashboardPayload(dashboard.Payload)
	if err != nil {
		return err
	}

	if bundle.Service != filter.All && bundle.Service != "" {
		offerings, err := s.sources.Offerings(ctx)
		if err != nil {
			return err
		}
		bundle.Service = resolveService(bundle.Service, offerings, s.log)
	}

	s.mu.Lock()
	s.bundle = bundle
	s.mode = filter.ModeDashboard
	s.widgets = widgets
	s.currentDashboardID = dashboard.ID
	s.currentViewID = ""
	s.mu.Unlock()

	s.detach(s.log, "record default dashboard", func() error {
		return s.mutator.WritePreference(ctx, Preference{
			DefaultViewType: string(filter.ModeDashboard),
			DefaultViewID:   id,
		})
	})
	return nil
}

// resolveService maps a stored service reference to a stable offering id.
// Ids pass through; legacy display names resolve by lookup; unresolvable
// references degrade to the sentinel rather than crash.
func resolveService(stored string, offerings []Offering, log *logrus.Logger) string {
	for _, o := range offerings {
		if o.ID == stored {
			return stored
		}
	}
	for _, o := range offerings {
		if o.Name == stored {
			return o.ID
		}
	}
	if log != nil {
		log.Warnf("viewstate: dashboard service filter %q matches no offering, resetting to %q", stored, filter.All)
	}
	return filter.All
}

// DeleteDashboard removes a dashboard; deleting the current one clears
// tracking and falls the presentation mode back to list.
func (s *Store) DeleteDashboard(ctx context.Context, id string) error {
	if err := s.mutator.DeleteDashboard(ctx, id); err != nil {
		return err
	}
	s.sources.InvalidateDashboards()

	s.mu.Lock()
	for i := range s.dashboards {
		if s.dashboards[i].ID == id {
			s.dashboards = append(s.dashboards[:i], s.dashboards[i+1:]...)
			break
		}
	}
	if s.currentDashboardID == id {
		s.currentDashboardID = ""
		s.widgets = nil
		s.mode = filter.ModeList
	}
	s.mu.Unlock()
	return nil
}

// --- default restoration ----------------------------------------------------

// RestoreDefault applies the user's last-viewed default exactly once per
// store, after authentication and the view/dashboard/preference collections
// have all loaded. Running against partially loaded collections would
// silently miss the target and fall through to a bare default, so the gate
// is strict. An explicit deep link (any importable URL filter) wins over
// the stored preference.
func (s *Store) RestoreDefault(ctx context.Context) {
	s.mu.Lock()
	ready := s.authenticated && s.viewsLoaded && s.dashboardsLoaded && s.prefLoaded
	if !ready || s.restored {
		s.mu.Unlock()
		return
	}
	s.restored = true
	pref := s.pref
	s.mu.Unlock()

	if s.url != nil && HasFilterParams(s.url.Query()) {
		return
	}
	if pref.DefaultViewType == "" {
		return
	}

	mode := filter.PresentationMode(pref.DefaultViewType)
	if pref.DefaultViewID == "" {
		if mode.IsValid() && mode != filter.ModeDashboard {
			s.SetMode(mode)
		}
		return
	}

	// A recorded id may point at an artifact deleted since; fall through
	// silently when it cannot be found.
	if mode == filter.ModeDashboard {
		_ = s.LoadDashboard(ctx, pref.DefaultViewID)
		return
	}
	_ = s.LoadView(ctx, pref.DefaultViewID)
}
