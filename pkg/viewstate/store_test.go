package viewstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

func managerViewer() filter.Viewer {
	return filter.Viewer{ID: "u-1", Role: filter.RoleManager}
}

func someProjects(n int) []filter.Project {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	out := make([]filter.Project, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, filter.Project{
			ID:        string(rune('A' + i)),
			Name:      "Project " + string(rune('A'+i)),
			ServiceID: "svc-1",
			DueDate:   &due,
		})
	}
	return out
}

func TestStore_UpdateBundle_ResetsPage(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.projects = someProjects(10)
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.SetPerPage(3)
	fx.store.SetPage(2)
	require.Equal(t, 2, fx.store.Page())

	fx.store.UpdateBundle(func(b *filter.Bundle) {
		b.TaskAssignee = "u-7"
	})
	require.Equal(t, 1, fx.store.Page())
}

func TestStore_UpdateBundle_NoopKeepsPage(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.projects = someProjects(10)
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.SetPerPage(3)
	fx.store.SetPage(2)
	sets := fx.url.sets

	fx.store.UpdateBundle(func(b *filter.Bundle) {})
	require.Equal(t, 2, fx.store.Page(), "identical bundle must not reset pagination")
	require.Equal(t, sets, fx.url.sets, "identical bundle must not touch the URL")
}

func TestStore_UpdateBundle_ExportsScheduleStatus(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.store.UpdateBundle(func(b *filter.Bundle) {
		b.ScheduleStatus = filter.ScheduleBehind
	})
	require.Equal(t, "behind", fx.url.Query().Get(QueryScheduleStatus))

	fx.store.UpdateBundle(func(b *filter.Bundle) {
		b.ScheduleStatus = filter.ScheduleAll
	})
	require.Empty(t, fx.url.Query().Get(QueryScheduleStatus), "default status clears the parameter")
}

func TestStore_Visible_ClampsPageWhenCollectionShrinks(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.projects = someProjects(5)
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.SetPerPage(2)
	fx.store.SetPage(3)
	require.Equal(t, 3, fx.store.Page())

	// One big page now; page 3 no longer exists.
	fx.store.SetPerPage(5)
	res := fx.store.Visible()
	require.Equal(t, 1, res.TotalPages)
	require.Equal(t, 1, fx.store.Page())
	require.Len(t, res.Filtered, 5)
}

func TestStore_Refresh_UnauthenticatedFetchesNothing(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.store.SetAuthenticated(false)
	fx.fetcher.projects = someProjects(3)

	require.NoError(t, fx.store.Refresh(context.Background()))
	require.Zero(t, fx.fetcher.projectCalls)
	require.Empty(t, fx.store.Visible().Filtered)
}

func TestStore_SaveView_RequiresNameBeforeAnyWrite(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	_, err := fx.store.SaveView(context.Background(), "")
	require.ErrorIs(t, err, ErrNameRequired)
	require.Empty(t, fx.mutator.created)
}

func TestStore_SaveView_TracksCurrentView(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	require.NoError(t, fx.store.Refresh(context.Background()))

	view, err := fx.store.SaveView(context.Background(), "My overdue work")
	require.NoError(t, err)
	require.Equal(t, view.ID, fx.store.CurrentViewID())
	require.Empty(t, fx.store.CurrentDashboardID())
}

func TestStore_SaveView_ClearsDashboardState(t *testing.T) {
	t.Parallel()

	boardPayload, err := MarshalDashboardPayload(filter.DefaultBundle(), []Widget{
		{ID: "w-1", Title: "By type", Chart: ChartBar, GroupBy: GroupByProjectType},
	})
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.dashboards = []Dashboard{{ID: "d-1", Name: "Ops", Payload: boardPayload}}
	require.NoError(t, fx.store.Refresh(context.Background()))
	require.NoError(t, fx.store.LoadDashboard(context.Background(), "d-1"))
	require.Len(t, fx.store.Widgets(), 1)

	view, err := fx.store.SaveView(context.Background(), "Back to a list")
	require.NoError(t, err)
	require.Equal(t, view.ID, fx.store.CurrentViewID())
	require.Empty(t, fx.store.CurrentDashboardID())
	require.Empty(t, fx.store.Widgets(), "saving a view leaves no dashboard widgets behind")
}

func TestStore_LoadView_AppliesPayloadAndResetsPage(t *testing.T) {
	t.Parallel()

	saved := filter.DefaultBundle()
	saved.TaskAssignee = "u-9"
	saved.List.PageSize = 10
	payload, err := MarshalBundle(saved)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.projects = someProjects(5)
	fx.fetcher.views = []SavedView{{ID: "v-1", Name: "Mine", Mode: filter.ModeList, Payload: payload}}
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.SetPerPage(2)
	fx.store.SetPage(3)

	require.NoError(t, fx.store.LoadView(context.Background(), "v-1"))
	require.Equal(t, 1, fx.store.Page())
	require.Equal(t, "u-9", fx.store.Bundle().TaskAssignee)
	require.Equal(t, filter.ModeList, fx.store.Mode())
	require.Equal(t, "v-1", fx.store.CurrentViewID())

	pref, ok := fx.mutator.lastPref()
	require.True(t, ok, "loading a view records it as the default")
	require.Equal(t, "v-1", pref.DefaultViewID)
	require.Equal(t, string(filter.ModeList), pref.DefaultViewType)
}

func TestStore_LoadView_UnknownID(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	require.NoError(t, fx.store.Refresh(context.Background()))
	require.ErrorIs(t, fx.store.LoadView(context.Background(), "nope"), ErrViewNotFound)
}

func TestStore_LoadView_DowngradesScheduleWhenLookupFails(t *testing.T) {
	t.Parallel()

	saved := filter.DefaultBundle()
	saved.ScheduleStatus = filter.ScheduleBehind
	payload, err := MarshalBundle(saved)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.views = []SavedView{{ID: "v-1", Name: "Behind", Mode: filter.ModeList, Payload: payload}}
	fx.fetcher.durationsErr = context.DeadlineExceeded
	require.NoError(t, fx.store.Refresh(context.Background()))

	require.NoError(t, fx.store.LoadView(context.Background(), "v-1"))
	require.Equal(t, filter.ScheduleAll, fx.store.Bundle().ScheduleStatus)
	require.NotEmpty(t, fx.notifier.all(), "the downgrade is announced to the user")
}

func TestStore_LoadView_PersistsColumnLayout(t *testing.T) {
	t.Parallel()

	saved := filter.DefaultBundle()
	saved.List.Columns = []string{"name", "dueDate", "assignee"}
	payload, err := MarshalBundle(saved)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.views = []SavedView{{ID: "v-1", Name: "Wide", Mode: filter.ModeList, Payload: payload}}
	require.NoError(t, fx.store.Refresh(context.Background()))

	require.NoError(t, fx.store.LoadView(context.Background(), "v-1"))
	require.Len(t, fx.mutator.columns, 1)
	require.Equal(t, []string{"name", "dueDate", "assignee"}, fx.mutator.columns[0])
}

func TestStore_UpdateView_RequiresLoadedTarget(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	require.NoError(t, fx.store.Refresh(context.Background()))
	require.ErrorIs(t, fx.store.UpdateView(context.Background(), "missing"), ErrViewNotFound)
	require.Empty(t, fx.mutator.updated)
}

func TestStore_DeleteView_ClearsCurrentTracking(t *testing.T) {
	t.Parallel()

	payload, err := MarshalBundle(filter.DefaultBundle())
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.views = []SavedView{{ID: "v-1", Name: "Mine", Mode: filter.ModeList, Payload: payload}}
	require.NoError(t, fx.store.Refresh(context.Background()))
	require.NoError(t, fx.store.LoadView(context.Background(), "v-1"))

	require.NoError(t, fx.store.DeleteView(context.Background(), "v-1"))
	require.Empty(t, fx.store.CurrentViewID())
	require.Equal(t, []string{"v-1"}, fx.mutator.deletedViews)
}

func TestStore_LoadDashboard_MutuallyExclusiveWithView(t *testing.T) {
	t.Parallel()

	viewPayload, err := MarshalBundle(filter.DefaultBundle())
	require.NoError(t, err)
	boardPayload, err := MarshalDashboardPayload(filter.DefaultBundle(), []Widget{
		{ID: "w-1", Title: "By type", Chart: ChartBar, GroupBy: GroupByProjectType},
	})
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.views = []SavedView{{ID: "v-1", Name: "Mine", Mode: filter.ModeList, Payload: viewPayload}}
	fx.fetcher.dashboards = []Dashboard{{ID: "d-1", Name: "Ops", Payload: boardPayload}}
	require.NoError(t, fx.store.Refresh(context.Background()))

	require.NoError(t, fx.store.LoadView(context.Background(), "v-1"))
	require.NoError(t, fx.store.LoadDashboard(context.Background(), "d-1"))
	require.Equal(t, "d-1", fx.store.CurrentDashboardID())
	require.Empty(t, fx.store.CurrentViewID(), "at most one artifact is current")
	require.Equal(t, filter.ModeDashboard, fx.store.Mode())
	require.Len(t, fx.store.Widgets(), 1)

	require.NoError(t, fx.store.LoadView(context.Background(), "v-1"))
	require.Equal(t, "v-1", fx.store.CurrentViewID())
	require.Empty(t, fx.store.CurrentDashboardID())
	require.Empty(t, fx.store.Widgets())
}

func TestStore_LoadDashboard_RepairsLegacyServiceName(t *testing.T) {
	t.Parallel()

	legacy := filter.DefaultBundle()
	legacy.Service = "Payroll"
	payload, err := MarshalDashboardPayload(legacy, nil)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.offerings = []Offering{{ID: "svc-9", Name: "Payroll"}}
	fx.fetcher.dashboards = []Dashboard{{ID: "d-1", Name: "Legacy", Payload: payload}}
	require.NoError(t, fx.store.Refresh(context.Background()))

	require.NoError(t, fx.store.LoadDashboard(context.Background(), "d-1"))
	require.Equal(t, "svc-9", fx.store.Bundle().Service)
}

func TestStore_LoadDashboard_UnresolvableServiceFallsBackToAll(t *testing.T) {
	t.Parallel()

	legacy := filter.DefaultBundle()
	legacy.Service = "Dissolved Dept"
	payload, err := MarshalDashboardPayload(legacy, nil)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.offerings = []Offering{{ID: "svc-9", Name: "Payroll"}}
	fx.fetcher.dashboards = []Dashboard{{ID: "d-1", Name: "Legacy", Payload: payload}}
	require.NoError(t, fx.store.Refresh(context.Background()))

	require.NoError(t, fx.store.LoadDashboard(context.Background(), "d-1"))
	require.Equal(t, filter.All, fx.store.Bundle().Service)
}

func TestStore_DeleteDashboard_FallsBackToList(t *testing.T) {
	t.Parallel()

	payload, err := MarshalDashboardPayload(filter.DefaultBundle(), nil)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.dashboards = []Dashboard{{ID: "d-1", Name: "Ops", Payload: payload}}
	require.NoError(t, fx.store.Refresh(context.Background()))
	require.NoError(t, fx.store.LoadDashboard(context.Background(), "d-1"))

	require.NoError(t, fx.store.DeleteDashboard(context.Background(), "d-1"))
	require.Empty(t, fx.store.CurrentDashboardID())
	require.Equal(t, filter.ModeList, fx.store.Mode())
	require.Equal(t, []string{"d-1"}, fx.mutator.deletedBoards)
}

func TestStore_RestoreDefault_WaitsForAllCollections(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.pref = Preference{DefaultViewType: string(filter.ModeKanban)}

	// Nothing is loaded yet; restoration must not fire.
	fx.store.RestoreDefault(context.Background())
	require.Equal(t, filter.ModeList, fx.store.Mode())

	require.NoError(t, fx.store.Refresh(context.Background()))
	fx.store.RestoreDefault(context.Background())
	require.Equal(t, filter.ModeKanban, fx.store.Mode())
}

func TestStore_RestoreDefault_RunsOnce(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.pref = Preference{DefaultViewType: string(filter.ModeKanban)}
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.RestoreDefault(context.Background())
	require.Equal(t, filter.ModeKanban, fx.store.Mode())

	fx.store.SetMode(filter.ModeCalendar)
	fx.store.RestoreDefault(context.Background())
	require.Equal(t, filter.ModeCalendar, fx.store.Mode(), "restoration is one-shot")
}

func TestStore_RestoreDefault_URLDeepLinkWins(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.pref = Preference{DefaultViewType: string(filter.ModeKanban)}
	fx.url.values.Set(QueryTaskAssignee, "u-3")
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.RestoreDefault(context.Background())
	require.Equal(t, filter.ModeList, fx.store.Mode(), "an explicit link overrides the stored default")
}

func TestStore_RestoreDefault_LoadsSavedView(t *testing.T) {
	t.Parallel()

	saved := filter.DefaultBundle()
	saved.ServiceOwner = "u-2"
	payload, err := MarshalBundle(saved)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.views = []SavedView{{ID: "v-1", Name: "Mine", Mode: filter.ModeKanban, Payload: payload}}
	fx.fetcher.pref = Preference{DefaultViewType: string(filter.ModeKanban), DefaultViewID: "v-1"}
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.RestoreDefault(context.Background())
	require.Equal(t, "v-1", fx.store.CurrentViewID())
	require.Equal(t, filter.ModeKanban, fx.store.Mode())
	require.Equal(t, "u-2", fx.store.Bundle().ServiceOwner)
}

func TestStore_RestoreDefault_LoadsDashboard(t *testing.T) {
	t.Parallel()

	payload, err := MarshalDashboardPayload(filter.DefaultBundle(), nil)
	require.NoError(t, err)

	fx := newStoreFixture(managerViewer())
	fx.fetcher.dashboards = []Dashboard{{ID: "d-1", Name: "Ops", Payload: payload}}
	fx.fetcher.pref = Preference{DefaultViewType: string(filter.ModeDashboard), DefaultViewID: "d-1"}
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.RestoreDefault(context.Background())
	require.Equal(t, "d-1", fx.store.CurrentDashboardID())
	require.Equal(t, filter.ModeDashboard, fx.store.Mode())
}

func TestStore_RestoreDefault_DeletedArtifactFallsThrough(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.pref = Preference{DefaultViewType: string(filter.ModeList), DefaultViewID: "gone"}
	require.NoError(t, fx.store.Refresh(context.Background()))

	fx.store.RestoreDefault(context.Background())
	require.Empty(t, fx.store.CurrentViewID())
	require.Equal(t, filter.ModeList, fx.store.Mode())
}

func TestStore_ImportURL_ResetsPage(t *testing.T) {
	t.Parallel()

	fx := newStoreFixture(managerViewer())
	fx.fetcher.projects = someProjects(10)
	require.NoError(t, fx.store.Refresh(context.Background()))
	fx.store.SetPerPage(3)
	fx.store.SetPage(2)

	fx.url.values.Set(QueryTaskAssignee, "u-4")
	fx.store.ImportURL()
	require.Equal(t, "u-4", fx.store.Bundle().TaskAssignee)
	require.Equal(t, 1, fx.store.Page())
}
