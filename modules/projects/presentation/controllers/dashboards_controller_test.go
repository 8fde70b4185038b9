package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/dashboard"
	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/project"
	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/stage"
	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/eventbus"
	"github.com/ledgerflow/practice-sdk/pkg/logging"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

type stubDashboardRepo struct {
	boards map[uuid.UUID]*dashboard.Dashboard
}

func (r *stubDashboardRepo) GetVisibleToOwner(ctx context.Context, ownerID uuid.UUID) ([]*dashboard.Dashboard, error) {
	out := make([]*dashboard.Dashboard, 0, len(r.boards))
	for _, d := range r.boards {
		out = append(out, d)
	}
	return out, nil
}

func (r *stubDashboardRepo) GetByID(ctx context.Context, id uuid.UUID) (*dashboard.Dashboard, error) {
	d, ok := r.boards[id]
	if !ok {
		return nil, context.Canceled
	}
	return d, nil
}

func (r *stubDashboardRepo) Create(ctx context.Context, data *dashboard.Dashboard) (*dashboard.Dashboard, error) {
	r.boards[data.ID] = data
	return data, nil
}

func (r *stubDashboardRepo) Update(ctx context.Context, data *dashboard.Dashboard) (*dashboard.Dashboard, error) {
	r.boards[data.ID] = data
	return data, nil
}

func (r *stubDashboardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.boards, id)
	return nil
}

type stubProjectRepo struct {
	projects []project.Project
}

func (r *stubProjectRepo) Count(ctx context.Context, params *project.FindParams) (int64, error) {
	return int64(len(r.projects)), nil
}

func (r *stubProjectRepo) GetAll(ctx context.Context, params *project.FindParams) ([]project.Project, error) {
	return r.projects, nil
}

func (r *stubProjectRepo) GetPaginated(ctx context.Context, params *project.FindParams) ([]project.Project, error) {
	return r.projects, nil
}

func (r *stubProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	return nil, context.Canceled
}

func (r *stubProjectRepo) Create(ctx context.Context, data project.Project) (project.Project, error) {
	return data, nil
}

func (r *stubProjectRepo) Update(ctx context.Context, data project.Project) (project.Project, error) {
	return data, nil
}

func (r *stubProjectRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubStageRepo struct {
	rules []stage.DurationRule
	calls int
}

func (r *stubStageRepo) GetAll(ctx context.Context) ([]stage.Stage, error) { return nil, nil }

func (r *stubStageRepo) GetDurationRules(ctx context.Context) ([]stage.DurationRule, error) {
	r.calls++
	return r.rules, nil
}

func (r *stubStageRepo) UpsertDurationRule(ctx context.Context, rule stage.DurationRule) error {
	return nil
}

func newDashboardsFixture(t *testing.T, boards *stubDashboardRepo, projects *stubProjectRepo, stages *stubStageRepo) *mux.Router {
	t.Helper()
	log := logging.ConsoleLogger(logrus.ErrorLevel)
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})
	app.RegisterServices(
		services.NewDashboardService(boards),
		services.NewProjectService(projects, stages, nil, app.EventBus()),
	)
	router := mux.NewRouter()
	NewDashboardsController(app).Register(router)
	return router
}

func TestDashboardsController_WidgetData_BehindScheduleBundleLoadsDurations(t *testing.T) {
	t.Parallel()

	bundle := filter.DefaultBundle()
	bundle.ScheduleStatus = filter.ScheduleBehind
	payload, err := viewstate.MarshalDashboardPayload(bundle, []viewstate.Widget{
		{ID: "w-1", Title: "Behind by type", Chart: viewstate.ChartBar, GroupBy: viewstate.GroupByProjectType},
	})
	require.NoError(t, err)

	board := dashboard.New(uuid.New(), "Workload", payload)
	boards := &stubDashboardRepo{boards: map[uuid.UUID]*dashboard.Dashboard{board.ID: board}}

	projects := &stubProjectRepo{projects: []project.Project{
		project.New(uuid.New(), "VAT return", uuid.New(), "vat",
			project.WithStage("review", time.Now().Add(-100*time.Hour))),
		project.New(uuid.New(), "Fresh VAT return", uuid.New(), "vat",
			project.WithStage("review", time.Now().Add(-time.Hour))),
	}}
	stages := &stubStageRepo{rules: []stage.DurationRule{
		{ProjectType: "vat", StageName: "review", MaxInstanceHours: 48},
	}}
	router := newDashboardsFixture(t, boards, projects, stages)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboards/"+board.ID.String()+"/widgets/data", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		WidgetID string                 `json:"widgetId"`
		Data     []services.WidgetDatum `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, "w-1", out[0].WidgetID)
	require.Equal(t, []services.WidgetDatum{{Label: "vat", Count: 1}}, out[0].Data,
		"a schedule-filtered dashboard must resolve duration rules, not skip every record")
	require.Equal(t, 1, stages.calls)
}

func TestDashboardsController_WidgetData_UnfilteredBundleSkipsDurationLookup(t *testing.T) {
	t.Parallel()

	payload, err := viewstate.MarshalDashboardPayload(filter.DefaultBundle(), []viewstate.Widget{
		{ID: "w-1", Title: "By type", Chart: viewstate.ChartPie, GroupBy: viewstate.GroupByProjectType},
	})
	require.NoError(t, err)

	board := dashboard.New(uuid.New(), "Overview", payload)
	boards := &stubDashboardRepo{boards: map[uuid.UUID]*dashboard.Dashboard{board.ID: board}}
	projects := &stubProjectRepo{projects: []project.Project{
		project.New(uuid.New(), "Accounts", uuid.New(), "accounts",
			project.WithStage("prep", time.Now())),
	}}
	stages := &stubStageRepo{}
	router := newDashboardsFixture(t, boards, projects, stages)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboards/"+board.ID.String()+"/widgets/data", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []struct {
		Data []services.WidgetDatum `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, []services.WidgetDatum{{Label: "accounts", Count: 1}}, out[0].Data)
	require.Zero(t, stages.calls, "an unfiltered schedule dimension needs no duration rules")
}
