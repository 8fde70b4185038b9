package controllers

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/projects/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/projects/presentation/controllers/dtos"
	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

type DashboardsController struct {
	app      application.Application
	basePath string
}

func NewDashboardsController(app application.Application) application.Controller {
	return &DashboardsController{
		app:      app,
		basePath: "/api/v1/dashboards",
	}
}

func (c *DashboardsController) Key() string {
	return c.basePath
}

func (c *DashboardsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/widgets/data", c.WidgetData).Methods(http.MethodGet)
}

func (c *DashboardsController) service() *services.DashboardService {
	return c.app.Service(&services.DashboardService{}).(*services.DashboardService)
}

func (c *DashboardsController) projects() *services.ProjectService {
	return c.app.Service(&services.ProjectService{}).(*services.ProjectService)
}

func (c *DashboardsController) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := memberIDFromRequest(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "member identity missing", nil)
		return
	}
	boards, err := c.service().GetVisibleToOwner(r.Context(), ownerID)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list dashboards", nil)
		return
	}
	out := make([]dtos.DashboardResponse, 0, len(boards))
	for _, d := range boards {
		out = append(out, dtos.NewDashboardResponse(d))
	}
	_ = httpapi.WriteList(w, out, int64(len(out)), 1, len(out))
}

func (c *DashboardsController) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := memberIDFromRequest(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "member identity missing", nil)
		return
	}
	var dto dtos.CreateDashboardDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	// The payload must at least parse; widget configurations inside are
	// validated by the unmarshal.
	if _, _, err := viewstate.UnmarshalDashboardPayload(dto.Payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "payload is not a valid dashboard payload", nil)
		return
	}
	created, err := c.service().Create(r.Context(), ownerID, dto.Name, dto.Payload)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create dashboard", nil)
		return
	}
	if dto.Shared || dto.Homescreen {
		created.Shared = dto.Shared
		created.Homescreen = dto.Homescreen
		if created, err = c.service().Update(r.Context(), created); err != nil {
			_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update dashboard", nil)
			return
		}
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.NewDashboardResponse(created))
}

func (c *DashboardsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	if err := c.service().Delete(r.Context(), id); err != nil {
		if errors.Is(err, persistence.ErrDashboardNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "dashboard not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete dashboard", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

// WidgetData evaluates a dashboard's widgets against the live project set:
// the stored bundle filters the collection, then each widget groups it
// along its dimension.
func (c *DashboardsController) WidgetData(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	board, err := c.service().GetByID(r.Context(), id)
	if errors.Is(err, persistence.ErrDashboardNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "dashboard not found", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load dashboard", nil)
		return
	}

	bundle, widgets, err := viewstate.UnmarshalDashboardPayload(board.Payload)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "stored payload is not readable", nil)
		return
	}

	records, err := c.projects().Listing(r.Context(), viewstate.ProjectQuery{IncludeArchived: bundle.ShowArchived})
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load projects", nil)
		return
	}

	durations := filter.StageDurations{}
	durationsState := filter.LoadPending
	if bundle.ScheduleStatus != filter.ScheduleAll {
		durations, err = c.projects().StageDurations(r.Context())
		if err != nil {
			durationsState = filter.LoadFailed
		} else {
			durationsState = filter.LoadReady
		}
	}

	engine := viewstate.NewEngine()
	res := engine.Apply(records, bundle, viewstate.EngineContext{
		Mode:           filter.ModeDashboard,
		Viewer:         viewerFromRequest(r),
		Durations:      durations,
		DurationsState: durationsState,
	}, 1, 0)

	now := time.Now()
	type widgetSeries struct {
		WidgetID string                 `json:"widgetId"`
		Title    string                 `json:"title"`
		Chart    string                 `json:"chart"`
		Data     []services.WidgetDatum `json:"data"`
	}
	out := make([]widgetSeries, 0, len(widgets))
	for _, widget := range widgets {
		out = append(out, widgetSeries{
			WidgetID: widget.ID,
			Title:    widget.Title,
			Chart:    string(widget.Chart),
			Data:     services.WidgetData(widget, res.Filtered, now),
		})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}
