package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/project"
	"github.com/ledgerflow/practice-sdk/modules/projects/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/projects/presentation/controllers/dtos"
	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

type ProjectsController struct {
	app      application.Application
	basePath string
}

func NewProjectsController(app application.Application) application.Controller {
	return &ProjectsController{
		app:      app,
		basePath: "/api/v1/projects",
	}
}

func (c *ProjectsController) Key() string {
	return c.basePath
}

func (c *ProjectsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}/stage", c.MoveStage).Methods(http.MethodPost)
	router.HandleFunc("/{id}/archive", c.Archive).Methods(http.MethodPost)
	router.HandleFunc("/{id}/restore", c.Restore).Methods(http.MethodPost)
	router.HandleFunc("/{id}/complete", c.Complete).Methods(http.MethodPost)
}

func (c *ProjectsController) service() *services.ProjectService {
	return c.app.Service(&services.ProjectService{}).(*services.ProjectService)
}

// List runs the same filtering engine the client runs, so a client with no
// local state and the server agree on what page 1 looks like.
func (c *ProjectsController) List(w http.ResponseWriter, r *http.Request) {
	bundle := bundleFromQuery(r)
	mode := modeFromQuery(r)
	page, perPage := pageFromQuery(r)
	viewer := viewerFromRequest(r)

	query := viewstate.ProjectQuery{
		IncludeArchived: bundle.ShowArchived && mode != filter.ModeKanban,
		ServiceDueDate:  bundle.ServiceDueDate,
	}
	records, err := c.service().Listing(r.Context(), query)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load projects", nil)
		return
	}

	durations := filter.StageDurations{}
	durationsState := filter.LoadPending
	if bundle.ScheduleStatus != filter.ScheduleAll {
		durations, err = c.service().StageDurations(r.Context())
		if err != nil {
			durationsState = filter.LoadFailed
		} else {
			durationsState = filter.LoadReady
		}
	}

	engine := viewstate.NewEngine()
	res := engine.Apply(records, bundle, viewstate.EngineContext{
		Mode:           mode,
		Viewer:         viewer,
		Durations:      durations,
		DurationsState: durationsState,
	}, page, perPage)

	page = viewstate.ClampPage(page, res.TotalPages)

	out := make([]dtos.ListingRecord, 0, len(res.Page))
	for _, p := range res.Page {
		out = append(out, dtos.NewListingRecord(p))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.ListingEnvelope{
		Data:       out,
		Total:      len(res.Filtered),
		Page:       page,
		PerPage:    perPage,
		TotalPages: res.TotalPages,
	})
}

func (c *ProjectsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	p, err := c.service().GetByID(r.Context(), id)
	if errors.Is(err, persistence.ErrProjectNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "project not found", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load project", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewProjectResponse(p))
}

func (c *ProjectsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateProjectDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	clientID, _ := uuid.Parse(dto.ClientID)
	offeringID, _ := uuid.Parse(dto.OfferingID)

	opts := []project.Option{}
	if id, err := uuid.Parse(dto.AssigneeID); err == nil {
		opts = append(opts, project.WithAssigneeID(id))
	}
	if id, err := uuid.Parse(dto.OwnerID); err == nil {
		opts = append(opts, project.WithOwnerID(id))
	}
	if due, err := time.Parse("2006-01-02", dto.DueDate); err == nil {
		opts = append(opts, project.WithDueDate(&due))
	}
	if target, err := time.Parse("2006-01-02", dto.TargetDate); err == nil {
		opts = append(opts, project.WithTargetDate(&target))
	}

	created, err := c.service().Create(r.Context(), project.New(clientID, dto.Name, offeringID, dto.ProjectType, opts...))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create project", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.NewProjectResponse(created))
}

func (c *ProjectsController) MoveStage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	var dto dtos.MoveStageDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	moved, err := c.service().MoveToStage(r.Context(), id, dto.Stage)
	if err != nil {
		c.writeMutationError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewProjectResponse(moved))
}

func (c *ProjectsController) Archive(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, c.service().Archive)
}

func (c *ProjectsController) Restore(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, c.service().Restore)
}

func (c *ProjectsController) Complete(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, c.service().Complete)
}

func (c *ProjectsController) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (project.Project, error)) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	updated, err := op(r.Context(), id)
	if err != nil {
		c.writeMutationError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewProjectResponse(updated))
}

func (c *ProjectsController) writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, persistence.ErrProjectNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "project not found", nil)
		return
	}
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update project", nil)
}
