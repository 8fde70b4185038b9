package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/projects/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/projects/presentation/controllers/dtos"
	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
)

type ViewsController struct {
	app      application.Application
	basePath string
}

func NewViewsController(app application.Application) application.Controller {
	return &ViewsController{
		app:      app,
		basePath: "/api/v1/views",
	}
}

func (c *ViewsController) Key() string {
	return c.basePath
}

func (c *ViewsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *ViewsController) service() *services.SavedViewService {
	return c.app.Service(&services.SavedViewService{}).(*services.SavedViewService)
}

func (c *ViewsController) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := memberIDFromRequest(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "member identity missing", nil)
		return
	}
	views, err := c.service().GetAllForOwner(r.Context(), ownerID)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list views", nil)
		return
	}
	out := make([]dtos.ViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dtos.NewViewResponse(v))
	}
	_ = httpapi.WriteList(w, out, int64(len(out)), 1, len(out))
}

func (c *ViewsController) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := memberIDFromRequest(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "member identity missing", nil)
		return
	}
	var dto dtos.CreateViewDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	created, err := c.service().Create(r.Context(), ownerID, dto.Name, dto.Mode, dto.Payload)
	if errors.Is(err, services.ErrViewNameRequired) {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "name is required", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create view", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.NewViewResponse(created))
}

func (c *ViewsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	var dto dtos.UpdateViewDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	existing, err := c.service().GetByID(r.Context(), id)
	if errors.Is(err, persistence.ErrSavedViewNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "view not found", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load view", nil)
		return
	}
	existing.Name = dto.Name
	existing.Mode = dto.Mode
	existing.Payload = dto.Payload
	updated, err := c.service().Update(r.Context(), existing)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update view", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewViewResponse(updated))
}

func (c *ViewsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	if err := c.service().Delete(r.Context(), id); err != nil {
		if errors.Is(err, persistence.ErrSavedViewNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "view not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete view", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
