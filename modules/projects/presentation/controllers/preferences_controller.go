package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/preference"
	"github.com/ledgerflow/practice-sdk/modules/projects/presentation/controllers/dtos"
	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
)

type PreferencesController struct {
	app      application.Application
	basePath string
}

func NewPreferencesController(app application.Application) application.Controller {
	return &PreferencesController{
		app:      app,
		basePath: "/api/v1/preferences",
	}
}

func (c *PreferencesController) Key() string {
	return c.basePath
}

func (c *PreferencesController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
	router.HandleFunc("", c.Put).Methods(http.MethodPut)
}

func (c *PreferencesController) service() *services.PreferenceService {
	return c.app.Service(&services.PreferenceService{}).(*services.PreferenceService)
}

func (c *PreferencesController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := memberIDFromRequest(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "member identity missing", nil)
		return
	}
	pref, err := c.service().GetForUser(r.Context(), userID)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load preference", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.PreferenceDTO{
		DefaultViewType: pref.DefaultViewType,
		DefaultViewID:   pref.DefaultViewID,
	})
}

func (c *PreferencesController) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := memberIDFromRequest(r)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "member identity missing", nil)
		return
	}
	var dto dtos.PreferenceDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	err := c.service().Write(r.Context(), &preference.Preference{
		UserID:          userID,
		DefaultViewType: dto.DefaultViewType,
		DefaultViewID:   dto.DefaultViewID,
	})
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to write preference", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dto)
}
