package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
)

// OfferingsController serves the reference data the filter dimensions are
// built from: the offering catalogue and the stage duration rules.
type OfferingsController struct {
	app      application.Application
	basePath string
}

func NewOfferingsController(app application.Application) application.Controller {
	return &OfferingsController{
		app:      app,
		basePath: "/api/v1/offerings",
	}
}

func (c *OfferingsController) Key() string {
	return c.basePath
}

func (c *OfferingsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/stage-durations", c.StageDurations).Methods(http.MethodGet)
}

func (c *OfferingsController) List(w http.ResponseWriter, r *http.Request) {
	svc := c.app.Service(&services.OfferingService{}).(*services.OfferingService)
	offerings, err := svc.GetAll(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list offerings", nil)
		return
	}
	type offeringDTO struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}
	out := make([]offeringDTO, 0, len(offerings))
	for _, o := range offerings {
		out = append(out, offeringDTO{ID: o.ID.String(), Name: o.Name, Active: o.Active})
	}
	_ = httpapi.WriteList(w, out, int64(len(out)), 1, len(out))
}

func (c *OfferingsController) StageDurations(w http.ResponseWriter, r *http.Request) {
	svc := c.app.Service(&services.ProjectService{}).(*services.ProjectService)
	durations, err := svc.StageDurations(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load stage durations", nil)
		return
	}
	type ruleDTO struct {
		ProjectType      string  `json:"projectType"`
		StageName        string  `json:"stageName"`
		MaxInstanceHours float64 `json:"maxInstanceHours"`
	}
	out := make([]ruleDTO, 0, len(durations))
	for key, hours := range durations {
		out = append(out, ruleDTO{ProjectType: key.ProjectType, StageName: key.StageName, MaxInstanceHours: hours})
	}
	_ = httpapi.WriteList(w, out, int64(len(out)), 1, len(out))
}
