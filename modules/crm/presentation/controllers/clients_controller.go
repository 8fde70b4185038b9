package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/crm/domain/aggregates/client"
	"github.com/ledgerflow/practice-sdk/modules/crm/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/crm/infrastructure/registry"
	"github.com/ledgerflow/practice-sdk/modules/crm/presentation/controllers/dtos"
	"github.com/ledgerflow/practice-sdk/modules/crm/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
)

type ClientsController struct {
	app      application.Application
	basePath string
}

func NewClientsController(app application.Application) application.Controller {
	return &ClientsController{
		app:      app,
		basePath: "/api/v1/clients",
	}
}

func (c *ClientsController) Key() string {
	return c.basePath
}

func (c *ClientsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/search", c.Search).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/enrich", c.Enrich).Methods(http.MethodPost)
}

func (c *ClientsController) service() *services.ClientService {
	return c.app.Service(&services.ClientService{}).(*services.ClientService)
}

func (c *ClientsController) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	params := &client.FindParams{
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
		Search:     r.URL.Query().Get("search"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	clients, total, err := c.service().GetPaginatedWithTotal(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list clients", nil)
		return
	}
	out := make([]dtos.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, dtos.NewClientResponse(cl))
	}
	_ = httpapi.WriteList(w, out, total, page, perPage)
}

func (c *ClientsController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	clients, err := c.service().Search(r.Context(), q)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to search clients", nil)
		return
	}
	out := make([]dtos.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, dtos.NewClientResponse(cl))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

func (c *ClientsController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	cl, err := c.service().GetByID(r.Context(), id)
	if errors.Is(err, persistence.ErrClientNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load client", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewClientResponse(cl))
}

func (c *ClientsController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateClientDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	fee, err := dtos.ParseFee(dto.AnnualFee)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "annualFee must be a decimal number", nil)
		return
	}
	created, err := c.service().Create(r.Context(), client.New(
		dto.Name,
		client.WithCompanyNumber(dto.CompanyNumber),
		client.WithEmail(dto.Email),
		client.WithAnnualFee(fee),
	))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create client", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.NewClientResponse(created))
}

func (c *ClientsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	var dto dtos.UpdateClientDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	fee, err := dtos.ParseFee(dto.AnnualFee)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "annualFee must be a decimal number", nil)
		return
	}

	existing, err := c.service().GetByID(r.Context(), id)
	if errors.Is(err, persistence.ErrClientNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load client", nil)
		return
	}

	next := existing.SetName(dto.Name).SetEmail(dto.Email)
	if dto.AnnualFee != "" {
		next = next.SetAnnualFee(fee)
	}
	if dto.Active != nil {
		next = next.SetActive(*dto.Active)
	}
	updated, err := c.service().Update(r.Context(), next)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update client", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewClientResponse(updated))
}

func (c *ClientsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	if _, err := c.service().Delete(r.Context(), id); err != nil {
		if errors.Is(err, persistence.ErrClientNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete client", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *ClientsController) Enrich(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	var dto dtos.EnrichClientDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}

	enriched, err := c.service().Enrich(r.Context(), id, dto.CompanyNumber)
	switch {
	case errors.Is(err, registry.ErrCompanyNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "company number not on the register", nil)
		return
	case errors.Is(err, persistence.ErrClientNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
		return
	case err != nil:
		_ = httpapi.WriteError(w, http.StatusBadGateway, "REGISTRY_UNAVAILABLE", "registry lookup failed", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewClientResponse(enriched))
}
