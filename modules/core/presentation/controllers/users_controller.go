package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ledgerflow/practice-sdk/modules/core/domain/aggregates/user"
	"github.com/ledgerflow/practice-sdk/modules/core/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/core/presentation/controllers/dtos"
	"github.com/ledgerflow/practice-sdk/modules/core/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/httpapi"
)

type UsersController struct {
	app      application.Application
	basePath string
}

func NewUsersController(app application.Application) application.Controller {
	return &UsersController{
		app:      app,
		basePath: "/api/v1/users",
	}
}

func (c *UsersController) Key() string {
	return c.basePath
}

func (c *UsersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *UsersController) service() *services.UserService {
	return c.app.Service(&services.UserService{}).(*services.UserService)
}

func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	params := &user.FindParams{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
		Search: r.URL.Query().Get("search"),
		Role:   user.Role(r.URL.Query().Get("role")),
	}

	users, total, err := c.service().GetPaginatedWithTotal(r.Context(), params)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list users", nil)
		return
	}
	out := make([]dtos.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dtos.NewUserResponse(u))
	}
	_ = httpapi.WriteList(w, out, total, page, perPage)
}

func (c *UsersController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	u, err := c.service().GetByID(r.Context(), id)
	if errors.Is(err, persistence.ErrUserNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load user", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewUserResponse(u))
}

func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateUserDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}
	created, err := c.service().Create(r.Context(), user.New(dto.Email, dto.Name, user.Role(dto.Role)))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create user", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, dtos.NewUserResponse(created))
}

func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	var dto dtos.UpdateUserDTO
	if !httpapi.DecodeAndValidate(w, r, &dto) {
		return
	}

	existing, err := c.service().GetByID(r.Context(), id)
	if errors.Is(err, persistence.ErrUserNotFound) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
		return
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load user", nil)
		return
	}

	next := existing.SetName(dto.Name).SetRole(user.Role(dto.Role))
	if dto.Active != nil {
		next = next.SetActive(*dto.Active)
	}
	updated, err := c.service().Update(r.Context(), next)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update user", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewUserResponse(updated))
}

func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	if _, err := c.service().Delete(r.Context(), id); err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
			return
		}
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete user", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusNoContent, nil)
}
