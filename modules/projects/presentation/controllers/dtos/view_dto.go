package dtos

import (
	"time"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/dashboard"
	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/savedview"
)

type CreateViewDTO struct {
	Name    string `json:"name" validate:"required"`
	Mode    string `json:"mode" validate:"required,oneof=list kanban calendar pivot"`
	Payload string `json:"payload" validate:"required"`
}

type UpdateViewDTO struct {
	Name    string `json:"name" validate:"required"`
	Mode    string `json:"mode" validate:"required,oneof=list kanban calendar pivot"`
	Payload string `json:"payload" validate:"required"`
}

type ViewResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mode      string    `json:"mode"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewViewResponse(v *savedview.SavedView) ViewResponse {
	return ViewResponse{
		ID:        v.ID.String(),
		Name:      v.Name,
		Mode:      v.Mode,
		Payload:   v.Payload,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type CreateDashboardDTO struct {
	Name       string `json:"name" validate:"required"`
	Shared     bool   `json:"shared"`
	Homescreen bool   `json:"homescreen"`
	Payload    string `json:"payload" validate:"required"`
}

type DashboardResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Shared     bool      `json:"shared"`
	Homescreen bool      `json:"homescreen"`
	Payload    string    `json:"payload"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewDashboardResponse(d *dashboard.Dashboard) DashboardResponse {
	return DashboardResponse{
		ID:         d.ID.String(),
		Name:       d.Name,
		Shared:     d.Shared,
		Homescreen: d.Homescreen,
		Payload:    d.Payload,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type PreferenceDTO struct {
	DefaultViewType string `json:"defaultViewType" validate:"omitempty,oneof=list kanban calendar pivot dashboard"`
	DefaultViewID   string `json:"defaultViewId"`
}
