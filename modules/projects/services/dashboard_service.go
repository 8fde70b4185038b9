package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/modules/projects/domain/aggregates/dashboard"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

type DashboardService struct {
	repo dashboard.Repository
}

func NewDashboardService(repo dashboard.Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) GetVisibleToOwner(ctx context.Context, ownerID uuid.UUID) ([]*dashboard.Dashboard, error) {
	return s.repo.GetVisibleToOwner(ctx, ownerID)
}

func (s *DashboardService) GetByID(ctx context.Context, id uuid.UUID) (*dashboard.Dashboard, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DashboardService) Create(ctx context.Context, ownerID uuid.UUID, name, payload string) (*dashboard.Dashboard, error) {
	if name == "" {
		return nil, ErrViewNameRequired
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*dashboard.Dashboard, error) {
		return s.repo.Create(txCtx, dashboard.New(ownerID, name, payload))
	})
}

func (s *DashboardService) Update(ctx context.Context, data *dashboard.Dashboard) (*dashboard.Dashboard, error) {
	if data.Name == "" {
		return nil, ErrViewNameRequired
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (*dashboard.Dashboard, error) {
		return s.repo.Update(txCtx, data)
	})
}

func (s *DashboardService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// WidgetDatum is one labelled slice of a widget's chart.
type WidgetDatum struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WidgetData groups the filtered project set along a widget's dimension.
// The zero count is meaningful for number widgets, so an empty input yields
// an empty series rather than nil.
func WidgetData(widget viewstate.Widget, projects []filter.Project, now time.Time) []WidgetDatum {
	counts := map[string]int{}
	order := []string{}
	add := func(label string) {
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	for _, p := range projects {
		switch widget.GroupBy {
		case viewstate.GroupByProjectType:
			add(p.ProjectType)
		case viewstate.GroupByStatus:
			add(statusLabel(p))
		case viewstate.GroupByAssignee:
			add(labelOrUnassigned(p.AssigneeID))
		case viewstate.GroupByServiceOwner:
			add(labelOrUnassigned(p.OwnerID))
		case viewstate.GroupByDaysOverdue:
			if label, ok := overdueBucket(p, now); ok {
				add(label)
			}
		}
	}

	out := make([]WidgetDatum, 0, len(order))
	for _, label := range order {
		out = append(out, WidgetDatum{Label: label, Count: counts[label]})
	}
	return out
}

func statusLabel(p filter.Project) string {
	switch {
	case p.Completed:
		return "completed"
	case p.Archived:
		return "archived"
	default:
		return "active"
	}
}

func labelOrUnassigned(id string) string {
	if id == "" {
		return "unassigned"
	}
	return id
}

// overdueBucket classifies how late a project is. Completed projects and
// projects without a due date are excluded from the series entirely.
func overdueBucket(p filter.Project, now time.Time) (string, bool) {
	if p.Completed || p.DueDate == nil {
		return "", false
	}
	days := int(now.Sub(*p.DueDate).Hours() / 24)
	switch {
	case days < 1:
		return "", false
	case days <= 7:
		return "1-7", true
	case days <= 30:
		return "8-30", true
	case days <= 90:
		return "31-90", true
	default:
		return "90+", true
	}
}
