package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

func TestWidgetData_ProjectTypeFirstSeenOrder(t *testing.T) {
	t.Parallel()

	projects := []filter.Project{
		{ID: "p1", ProjectType: "vat-return"},
		{ID: "p2", ProjectType: "payroll"},
		{ID: "p3", ProjectType: "vat-return"},
		{ID: "p4", ProjectType: "accounts"},
		{ID: "p5", ProjectType: "payroll"},
	}

	data := services.WidgetData(viewstate.Widget{GroupBy: viewstate.GroupByProjectType}, projects, time.Now())
	require.Equal(t, []services.WidgetDatum{
		{Label: "vat-return", Count: 2},
		{Label: "payroll", Count: 2},
		{Label: "accounts", Count: 1},
	}, data)
}

func TestWidgetData_StatusPrefersCompletedOverArchived(t *testing.T) {
	t.Parallel()

	projects := []filter.Project{
		{ID: "p1"},
		{ID: "p2", Completed: true, Archived: true},
		{ID: "p3", Archived: true},
		{ID: "p4", Completed: true},
	}

	data := services.WidgetData(viewstate.Widget{GroupBy: viewstate.GroupByStatus}, projects, time.Now())
	require.Equal(t, []services.WidgetDatum{
		{Label: "active", Count: 1},
		{Label: "completed", Count: 2},
		{Label: "archived", Count: 1},
	}, data)
}

func TestWidgetData_AssigneeEmptyIsUnassigned(t *testing.T) {
	t.Parallel()

	projects := []filter.Project{
		{ID: "p1", AssigneeID: "u-1"},
		{ID: "p2"},
		{ID: "p3", AssigneeID: "u-1"},
	}

	data := services.WidgetData(viewstate.Widget{GroupBy: viewstate.GroupByAssignee}, projects, time.Now())
	require.Equal(t, []services.WidgetDatum{
		{Label: "u-1", Count: 2},
		{Label: "unassigned", Count: 1},
	}, data)
}

func TestWidgetData_DaysOverdueBuckets(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	due := func(daysAgo int) *time.Time {
		d := now.AddDate(0, 0, -daysAgo)
		return &d
	}

	projects := []filter.Project{
		{ID: "today", DueDate: due(0)},                     // not yet overdue
		{ID: "one", DueDate: due(1)},                       // 1-7
		{ID: "seven", DueDate: due(7)},                     // 1-7
		{ID: "eight", DueDate: due(8)},                     // 8-30
		{ID: "thirty", DueDate: due(30)},                   // 8-30
		{ID: "ninety", DueDate: due(90)},                   // 31-90
		{ID: "ancient", DueDate: due(200)},                 // 90+
		{ID: "done", DueDate: due(40), Completed: true},    // excluded
		{ID: "undated"},                                    // excluded
	}

	data := services.WidgetData(viewstate.Widget{GroupBy: viewstate.GroupByDaysOverdue}, projects, now)
	require.Equal(t, []services.WidgetDatum{
		{Label: "1-7", Count: 2},
		{Label: "8-30", Count: 2},
		{Label: "31-90", Count: 1},
		{Label: "90+", Count: 1},
	}, data)
}

func TestWidgetData_EmptyInputYieldsEmptySeries(t *testing.T) {
	t.Parallel()

	data := services.WidgetData(viewstate.Widget{GroupBy: viewstate.GroupByServiceOwner}, nil, time.Now())
	require.NotNil(t, data)
	require.Empty(t, data)
}
