// Package viewstate is the projects-page state engine: it reconciles
// server-fetched project records, ad-hoc filters, saved views, dashboards
// and pagination into one coherent projection of what the user currently
// sees. It has no transport or framework dependencies; persistence, the
// URL and notifications are injected ports.
package viewstate

import (
	"time"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// SavedView is a named, persisted filter bundle plus a presentation mode.
// Payload is the opaque serialized bundle (see payload.go).
type SavedView struct {
	ID      string
	Name    string
	Mode    filter.PresentationMode
	Payload string
}

type WidgetChart string

const (
	ChartBar    WidgetChart = "bar"
	ChartPie    WidgetChart = "pie"
	ChartNumber WidgetChart = "number"
	ChartLine   WidgetChart = "line"
)

func (c WidgetChart) IsValid() bool {
	switch c {
	case ChartBar, ChartPie, ChartNumber, ChartLine:
		return true
	}
	return false
}

type WidgetGroupBy string

const (
	GroupByProjectType  WidgetGroupBy = "projectType"
	GroupByStatus       WidgetGroupBy = "status"
	GroupByAssignee     WidgetGroupBy = "assignee"
	GroupByServiceOwner WidgetGroupBy = "serviceOwner"
	GroupByDaysOverdue  WidgetGroupBy = "daysOverdue"
)

func (g WidgetGroupBy) IsValid() bool {
	switch g {
	case GroupByProjectType, GroupByStatus, GroupByAssignee, GroupByServiceOwner, GroupByDaysOverdue:
		return true
	}
	return false
}

// Widget is one chart configuration within a dashboard.
type Widget struct {
	ID      string
	Title   string
	Chart   WidgetChart
	GroupBy WidgetGroupBy
}

// Dashboard is a named, persisted set of widgets plus its own filter
// bundle, stored independently from saved views.
type Dashboard struct {
	ID         string
	Name       string
	Shared     bool
	Homescreen bool
	Payload    string
}

// Preference records which view type (and optionally which saved view or
// dashboard) was last active. Written on every successful load, read back
// only on the next cold start.
type Preference struct {
	DefaultViewType string
	DefaultViewID   string
}

// Member is a practice staff member as seen by the engine.
type Member struct {
	ID   string
	Name string
	Role filter.Role
}

// Offering is a service the practice offers (the "service" dimension).
type Offering struct {
	ID   string
	Name string
}

// Snapshot is a last-known-good project listing read from the server-side
// coarse cache.
type Snapshot struct {
	Projects []filter.Project
	CachedAt time.Time
	Stale    bool
}
