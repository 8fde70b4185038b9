package viewstate

import (
	"time"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// Engine applies a filter bundle to a project collection. It is pure: the
// same inputs always produce the same output, and the input slice is never
// mutated.
type Engine struct {
	// Now is the time source for date-bucket and schedule predicates.
	Now func() time.Time
}

func NewEngine() Engine {
	return Engine{Now: time.Now}
}

// EngineContext carries the per-evaluation facts that are not part of the
// bundle itself.
type EngineContext struct {
	Mode           filter.PresentationMode
	Viewer         filter.Viewer
	Durations      filter.StageDurations
	DurationsState filter.LoadState
}

// Result is the engine's projection: the fully filtered collection and the
// page slice for list presentation. Non-list modes receive the full
// filtered collection as the page.
type Result struct {
	Filtered   []filter.Project
	Page       []filter.Project
	TotalPages int
}

// Apply filters projects and paginates for list mode. Predicates run in a
// fixed order with cheap membership checks first; order does not change the
// outcome since predicates are independent, short-circuiting just avoids
// needless date math.
func (e Engine) Apply(projects []filter.Project, b filter.Bundle, ec EngineContext, page, perPage int) Result {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}

	filtered := make([]filter.Project, 0, len(projects))
	for _, p := range projects {
		if e.admit(p, b, ec, now) {
			filtered = append(filtered, p)
		}
	}

	res := Result{Filtered: filtered}
	if perPage <= 0 {
		perPage = filter.DefaultBundle().List.PageSize
	}
	res.TotalPages = (len(filtered) + perPage - 1) / perPage

	if ec.Mode != filter.ModeList {
		res.Page = filtered
		return res
	}

	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(filtered) {
		res.Page = []filter.Project{}
		return res
	}
	end := start + perPage
	if end > len(filtered) {
		end = len(filtered)
	}
	res.Page = filtered[start:end]
	return res
}

func (e Engine) admit(p filter.Project, b filter.Bundle, ec EngineContext, now time.Time) bool {
	if filter.MatchesService(p, b.Service) != filter.Pass {
		return false
	}
	if filter.MatchesAssignee(p, b.TaskAssignee) != filter.Pass {
		return false
	}
	if filter.MatchesOwner(p, b.ServiceOwner) != filter.Pass {
		return false
	}
	if filter.MatchesUser(p, b.User) != filter.Pass {
		return false
	}
	if filter.VisibleToViewer(p, ec.Viewer) != filter.Pass {
		return false
	}
	if filter.MatchesClientProjectTypes(p, b.ClientProjectTypes) != filter.Pass {
		return false
	}
	if filter.MatchesDateRange(p, b.DynamicDate, b.CustomDateRange, now) != filter.Pass {
		return false
	}
	if filter.MatchesServiceDueDate(p, b.ServiceDueDate, now) != filter.Pass {
		return false
	}
	if filter.MatchesSchedule(p, b.ScheduleStatus, ec.Durations, ec.DurationsState, now) != filter.Pass {
		return false
	}
	if filter.MatchesArchive(p, b.ShowArchived, ec.Mode) != filter.Pass {
		return false
	}
	return filter.MatchesCompleted(p, b.ShowCompleted) == filter.Pass
}

// Applicability marks filter dimensions that are structurally inapplicable
// in the current context and must not count toward the active-filter badge.
type Applicability struct {
	TaskAssignee bool
}

// DefaultApplicability derives applicability from the viewer: for staff the
// listing is already scoped to their own work, so an assignee filter has
// nothing to narrow.
func DefaultApplicability(viewer filter.Viewer) Applicability {
	return Applicability{TaskAssignee: viewer.Role != filter.RoleStaff}
}

// ActiveFilterCount returns how many dimensions are in a non-sentinel
// state. Used for the UI badge only; it never affects filtering.
func ActiveFilterCount(b filter.Bundle, applicability Applicability) int {
	count := 0
	if b.Service != filter.All {
		count++
	}
	if b.TaskAssignee != filter.All && applicability.TaskAssignee {
		count++
	}
	if b.ServiceOwner != filter.All {
		count++
	}
	if b.User != filter.All {
		count++
	}
	if b.ShowArchived {
		count++
	}
	if b.ShowCompleted {
		count++
	}
	if b.DynamicDate != filter.DateAll {
		count++
	}
	if b.ScheduleStatus != filter.ScheduleAll {
		count++
	}
	if b.ServiceDueDate != filter.DateAll {
		count++
	}
	if len(b.ClientProjectTypes) > 0 {
		count++
	}
	return count
}

// ClampPage keeps the current page within the total page count, preventing
// the user from being stranded on an empty page after the collection
// shrinks.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
