// Package filter holds the filter dimensions of the projects page and the
// pure predicates that test a single project record against one dimension.
package filter

import "time"

// All is the "no filter" sentinel shared by every string-valued dimension.
// Every field of Bundle has a well-defined zero state so a bundle always
// round-trips through its serialized form without ambiguity.
const All = "all"

type PresentationMode string

const (
	ModeList      PresentationMode = "list"
	ModeKanban    PresentationMode = "kanban"
	ModeCalendar  PresentationMode = "calendar"
	ModePivot     PresentationMode = "pivot"
	ModeDashboard PresentationMode = "dashboard"
)

func (m PresentationMode) IsValid() bool {
	switch m {
	case ModeList, ModeKanban, ModeCalendar, ModePivot, ModeDashboard:
		return true
	}
	return false
}

type ScheduleStatus string

const (
	ScheduleAll    ScheduleStatus = All
	ScheduleOn     ScheduleStatus = "on"
	ScheduleBehind ScheduleStatus = "behind"
)

func (s ScheduleStatus) IsValid() bool {
	switch s {
	case ScheduleAll, ScheduleOn, ScheduleBehind:
		return true
	}
	return false
}

type DynamicDate string

const (
	DateAll       DynamicDate = All
	DateToday     DynamicDate = "today"
	DateThisWeek  DynamicDate = "thisWeek"
	DateThisMonth DynamicDate = "thisMonth"
	DateOverdue   DynamicDate = "overdue"
	DateCustom    DynamicDate = "custom"
)

func (d DynamicDate) IsValid() bool {
	switch d {
	case DateAll, DateToday, DateThisWeek, DateThisMonth, DateOverdue, DateCustom:
		return true
	}
	return false
}

// DateRange is a closed custom date interval. Either bound may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

func (r DateRange) equal(o DateRange) bool {
	return timePtrEqual(r.From, o.From) && timePtrEqual(r.To, o.To)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListSettings are the list-mode presentation settings captured into a
// saved view alongside the filter dimensions.
type ListSettings struct {
	SortColumn    string
	SortDirection SortDirection
	PageSize      int
	Columns       []string
}

// CalendarSettings are the calendar-mode display toggles.
type CalendarSettings struct {
	ShowDueDates    bool
	ShowTargetDates bool
}

// PivotSettings configure the pivot presentation.
type PivotSettings struct {
	RowDimension    string
	ColumnDimension string
}

// Bundle is an immutable snapshot of every filter dimension plus the
// presentation-mode-specific settings. Treat values as read-only; mutate
// through a copy.
type Bundle struct {
	Service            string
	TaskAssignee       string
	ServiceOwner       string
	User               string
	ShowArchived       bool
	ShowCompleted      bool
	DynamicDate        DynamicDate
	CustomDateRange    DateRange
	ScheduleStatus     ScheduleStatus
	ServiceDueDate     DynamicDate
	ClientProjectTypes []string

	Calendar CalendarSettings
	List     ListSettings
	Pivot    PivotSettings
}

// DefaultBundle is the cold-start state: every dimension at its sentinel.
func DefaultBundle() Bundle {
	return Bundle{
		Service:        All,
		TaskAssignee:   All,
		ServiceOwner:   All,
		User:           All,
		DynamicDate:    DateAll,
		ScheduleStatus: ScheduleAll,
		ServiceDueDate: DateAll,
		List: ListSettings{
			SortColumn:    "dueDate",
			SortDirection: SortAsc,
			PageSize:      25,
		},
		Calendar: CalendarSettings{
			ShowDueDates:    true,
			ShowTargetDates: true,
		},
	}
}

func (b Bundle) Equal(o Bundle) bool {
	if b.Service != o.Service ||
		b.TaskAssignee != o.TaskAssignee ||
		b.ServiceOwner != o.ServiceOwner ||
		b.User != o.User ||
		b.ShowArchived != o.ShowArchived ||
		b.ShowCompleted != o.ShowCompleted ||
		b.DynamicDate != o.DynamicDate ||
		b.ScheduleStatus != o.ScheduleStatus ||
		b.ServiceDueDate != o.ServiceDueDate {
		return false
	}
	if !b.CustomDateRange.equal(o.CustomDateRange) {
		return false
	}
	if len(b.ClientProjectTypes) != len(o.ClientProjectTypes) {
		return false
	}
	for i := range b.ClientProjectTypes {
		if b.ClientProjectTypes[i] != o.ClientProjectTypes[i] {
			return false
		}
	}
	return b.Calendar == o.Calendar &&
		b.List.equal(o.List) &&
		b.Pivot == o.Pivot
}

func (s ListSettings) equal(o ListSettings) bool {
	if s.SortColumn != o.SortColumn || s.SortDirection != o.SortDirection || s.PageSize != o.PageSize {
		return false
	}
	if len(s.Columns) != len(o.Columns) {
		return false
	}
	for i := range s.Columns {
		if s.Columns[i] != o.Columns[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy; slices are not shared with the receiver.
func (b Bundle) Clone() Bundle {
	out := b
	if b.ClientProjectTypes != nil {
		out.ClientProjectTypes = append([]string(nil), b.ClientProjectTypes...)
	}
	if b.List.Columns != nil {
		out.List.Columns = append([]string(nil), b.List.Columns...)
	}
	if b.CustomDateRange.From != nil {
		from := *b.CustomDateRange.From
		out.CustomDateRange.From = &from
	}
	if b.CustomDateRange.To != nil {
		to := *b.CustomDateRange.To
		out.CustomDateRange.To = &to
	}
	return out
}
