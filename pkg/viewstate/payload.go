package viewstate

import (
	"encoding/json"
	"time"

	"github.com/go-faster/errors"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// dateLayout is the fixed interchange representation for dates inside a
// serialized payload. Dates are calendar days; no time component survives a
// round trip.
const dateLayout = "2006-01-02"

// payloadDTO is the wire shape of a serialized filter bundle. Every field
// is optional so payloads saved before a field existed still load: an
// absent field falls back to its sentinel.
type payloadDTO struct {
	Service            *string       `json:"serviceFilter,omitempty"`
	TaskAssignee       *string       `json:"taskAssigneeFilter,omitempty"`
	ServiceOwner       *string       `json:"serviceOwnerFilter,omitempty"`
	User               *string       `json:"userFilter,omitempty"`
	ShowArchived       *bool         `json:"showArchived,omitempty"`
	ShowCompleted      *bool         `json:"showCompleted,omitempty"`
	DynamicDate        *string       `json:"dynamicDateFilter,omitempty"`
	CustomDateFrom     *string       `json:"customDateFrom,omitempty"`
	CustomDateTo       *string       `json:"customDateTo,omitempty"`
	ScheduleStatus     *string       `json:"scheduleStatus,omitempty"`
	ServiceDueDate     *string       `json:"serviceDueDateFilter,omitempty"`
	ClientProjectTypes []string      `json:"clientProjectTypes,omitempty"`
	Calendar           *calendarDTO  `json:"calendarSettings,omitempty"`
	List               *listDTO      `json:"listSettings,omitempty"`
	Pivot              *pivotDTO     `json:"pivotSettings,omitempty"`
	Widgets            []widgetDTO   `json:"widgets,omitempty"`
}

type calendarDTO struct {
	ShowDueDates    bool `json:"showDueDates"`
	ShowTargetDates bool `json:"showTargetDates"`
}

type listDTO struct {
	SortColumn    string   `json:"sortColumn"`
	SortDirection string   `json:"sortDirection"`
	PageSize      int      `json:"pageSize"`
	Columns       []string `json:"columns,omitempty"`
}

type pivotDTO struct {
	RowDimension    string `json:"rowDimension"`
	ColumnDimension string `json:"columnDimension"`
}

type widgetDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Chart   string `json:"chart"`
	GroupBy string `json:"groupBy"`
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func bundleToDTO(b filter.Bundle) payloadDTO {
	dto := payloadDTO{
		Service:            strPtr(b.Service),
		TaskAssignee:       strPtr(b.TaskAssignee),
		ServiceOwner:       strPtr(b.ServiceOwner),
		User:               strPtr(b.User),
		ShowArchived:       boolPtr(b.ShowArchived),
		ShowCompleted:      boolPtr(b.ShowCompleted),
		DynamicDate:        strPtr(string(b.DynamicDate)),
		ScheduleStatus:     strPtr(string(b.ScheduleStatus)),
		ServiceDueDate:     strPtr(string(b.ServiceDueDate)),
		ClientProjectTypes: b.ClientProjectTypes,
		Calendar: &calendarDTO{
			ShowDueDates:    b.Calendar.ShowDueDates,
			ShowTargetDates: b.Calendar.ShowTargetDates,
		},
		List: &listDTO{
			SortColumn:    b.List.SortColumn,
			SortDirection: string(b.List.SortDirection),
			PageSize:      b.List.PageSize,
			Columns:       b.List.Columns,
		},
		Pivot: &pivotDTO{
			RowDimension:    b.Pivot.RowDimension,
			ColumnDimension: b.Pivot.ColumnDimension,
		},
	}
	if b.CustomDateRange.From != nil {
		dto.CustomDateFrom = strPtr(b.CustomDateRange.From.Format(dateLayout))
	}
	if b.CustomDateRange.To != nil {
		dto.CustomDateTo = strPtr(b.CustomDateRange.To.Format(dateLayout))
	}
	return dto
}

func dtoToBundle(dto payloadDTO) (filter.Bundle, error) {
	b := filter.DefaultBundle()
	if dto.Service != nil {
		b.Service = *dto.Service
	}
	if dto.TaskAssignee != nil {
		b.TaskAssignee = *dto.TaskAssignee
	}
	if dto.ServiceOwner != nil {
		b.ServiceOwner = *dto.ServiceOwner
	}
	if dto.User != nil {
		b.User = *dto.User
	}
	if dto.ShowArchived != nil {
		b.ShowArchived = *dto.ShowArchived
	}
	if dto.ShowCompleted != nil {
		b.ShowCompleted = *dto.ShowCompleted
	}
	if dto.DynamicDate != nil {
		b.DynamicDate = filter.DynamicDate(*dto.DynamicDate)
	}
	if dto.ScheduleStatus != nil {
		b.ScheduleStatus = filter.ScheduleStatus(*dto.ScheduleStatus)
	}
	if dto.ServiceDueDate != nil {
		b.ServiceDueDate = filter.DynamicDate(*dto.ServiceDueDate)
	}
	if dto.ClientProjectTypes != nil {
		b.ClientProjectTypes = dto.ClientProjectTypes
	}
	if dto.CustomDateFrom != nil {
		from, err := time.Parse(dateLayout, *dto.CustomDateFrom)
		if err != nil {
			return b, errors.Wrap(err, "parse customDateFrom")
		}
		b.CustomDateRange.From = &from
	}
	if dto.CustomDateTo != nil {
		to, err := time.Parse(dateLayout, *dto.CustomDateTo)
		if err != nil {
			return b, errors.Wrap(err, "parse customDateTo")
		}
		b.CustomDateRange.To = &to
	}
	if dto.Calendar != nil {
		b.Calendar = filter.CalendarSettings{
			ShowDueDates:    dto.Calendar.ShowDueDates,
			ShowTargetDates: dto.Calendar.ShowTargetDates,
		}
	}
	if dto.List != nil {
		b.List = filter.ListSettings{
			SortColumn:    dto.List.SortColumn,
			SortDirection: filter.SortDirection(dto.List.SortDirection),
			PageSize:      dto.List.PageSize,
			Columns:       dto.List.Columns,
		}
	}
	if dto.Pivot != nil {
		b.Pivot = filter.PivotSettings{
			RowDimension:    dto.Pivot.RowDimension,
			ColumnDimension: dto.Pivot.ColumnDimension,
		}
	}
	return b, nil
}

// MarshalBundle serializes a filter bundle into the opaque payload string
// stored on a saved view.
func MarshalBundle(b filter.Bundle) (string, error) {
	raw, err := json.Marshal(bundleToDTO(b))
	if err != nil {
		return "", errors.Wrap(err, "marshal filter bundle")
	}
	return string(raw), nil
}

// UnmarshalBundle parses a payload back into a live bundle, falling back to
// each field's sentinel when absent.
func UnmarshalBundle(payload string) (filter.Bundle, error) {
	if payload == "" {
		return filter.DefaultBundle(), nil
	}
	var dto payloadDTO
	if err := json.Unmarshal([]byte(payload), &dto); err != nil {
		return filter.DefaultBundle(), errors.Wrap(err, "unmarshal filter bundle")
	}
	return dtoToBundle(dto)
}

// MarshalDashboardPayload serializes a dashboard's own bundle together with
// its widget set.
func MarshalDashboardPayload(b filter.Bundle, widgets []Widget) (string, error) {
	dto := bundleToDTO(b)
	for _, w := range widgets {
		dto.Widgets = append(dto.Widgets, widgetDTO{
			ID:      w.ID,
			Title:   w.Title,
			Chart:   string(w.Chart),
			GroupBy: string(w.GroupBy),
		})
	}
	raw, err := json.Marshal(dto)
	if err != nil {
		return "", errors.Wrap(err, "marshal dashboard payload")
	}
	return string(raw), nil
}

// UnmarshalDashboardPayload parses a dashboard payload into its bundle and
// widgets.
func UnmarshalDashboardPayload(payload string) (filter.Bundle, []Widget, error) {
	if payload == "" {
		return filter.DefaultBundle(), nil, nil
	}
	var dto payloadDTO
	if err := json.Unmarshal([]byte(payload), &dto); err != nil {
		return filter.DefaultBundle(), nil, errors.Wrap(err, "unmarshal dashboard payload")
	}
	b, err := dtoToBundle(dto)
	if err != nil {
		return b, nil, err
	}
	widgets := make([]Widget, 0, len(dto.Widgets))
	for _, w := range dto.Widgets {
		widgets = append(widgets, Widget{
			ID:      w.ID,
			Title:   w.Title,
			Chart:   WidgetChart(w.Chart),
			GroupBy: WidgetGroupBy(w.GroupBy),
		})
	}
	return b, widgets, nil
}
