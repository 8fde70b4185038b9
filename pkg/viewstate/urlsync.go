package viewstate

import (
	"net/url"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// URLPort abstracts the browser address bar (or any query-string carrier)
// so the engine stays testable without one.
type URLPort interface {
	Query() url.Values
	SetQuery(url.Values)
}

// Query keys addressable from outside. Import reads all four; export writes
// only the schedule status — the one dimension meant to be deep-linkable.
// The asymmetry is deliberate and must not be "completed" into symmetry.
const (
	QueryTaskAssignee   = "taskAssigneeFilter"
	QueryServiceOwner   = "serviceOwnerFilter"
	QueryDynamicDate    = "dynamicDateFilter"
	QueryScheduleStatus = "scheduleStatus"
)

var importKeys = []string{QueryTaskAssignee, QueryServiceOwner, QueryDynamicDate, QueryScheduleStatus}

// HasFilterParams reports whether the query string carries any importable
// filter key. Deep links win over stored defaults.
func HasFilterParams(values url.Values) bool {
	for _, key := range importKeys {
		if values.Get(key) != "" {
			return true
		}
	}
	return false
}

// ImportFromQuery overwrites bundle fields from the whitelisted query keys.
// Enum-valued keys are validated and silently ignored when invalid. Returns
// whether anything actually changed, so callers can skip redundant
// recomputes.
func ImportFromQuery(values url.Values, b *filter.Bundle) bool {
	changed := false

	if v := values.Get(QueryTaskAssignee); v != "" && v != b.TaskAssignee {
		b.TaskAssignee = v
		changed = true
	}
	if v := values.Get(QueryServiceOwner); v != "" && v != b.ServiceOwner {
		b.ServiceOwner = v
		changed = true
	}
	if v := values.Get(QueryDynamicDate); v != "" {
		if d := filter.DynamicDate(v); d.IsValid() && d != b.DynamicDate {
			b.DynamicDate = d
			changed = true
		}
	}
	if v := values.Get(QueryScheduleStatus); v != "" {
		if s := filter.ScheduleStatus(v); s.IsValid() && s != b.ScheduleStatus {
			b.ScheduleStatus = s
			changed = true
		}
	}
	return changed
}

// ExportScheduleStatus mirrors the schedule filter into the URL: set when
// non-default, removed when reset.
func ExportScheduleStatus(port URLPort, status filter.ScheduleStatus) {
	if port == nil {
		return
	}
	values := port.Query()
	current := values.Get(QueryScheduleStatus)
	if status == filter.ScheduleAll || status == "" {
		if current == "" {
			return
		}
		values.Del(QueryScheduleStatus)
	} else {
		if current == string(status) {
			return
		}
		values.Set(QueryScheduleStatus, string(status))
	}
	port.SetQuery(values)
}
