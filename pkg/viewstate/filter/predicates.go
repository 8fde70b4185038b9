package filter

import "time"

// Verdict is the tri-state result of one predicate. Skip suppresses the
// record entirely regardless of other predicates: it is used when required
// auxiliary data is unavailable and the record can be neither correctly
// included nor excluded.
type Verdict int

const (
	Fail Verdict = iota
	Pass
	Skip
)

func boolVerdict(ok bool) Verdict {
	if ok {
		return Pass
	}
	return Fail
}

// MatchesService tests service (offering) membership.
func MatchesService(p Project, service string) Verdict {
	if service == All || service == "" {
		return Pass
	}
	return boolVerdict(p.ServiceID == service)
}

// MatchesAssignee tests the current task assignee.
func MatchesAssignee(p Project, assignee string) Verdict {
	if assignee == All || assignee == "" {
		return Pass
	}
	return boolVerdict(p.AssigneeID == assignee)
}

// MatchesOwner tests the service owner.
func MatchesOwner(p Project, owner string) Verdict {
	if owner == All || owner == "" {
		return Pass
	}
	return boolVerdict(p.OwnerID == owner)
}

// MatchesUser tests the user dimension: the project involves the user as
// either assignee or owner.
func MatchesUser(p Project, user string) Verdict {
	if user == All || user == "" {
		return Pass
	}
	return boolVerdict(p.AssigneeID == user || p.OwnerID == user)
}

// VisibleToViewer applies role-based visibility: staff only see projects
// they are assigned to or own. Admins and managers see everything.
func VisibleToViewer(p Project, viewer Viewer) Verdict {
	if viewer.Role != RoleStaff || viewer.ID == "" {
		return Pass
	}
	return boolVerdict(p.AssigneeID == viewer.ID || p.OwnerID == viewer.ID)
}

// MatchesDateRange tests the due date against the dynamic date bucket, or
// against the custom range when the bucket is DateCustom. Projects without
// a due date only pass the unfiltered bucket.
func MatchesDateRange(p Project, bucket DynamicDate, custom DateRange, now time.Time) Verdict {
	if bucket == DateAll || bucket == "" {
		return Pass
	}
	if p.DueDate == nil {
		return Fail
	}
	due := *p.DueDate
	switch bucket {
	case DateToday:
		return boolVerdict(sameDay(due, now))
	case DateThisWeek:
		start := startOfWeek(now)
		return boolVerdict(!due.Before(start) && due.Before(start.AddDate(0, 0, 7)))
	case DateThisMonth:
		return boolVerdict(due.Year() == now.Year() && due.Month() == now.Month())
	case DateOverdue:
		return boolVerdict(due.Before(startOfDay(now)) && !p.Completed)
	case DateCustom:
		if custom.From != nil && due.Before(startOfDay(*custom.From)) {
			return Fail
		}
		if custom.To != nil && due.After(endOfDay(*custom.To)) {
			return Fail
		}
		return Pass
	}
	return Pass
}

// MatchesServiceDueDate applies the same buckets to the service due date.
func MatchesServiceDueDate(p Project, bucket DynamicDate, now time.Time) Verdict {
	if bucket == DateAll || bucket == "" {
		return Pass
	}
	if p.ServiceDueDate == nil {
		return Fail
	}
	shifted := p
	shifted.DueDate = p.ServiceDueDate
	return MatchesDateRange(shifted, bucket, DateRange{}, now)
}

// MatchesSchedule classifies the project as on or behind schedule using the
// stage-duration lookup. While the lookup is pending or failed and the
// filter demands a classification, every record is Skipped: provisional
// exclusion is preferable to presenting unvalidated "on schedule" data.
func MatchesSchedule(p Project, status ScheduleStatus, durations StageDurations, state LoadState, now time.Time) Verdict {
	if status == ScheduleAll || status == "" {
		return Pass
	}
	if state != LoadReady {
		return Skip
	}
	maxHours, ok := durations[DurationKey{ProjectType: p.ProjectType, StageName: p.StageName}]
	if !ok {
		// No rule for this stage: the project cannot be behind.
		return boolVerdict(status == ScheduleOn)
	}
	behind := now.Sub(p.StageEnteredAt).Hours() > maxHours
	if status == ScheduleBehind {
		return boolVerdict(behind)
	}
	return boolVerdict(!behind)
}

// MatchesArchive applies archive visibility. Kanban boards never render
// archived lanes, so in kanban mode archived projects are excluded no
// matter what the toggle says. This asymmetry is a product rule.
func MatchesArchive(p Project, showArchived bool, mode PresentationMode) Verdict {
	if !p.Archived {
		return Pass
	}
	if mode == ModeKanban {
		return Fail
	}
	return boolVerdict(showArchived)
}

// MatchesCompleted applies the completed-visibility toggle.
func MatchesCompleted(p Project, showCompleted bool) Verdict {
	if !p.Completed {
		return Pass
	}
	return boolVerdict(showCompleted)
}

// MatchesClientProjectTypes passes when the project's type is in the set,
// or when the set is empty.
func MatchesClientProjectTypes(p Project, types []string) Verdict {
	if len(types) == 0 {
		return Pass
	}
	for _, t := range types {
		if p.ProjectType == t {
			return Pass
		}
	}
	return Fail
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// startOfWeek returns the preceding Monday (or t itself on a Monday).
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}
