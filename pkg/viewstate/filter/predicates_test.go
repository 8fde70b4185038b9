package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC) // a Wednesday

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	return &t
}

func TestMatchesService(t *testing.T) {
	t.Parallel()

	p := Project{ServiceID: "svc-1"}
	require.Equal(t, Pass, MatchesService(p, All))
	require.Equal(t, Pass, MatchesService(p, ""))
	require.Equal(t, Pass, MatchesService(p, "svc-1"))
	require.Equal(t, Fail, MatchesService(p, "svc-2"))
}

func TestMatchesUser_AssigneeOrOwner(t *testing.T) {
	t.Parallel()

	p := Project{AssigneeID: "u1", OwnerID: "u2"}
	require.Equal(t, Pass, MatchesUser(p, "u1"))
	require.Equal(t, Pass, MatchesUser(p, "u2"))
	require.Equal(t, Fail, MatchesUser(p, "u3"))
}

func TestVisibleToViewer(t *testing.T) {
	t.Parallel()

	p := Project{AssigneeID: "u1", OwnerID: "u2"}
	require.Equal(t, Pass, VisibleToViewer(p, Viewer{ID: "u9", Role: RoleAdmin}))
	require.Equal(t, Pass, VisibleToViewer(p, Viewer{ID: "u9", Role: RoleManager}))
	require.Equal(t, Pass, VisibleToViewer(p, Viewer{ID: "u1", Role: RoleStaff}))
	require.Equal(t, Fail, VisibleToViewer(p, Viewer{ID: "u9", Role: RoleStaff}))
}

func TestMatchesDateRange_Buckets(t *testing.T) {
	t.Parallel()

	today := Project{DueDate: datePtr(2026, 3, 18)}
	nextWeek := Project{DueDate: datePtr(2026, 3, 27)}
	lastMonth := Project{DueDate: datePtr(2026, 2, 10)}
	noDue := Project{}

	require.Equal(t, Pass, MatchesDateRange(noDue, DateAll, DateRange{}, now))
	require.Equal(t, Fail, MatchesDateRange(noDue, DateToday, DateRange{}, now))

	require.Equal(t, Pass, MatchesDateRange(today, DateToday, DateRange{}, now))
	require.Equal(t, Fail, MatchesDateRange(nextWeek, DateToday, DateRange{}, now))

	require.Equal(t, Pass, MatchesDateRange(today, DateThisWeek, DateRange{}, now))
	require.Equal(t, Fail, MatchesDateRange(nextWeek, DateThisWeek, DateRange{}, now))

	require.Equal(t, Pass, MatchesDateRange(nextWeek, DateThisMonth, DateRange{}, now))
	require.Equal(t, Fail, MatchesDateRange(lastMonth, DateThisMonth, DateRange{}, now))

	require.Equal(t, Pass, MatchesDateRange(lastMonth, DateOverdue, DateRange{}, now))
	require.Equal(t, Fail, MatchesDateRange(nextWeek, DateOverdue, DateRange{}, now))

	completed := Project{DueDate: datePtr(2026, 2, 10), Completed: true}
	require.Equal(t, Fail, MatchesDateRange(completed, DateOverdue, DateRange{}, now))
}

func TestMatchesDateRange_CustomRange(t *testing.T) {
	t.Parallel()

	p := Project{DueDate: datePtr(2026, 3, 15)}
	in := DateRange{From: datePtr(2026, 3, 1), To: datePtr(2026, 3, 31)}
	before := DateRange{From: datePtr(2026, 3, 16), To: nil}
	after := DateRange{From: nil, To: datePtr(2026, 3, 14)}

	require.Equal(t, Pass, MatchesDateRange(p, DateCustom, in, now))
	require.Equal(t, Fail, MatchesDateRange(p, DateCustom, before, now))
	require.Equal(t, Fail, MatchesDateRange(p, DateCustom, after, now))
	require.Equal(t, Pass, MatchesDateRange(p, DateCustom, DateRange{}, now))
}

func TestMatchesSchedule(t *testing.T) {
	t.Parallel()

	durations := StageDurations{
		{ProjectType: "vat", StageName: "review"}: 24,
	}
	onTime := Project{ProjectType: "vat", StageName: "review", StageEnteredAt: now.Add(-12 * time.Hour)}
	behind := Project{ProjectType: "vat", StageName: "review", StageEnteredAt: now.Add(-48 * time.Hour)}

	require.Equal(t, Pass, MatchesSchedule(onTime, ScheduleOn, durations, LoadReady, now))
	require.Equal(t, Fail, MatchesSchedule(onTime, ScheduleBehind, durations, LoadReady, now))
	require.Equal(t, Pass, MatchesSchedule(behind, ScheduleBehind, durations, LoadReady, now))
	require.Equal(t, Fail, MatchesSchedule(behind, ScheduleOn, durations, LoadReady, now))

	// No rule for the stage: cannot be behind.
	noRule := Project{ProjectType: "payroll", StageName: "intake", StageEnteredAt: now.Add(-1000 * time.Hour)}
	require.Equal(t, Pass, MatchesSchedule(noRule, ScheduleOn, durations, LoadReady, now))
	require.Equal(t, Fail, MatchesSchedule(noRule, ScheduleBehind, durations, LoadReady, now))
}

func TestMatchesSchedule_LookupUnavailableSkipsEveryRecord(t *testing.T) {
	t.Parallel()

	behind := Project{ProjectType: "vat", StageName: "review", StageEnteredAt: now.Add(-48 * time.Hour)}
	for _, state := range []LoadState{LoadPending, LoadFailed} {
		require.Equal(t, Skip, MatchesSchedule(behind, ScheduleBehind, nil, state, now))
		require.Equal(t, Skip, MatchesSchedule(behind, ScheduleOn, nil, state, now))
	}
	// The unfiltered state never needs the lookup.
	require.Equal(t, Pass, MatchesSchedule(behind, ScheduleAll, nil, LoadFailed, now))
}

func TestMatchesArchive_KanbanOverride(t *testing.T) {
	t.Parallel()

	archived := Project{Archived: true}
	live := Project{}

	// Kanban excludes archived projects even with the toggle on.
	require.Equal(t, Fail, MatchesArchive(archived, true, ModeKanban))
	require.Equal(t, Fail, MatchesArchive(archived, false, ModeKanban))
	require.Equal(t, Pass, MatchesArchive(archived, true, ModeList))
	require.Equal(t, Fail, MatchesArchive(archived, false, ModeList))
	require.Equal(t, Pass, MatchesArchive(live, false, ModeKanban))
}

func TestMatchesClientProjectTypes(t *testing.T) {
	t.Parallel()

	p := Project{ProjectType: "vat"}
	require.Equal(t, Pass, MatchesClientProjectTypes(p, nil))
	require.Equal(t, Pass, MatchesClientProjectTypes(p, []string{"payroll", "vat"}))
	require.Equal(t, Fail, MatchesClientProjectTypes(p, []string{"payroll"}))
}

func TestStartOfWeek_MondayBased(t *testing.T) {
	t.Parallel()

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	require.Equal(t, monday, startOfWeek(now))
	require.Equal(t, monday, startOfWeek(monday.Add(3*time.Hour)))
	sunday := time.Date(2026, 3, 22, 23, 0, 0, 0, time.UTC)
	require.Equal(t, monday, startOfWeek(sunday))
}
