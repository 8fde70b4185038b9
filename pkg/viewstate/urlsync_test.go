package viewstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

type fakeURL struct {
	values url.Values
	sets   int
}

func newFakeURL() *fakeURL {
	return &fakeURL{values: url.Values{}}
}

func (f *fakeURL) Query() url.Values {
	out := url.Values{}
	for k, vs := range f.values {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func (f *fakeURL) SetQuery(values url.Values) {
	f.values = values
	f.sets++
}

func TestImportFromQuery_Whitelist(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set(QueryTaskAssignee, "u-1")
	values.Set(QueryServiceOwner, "u-2")
	values.Set(QueryDynamicDate, "thisWeek")
	values.Set(QueryScheduleStatus, "behind")
	values.Set("serviceFilter", "svc-1") // not importable

	b := filter.DefaultBundle()
	require.True(t, ImportFromQuery(values, &b))
	require.Equal(t, "u-1", b.TaskAssignee)
	require.Equal(t, "u-2", b.ServiceOwner)
	require.Equal(t, filter.DateThisWeek, b.DynamicDate)
	require.Equal(t, filter.ScheduleBehind, b.ScheduleStatus)
	require.Equal(t, filter.All, b.Service, "non-whitelisted keys are ignored")
}

func TestImportFromQuery_InvalidEnumIgnored(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set(QueryScheduleStatus, "bogus")
	values.Set(QueryDynamicDate, "someday")

	b := filter.DefaultBundle()
	require.False(t, ImportFromQuery(values, &b))
	require.Equal(t, filter.ScheduleAll, b.ScheduleStatus)
	require.Equal(t, filter.DateAll, b.DynamicDate)
}

func TestImportFromQuery_NoChangeReportsFalse(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set(QueryTaskAssignee, "u-1")

	b := filter.DefaultBundle()
	b.TaskAssignee = "u-1"
	require.False(t, ImportFromQuery(values, &b), "identical values must not report a change")
}

func TestExportScheduleStatus_SetAndRemove(t *testing.T) {
	t.Parallel()

	port := newFakeURL()
	ExportScheduleStatus(port, filter.ScheduleBehind)
	require.Equal(t, "behind", port.values.Get(QueryScheduleStatus))

	ExportScheduleStatus(port, filter.ScheduleAll)
	require.Empty(t, port.values.Get(QueryScheduleStatus))
}

func TestExportScheduleStatus_SkipsRedundantWrites(t *testing.T) {
	t.Parallel()

	port := newFakeURL()
	ExportScheduleStatus(port, filter.ScheduleAll)
	require.Zero(t, port.sets, "removing an absent key must not touch the URL")

	ExportScheduleStatus(port, filter.ScheduleBehind)
	ExportScheduleStatus(port, filter.ScheduleBehind)
	require.Equal(t, 1, port.sets, "identical value must not rewrite the URL")
}

func TestHasFilterParams(t *testing.T) {
	t.Parallel()

	require.False(t, HasFilterParams(url.Values{}))
	require.False(t, HasFilterParams(url.Values{"unrelated": {"x"}}))
	require.True(t, HasFilterParams(url.Values{QueryDynamicDate: {"today"}}))
}
