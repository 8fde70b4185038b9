package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// Session auth is an external collaborator: the gateway authenticates and
// forwards the member identity in headers the API trusts.
const (
	headerMemberID   = "X-Member-Id"
	headerMemberRole = "X-Member-Role"
)

func viewerFromRequest(r *http.Request) filter.Viewer {
	role := filter.Role(r.Header.Get(headerMemberRole))
	switch role {
	case filter.RoleAdmin, filter.RoleManager, filter.RoleStaff:
	default:
		// An unknown role gets the narrowest visibility.
		role = filter.RoleStaff
	}
	return filter.Viewer{ID: r.Header.Get(headerMemberID), Role: role}
}

func memberIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get(headerMemberID))
	return id, err == nil
}

// bundleFromQuery maps listing query parameters onto a filter bundle. Keys
// match the saved-view payload schema so clients use one vocabulary.
func bundleFromQuery(r *http.Request) filter.Bundle {
	q := r.URL.Query()
	b := filter.DefaultBundle()

	if v := q.Get("serviceFilter"); v != "" {
		b.Service = v
	}
	if v := q.Get("taskAssigneeFilter"); v != "" {
		b.TaskAssignee = v
	}
	if v := q.Get("serviceOwnerFilter"); v != "" {
		b.ServiceOwner = v
	}
	if v := q.Get("userFilter"); v != "" {
		b.User = v
	}
	if v := q.Get("showArchived"); v != "" {
		b.ShowArchived = v == "true"
	}
	if v := q.Get("showCompleted"); v != "" {
		b.ShowCompleted = v == "true"
	}
	if v := filter.DynamicDate(q.Get("dynamicDateFilter")); v.IsValid() {
		b.DynamicDate = v
	}
	if v := filter.ScheduleStatus(q.Get("scheduleStatus")); v.IsValid() {
		b.ScheduleStatus = v
	}
	if v := filter.DynamicDate(q.Get("serviceDueDateFilter")); v.IsValid() {
		b.ServiceDueDate = v
	}
	if from, err := time.Parse("2006-01-02", q.Get("customDateFrom")); err == nil {
		b.CustomDateRange.From = &from
	}
	if to, err := time.Parse("2006-01-02", q.Get("customDateTo")); err == nil {
		b.CustomDateRange.To = &to
	}
	if types, ok := q["clientProjectTypes"]; ok {
		b.ClientProjectTypes = types
	}
	return b
}

func modeFromQuery(r *http.Request) filter.PresentationMode {
	if mode := filter.PresentationMode(r.URL.Query().Get("mode")); mode.IsValid() {
		return mode
	}
	return filter.ModeList
}

func pageFromQuery(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("perPage"))
	if perPage < 1 || perPage > 100 {
		perPage = filter.DefaultBundle().List.PageSize
	}
	return page, perPage
}
