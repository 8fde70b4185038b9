package dtos

import (
	"time"

	"github.com/ledgerflow/practice-sdk/pkg/viewstate/filter"
)

// ListingRecord is the flat engine-record shape of the filtered listing.
type ListingRecord struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"clientId"`
	Name           string     `json:"name"`
	ServiceID      string     `json:"serviceId"`
	ProjectType    string     `json:"projectType"`
	StageName      string     `json:"stageName"`
	AssigneeID     string     `json:"assigneeId,omitempty"`
	OwnerID        string     `json:"ownerId,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	TargetDate     *time.Time `json:"targetDate,omitempty"`
	ServiceDueDate *time.Time `json:"serviceDueDate,omitempty"`
	Archived       bool       `json:"archived"`
	Completed      bool       `json:"completed"`
}

func NewListingRecord(p filter.Project) ListingRecord {
	return ListingRecord{
		ID:             p.ID,
		ClientID:       p.ClientID,
		Name:           p.Name,
		ServiceID:      p.ServiceID,
		ProjectType:    p.ProjectType,
		StageName:      p.StageName,
		AssigneeID:     p.AssigneeID,
		OwnerID:        p.OwnerID,
		DueDate:        p.DueDate,
		TargetDate:     p.TargetDate,
		ServiceDueDate: p.ServiceDueDate,
		Archived:       p.Archived,
		Completed:      p.Completed,
	}
}

// ListingEnvelope carries the page plus the projection metadata the client
// store mirrors.
type ListingEnvelope struct {
	Data       []ListingRecord `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int             `json:"totalPages"`
	FromCache  bool            `json:"fromCache"`
	CachedAt   *time.Time      `json:"cachedAt,omitempty"`
}
