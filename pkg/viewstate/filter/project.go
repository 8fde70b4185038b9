package filter

import "time"

// Project is the flat record the engine filters. It mirrors what the
// projects listing endpoint returns; the engine never mutates it.
type Project struct {
	ID          string
	ClientID    string
	Name        string
	ServiceID   string
	ProjectType string
	StageName   string
	AssigneeID  string
	OwnerID     string

	DueDate        *time.Time
	TargetDate     *time.Time
	ServiceDueDate *time.Time
	StageEnteredAt time.Time

	Archived  bool
	Completed bool
}

// Viewer is the identity the listing is rendered for. Staff-level viewers
// only see work they are assigned to or own.
type Viewer struct {
	ID   string
	Role Role
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// DurationKey identifies one stage duration rule.
type DurationKey struct {
	ProjectType string
	StageName   string
}

// StageDurations maps (project type, stage) to the maximum expected hours a
// project should spend in that stage. Used to compute "behind schedule".
type StageDurations map[DurationKey]float64

// LoadState tracks the lifecycle of an auxiliary lookup the engine depends
// on. Ready is the only state in which the schedule predicate may classify.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	LoadFailed
)
