// Package project holds the engagement aggregate. A project is one unit of
// recurring client work (a VAT return, a payroll run) moving through the
// stages of an offering's workflow.
package project

import (
	"time"

	"github.com/google/uuid"
)

type Option func(p *project)

func WithID(id uuid.UUID) Option {
	return func(p *project) { p.id = id }
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(p *project) { p.tenantID = tenantID }
}

func WithAssigneeID(id uuid.UUID) Option {
	return func(p *project) { p.assigneeID = id }
}

func WithOwnerID(id uuid.UUID) Option {
	return func(p *project) { p.ownerID = id }
}

func WithDueDate(t *time.Time) Option {
	return func(p *project) { p.dueDate = t }
}

func WithTargetDate(t *time.Time) Option {
	return func(p *project) { p.targetDate = t }
}

func WithServiceDueDate(t *time.Time) Option {
	return func(p *project) { p.serviceDueDate = t }
}

func WithStage(name string, enteredAt time.Time) Option {
	return func(p *project) {
		p.stageName = name
		p.stageEnteredAt = enteredAt
	}
}

func WithArchived(archived bool) Option {
	return func(p *project) { p.archived = archived }
}

func WithCompleted(completed bool) Option {
	return func(p *project) { p.completed = completed }
}

func WithCreatedAt(t time.Time) Option {
	return func(p *project) { p.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(p *project) { p.updatedAt = t }
}

type Project interface {
	ID() uuid.UUID
	TenantID() uuid.UUID
	ClientID() uuid.UUID
	Name() string
	OfferingID() uuid.UUID
	ProjectType() string
	StageName() string
	StageEnteredAt() time.Time
	AssigneeID() uuid.UUID
	OwnerID() uuid.UUID
	DueDate() *time.Time
	TargetDate() *time.Time
	ServiceDueDate() *time.Time
	Archived() bool
	Completed() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time

	MoveToStage(name string) Project
	Assign(assigneeID uuid.UUID) Project
	Archive() Project
	Restore() Project
	Complete() Project
}

func New(clientID uuid.UUID, name string, offeringID uuid.UUID, projectType string, opts ...Option) Project {
	now := time.Now()
	p := &project{
		id:             uuid.New(),
		clientID:       clientID,
		name:           name,
		offeringID:     offeringID,
		projectType:    projectType,
		stageEnteredAt: now,
		createdAt:      now,
		updatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type project struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	clientID       uuid.UUID
	name           string
	offeringID     uuid.UUID
	projectType    string
	stageName      string
	stageEnteredAt time.Time
	assigneeID     uuid.UUID
	ownerID        uuid.UUID
	dueDate        *time.Time
	targetDate     *time.Time
	serviceDueDate *time.Time
	archived       bool
	completed      bool
	createdAt      time.Time
	updatedAt      time.Time
}

func (p *project) ID() uuid.UUID             { return p.id }
func (p *project) TenantID() uuid.UUID       { return p.tenantID }
func (p *project) ClientID() uuid.UUID       { return p.clientID }
func (p *project) Name() string              { return p.name }
func (p *project) OfferingID() uuid.UUID     { return p.offeringID }
func (p *project) ProjectType() string       { return p.projectType }
func (p *project) StageName() string         { return p.stageName }
func (p *project) StageEnteredAt() time.Time { return p.stageEnteredAt }
func (p *project) AssigneeID() uuid.UUID     { return p.assigneeID }
func (p *project) OwnerID() uuid.UUID        { return p.ownerID }
func (p *project) DueDate() *time.Time       { return p.dueDate }
func (p *project) TargetDate() *time.Time    { return p.targetDate }
func (p *project) ServiceDueDate() *time.Time { return p.serviceDueDate }
func (p *project) Archived() bool            { return p.archived }
func (p *project) Completed() bool           { return p.completed }
func (p *project) CreatedAt() time.Time      { return p.createdAt }
func (p *project) UpdatedAt() time.Time      { return p.updatedAt }

func (p *project) MoveToStage(name string) Project {
	out := *p
	out.stageName = name
	out.stageEnteredAt = time.Now()
	out.updatedAt = out.stageEnteredAt
	return &out
}

func (p *project) Assign(assigneeID uuid.UUID) Project {
	out := *p
	out.assigneeID = assigneeID
	out.updatedAt = time.Now()
	return &out
}

func (p *project) Archive() Project {
	out := *p
	out.archived = true
	out.updatedAt = time.Now()
	return &out
}

func (p *project) Restore() Project {
	out := *p
	out.archived = false
	out.updatedAt = time.Now()
	return &out
}

func (p *project) Complete() Project {
	out := *p
	out.completed = true
	out.updatedAt = time.Now()
	return &out
}
