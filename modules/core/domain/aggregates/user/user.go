package user

import (
	"time"

	"github.com/google/uuid"
)

// Role determines how much of the project listing a member sees. Staff only
// see work assigned to or owned by them; admins and managers see all of it.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

type Option func(u *user)

func WithID(id uuid.UUID) Option {
	return func(u *user) {
		u.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(u *user) {
		u.tenantID = tenantID
	}
}

func WithActive(active bool) Option {
	return func(u *user) {
		u.active = active
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(u *user) {
		u.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(u *user) {
		u.updatedAt = t
	}
}

// User is a practice staff member.
type User interface {
	ID() uuid.UUID
	TenantID() uuid.UUID
	Email() string
	Name() string
	Role() Role
	Active() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time

	SetName(name string) User
	SetRole(role Role) User
	SetActive(active bool) User
}

func New(email, name string, role Role, opts ...Option) User {
	now := time.Now()
	u := &user{
		id:        uuid.New(),
		email:     email,
		name:      name,
		role:      role,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type user struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	email     string
	name      string
	role      Role
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func (u *user) ID() uuid.UUID        { return u.id }
func (u *user) TenantID() uuid.UUID  { return u.tenantID }
func (u *user) Email() string        { return u.email }
func (u *user) Name() string         { return u.name }
func (u *user) Role() Role           { return u.role }
func (u *user) Active() bool         { return u.active }
func (u *user) CreatedAt() time.Time { return u.createdAt }
func (u *user) UpdatedAt() time.Time { return u.updatedAt }

func (u *user) SetName(name string) User {
	out := *u
	out.name = name
	out.updatedAt = time.Now()
	return &out
}

func (u *user) SetRole(role Role) User {
	out := *u
	out.role = role
	out.updatedAt = time.Now()
	return &out
}

func (u *user) SetActive(active bool) User {
	out := *u
	out.active = active
	out.updatedAt = time.Now()
	return &out
}
