package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Option func(c *client)

func WithID(id uuid.UUID) Option {
	return func(c *client) {
		c.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(c *client) {
		c.tenantID = tenantID
	}
}

func WithCompanyNumber(number string) Option {
	return func(c *client) {
		c.companyNumber = number
	}
}

func WithEmail(email string) Option {
	return func(c *client) {
		c.email = email
	}
}

func WithAnnualFee(fee decimal.Decimal) Option {
	return func(c *client) {
		c.annualFee = fee
	}
}

func WithActive(active bool) Option {
	return func(c *client) {
		c.active = active
	}
}

func WithIncorporatedAt(t *time.Time) Option {
	return func(c *client) {
		c.incorporatedAt = t
	}
}

func WithRegisteredAddress(address string) Option {
	return func(c *client) {
		c.registeredAddress = address
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(c *client) {
		c.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(c *client) {
		c.updatedAt = t
	}
}

// Client is a business the practice does work for. CompanyNumber,
// IncorporatedAt and RegisteredAddress come from the company registry when
// the record has been enriched.
type Client interface {
	ID() uuid.UUID
	TenantID() uuid.UUID
	Name() string
	CompanyNumber() string
	Email() string
	AnnualFee() decimal.Decimal
	Active() bool
	IncorporatedAt() *time.Time
	RegisteredAddress() string
	CreatedAt() time.Time
	UpdatedAt() time.Time

	SetName(name string) Client
	SetEmail(email string) Client
	SetAnnualFee(fee decimal.Decimal) Client
	SetActive(active bool) Client
	SetRegistryProfile(companyNumber, registeredAddress string, incorporatedAt *time.Time) Client
}

func New(name string, opts ...Option) Client {
	now := time.Now()
	c := &client{
		id:        uuid.New(),
		name:      name,
		annualFee: decimal.Zero,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type client struct {
	id                uuid.UUID
	tenantID          uuid.UUID
	name              string
	companyNumber     string
	email             string
	annualFee         decimal.Decimal
	active            bool
	incorporatedAt    *time.Time
	registeredAddress string
	createdAt         time.Time
	updatedAt         time.Time
}

func (c *client) ID() uuid.UUID               { return c.id }
func (c *client) TenantID() uuid.UUID         { return c.tenantID }
func (c *client) Name() string                { return c.name }
func (c *client) CompanyNumber() string       { return c.companyNumber }
func (c *client) Email() string               { return c.email }
func (c *client) AnnualFee() decimal.Decimal  { return c.annualFee }
func (c *client) Active() bool                { return c.active }
func (c *client) IncorporatedAt() *time.Time  { return c.incorporatedAt }
func (c *client) RegisteredAddress() string   { return c.registeredAddress }
func (c *client) CreatedAt() time.Time        { return c.createdAt }
func (c *client) UpdatedAt() time.Time        { return c.updatedAt }

func (c *client) SetName(name string) Client {
	out := *c
	out.name = name
	out.updatedAt = time.Now()
	return &out
}

func (c *client) SetEmail(email string) Client {
	out := *c
	out.email = email
	out.updatedAt = time.Now()
	return &out
}

func (c *client) SetAnnualFee(fee decimal.Decimal) Client {
	out := *c
	out.annualFee = fee
	out.updatedAt = time.Now()
	return &out
}

func (c *client) SetActive(active bool) Client {
	out := *c
	out.active = active
	out.updatedAt = time.Now()
	return &out
}

func (c *client) SetRegistryProfile(companyNumber, registeredAddress string, incorporatedAt *time.Time) Client {
	out := *c
	out.companyNumber = companyNumber
	out.registeredAddress = registeredAddress
	out.incorporatedAt = incorporatedAt
	out.updatedAt = time.Now()
	return &out
}
