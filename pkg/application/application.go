package application

import (
	"context"
	"embed"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ledgerflow/practice-sdk/pkg/eventbus"
)

// Controller registers a group of routes on the router. Key must be unique
// per controller; registering the same key twice replaces the earlier one.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module is a self-contained feature slice (domain + persistence + services
// + controllers) that wires itself into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Pool() *pgxpool.Pool
	EventBus() eventbus.EventBus
	Logger() *logrus.Logger

	RegisterControllers(controllers ...Controller)
	RegisterServices(services ...any)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterSchema(fs *embed.FS)

	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	Schemas() []*embed.FS
	Service(service any) any
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:     opts.Pool,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
		services: map[reflect.Type]any{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	controllers map[string]Controller
	order       []string
	middleware  []mux.MiddlewareFunc
	services    map[reflect.Type]any
	schemas     []*embed.FS
}

func (a *application) Pool() *pgxpool.Pool          { return a.pool }
func (a *application) EventBus() eventbus.EventBus { return a.eventBus }
func (a *application) Logger() *logrus.Logger      { return a.logger }

func (a *application) RegisterControllers(controllers ...Controller) {
	if a.controllers == nil {
		a.controllers = map[string]Controller{}
	}
	for _, c := range controllers {
		if _, exists := a.controllers[c.Key()]; !exists {
			a.order = append(a.order, c.Key())
		}
		a.controllers[c.Key()] = c
	}
}

func (a *application) RegisterServices(services ...any) {
	for _, s := range services {
		a.services[reflect.TypeOf(s)] = s
	}
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) RegisterSchema(fs *embed.FS) {
	a.schemas = append(a.schemas, fs)
}

func (a *application) Controllers() []Controller {
	out := make([]Controller, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.controllers[key])
	}
	return out
}

func (a *application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}

func (a *application) Schemas() []*embed.FS {
	return a.schemas
}

// Service resolves a registered service by example type:
//
//	svc := app.Service(&services.ProjectService{}).(*services.ProjectService)
func (a *application) Service(service any) any {
	return a.services[reflect.TypeOf(service)]
}

// LoadModules registers every module, failing fast on the first error.
func LoadModules(ctx context.Context, app Application, modules ...Module) error {
	for _, m := range modules {
		app.Logger().WithContext(ctx).Infof("registering module %s", m.Name())
		if err := m.Register(app); err != nil {
			return err
		}
	}
	return nil
}
