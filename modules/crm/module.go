package crm

import (
	"embed"

	"github.com/ledgerflow/practice-sdk/modules/crm/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/crm/infrastructure/registry"
	"github.com/ledgerflow/practice-sdk/modules/crm/presentation/controllers"
	"github.com/ledgerflow/practice-sdk/modules/crm/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/configuration"
	"github.com/ledgerflow/practice-sdk/pkg/webhooks"
)

//go:embed infrastructure/persistence/schema/crm-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "crm"
}

func (m *Module) Register(app application.Application) error {
	cfg := configuration.Use()
	app.RegisterSchema(&MigrationFiles)

	clientRepo := persistence.NewClientRepository()
	companyRegistry := registry.NewHTTPRegistry(cfg.Registry)

	app.RegisterServices(
		services.NewClientService(clientRepo, companyRegistry, app.EventBus()),
	)

	verifier := webhooks.NewVerifier(cfg.Webhooks.QuickBooksSecret, cfg.Webhooks.ReplayWindow)
	app.RegisterControllers(
		controllers.NewClientsController(app),
		controllers.NewQuickBooksController(app, verifier),
	)
	return nil
}
