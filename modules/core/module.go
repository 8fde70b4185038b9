package core

import (
	"embed"

	"github.com/ledgerflow/practice-sdk/modules/core/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/core/presentation/controllers"
	"github.com/ledgerflow/practice-sdk/modules/core/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&MigrationFiles)

	userRepo := persistence.NewUserRepository()
	tenantRepo := persistence.NewTenantRepository()

	app.RegisterServices(
		services.NewUserService(userRepo, app.EventBus()),
		services.NewTenantService(tenantRepo),
	)

	app.RegisterControllers(
		controllers.NewUsersController(app),
	)
	return nil
}
