package projects

import (
	"embed"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerflow/practice-sdk/modules/projects/infrastructure/cache"
	"github.com/ledgerflow/practice-sdk/modules/projects/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/projects/presentation/controllers"
	"github.com/ledgerflow/practice-sdk/modules/projects/services"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/configuration"
	"github.com/ledgerflow/practice-sdk/pkg/viewstate"
)

//go:embed infrastructure/persistence/schema/projects-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "projects"
}

func (m *Module) Register(app application.Application) error {
	cfg := configuration.Use()
	app.RegisterSchema(&MigrationFiles)

	projectRepo := persistence.NewProjectRepository()
	stageRepo := persistence.NewStageRepository()
	offeringRepo := persistence.NewOfferingRepository()
	savedViewRepo := persistence.NewSavedViewRepository()
	dashboardRepo := persistence.NewDashboardRepository()
	preferenceRepo := persistence.NewPreferenceRepository()

	var snapshots viewstate.SnapshotStore
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		snapshots = cache.NewRedisSnapshotStore(redis.NewClient(opts), cfg.Redis.SnapshotTTL)
	}

	app.RegisterServices(
		services.NewProjectService(projectRepo, stageRepo, snapshots, app.EventBus()),
		services.NewOfferingService(offeringRepo),
		services.NewSavedViewService(savedViewRepo),
		services.NewDashboardService(dashboardRepo),
		services.NewPreferenceService(preferenceRepo),
	)

	app.RegisterControllers(
		controllers.NewProjectsController(app),
		controllers.NewOfferingsController(app),
		controllers.NewViewsController(app),
		controllers.NewDashboardsController(app),
		controllers.NewPreferencesController(app),
	)
	return nil
}
