package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/ledgerflow/practice-sdk/internal/server"
	"github.com/ledgerflow/practice-sdk/modules"
	"github.com/ledgerflow/practice-sdk/modules/core/domain/aggregates/user"
	"github.com/ledgerflow/practice-sdk/modules/core/domain/entities/tenant"
	corepersistence "github.com/ledgerflow/practice-sdk/modules/core/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/offering"
	"github.com/ledgerflow/practice-sdk/modules/projects/domain/entities/stage"
	projectspersistence "github.com/ledgerflow/practice-sdk/modules/projects/infrastructure/persistence"
	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/composables"
	"github.com/ledgerflow/practice-sdk/pkg/configuration"
	"github.com/ledgerflow/practice-sdk/pkg/eventbus"
	"github.com/ledgerflow/practice-sdk/pkg/metrics"
)

func main() {
	root := &cobra.Command{
		Use:          "practice-sdk",
		Short:        "Practice management API server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newApplication(ctx context.Context) (application.Application, *pgxpool.Pool, error) {
	conf := configuration.Use()
	logger := conf.Logger()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return nil, nil, err
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(ctx, app, modules.BuiltInModules...); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return app, pool, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			app, pool, err := newApplication(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if conf.Prometheus.Enabled {
				app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus))
			}

			srv, err := server.Default(&server.DefaultOptions{
				Logger:        conf.Logger(),
				Configuration: conf,
				Application:   app,
				Pool:          pool,
			})
			if err != nil {
				return err
			}
			log.Printf("listening on %s", conf.SocketAddress)
			return srv.Start(conf.SocketAddress)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema of every registered module",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, pool, err := newApplication(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			for _, schema := range app.Schemas() {
				if err := applySchema(ctx, pool, schema); err != nil {
					return err
				}
			}
			log.Println("migrations applied")
			return nil
		},
	}
}

func applySchema(ctx context.Context, pool *pgxpool.Pool, schema fs.FS) error {
	return fs.WalkDir(schema, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		sql, err := fs.ReadFile(schema, path)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", path, err)
		}
		return nil
	})
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo tenant with users, offerings and duration rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pool, err := newApplication(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := composables.WithPool(cmd.Context(), pool)
			return composables.InTx(ctx, seed)
		},
	}
}

func seed(ctx context.Context) error {
	tenants := corepersistence.NewTenantRepository()
	created, err := tenants.Create(ctx, tenant.New("Demo Practice", "demo.localhost"))
	if err != nil {
		return err
	}
	ctx = composables.WithTenantID(ctx, created.ID)

	users := corepersistence.NewUserRepository()
	seedUsers := []user.User{
		user.New("admin@demo.localhost", "Ada Admin", user.RoleAdmin),
		user.New("manager@demo.localhost", "Morgan Manager", user.RoleManager),
		user.New("staff@demo.localhost", "Sam Staff", user.RoleStaff),
	}
	for _, u := range seedUsers {
		if _, err := users.Create(ctx, u); err != nil {
			return err
		}
	}

	offerings := projectspersistence.NewOfferingRepository()
	for _, name := range []string{"Annual Accounts", "VAT Return", "Payroll", "Bookkeeping"} {
		if _, err := offerings.Create(ctx, offering.New(name)); err != nil {
			return err
		}
	}

	stages := projectspersistence.NewStageRepository()
	rules := []stage.DurationRule{
		{ProjectType: "annual-accounts", StageName: "records-in", MaxInstanceHours: 72},
		{ProjectType: "annual-accounts", StageName: "preparation", MaxInstanceHours: 120},
		{ProjectType: "vat-return", StageName: "review", MaxInstanceHours: 48},
	}
	for _, rule := range rules {
		if err := stages.UpsertDurationRule(ctx, rule); err != nil {
			return err
		}
	}

	log.Printf("seeded tenant %s", created.ID)
	return nil
}
