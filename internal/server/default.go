package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/configuration"
	"github.com/ledgerflow/practice-sdk/pkg/constants"
	"github.com/ledgerflow/practice-sdk/pkg/middleware"
	"github.com/ledgerflow/practice-sdk/pkg/server"
)

const tenantHeader = "X-Tenant-Id"

// Paths the gateway calls without a tenant context.
var tenantExemptPaths = []string{
	"/webhooks/quickbooks",
	"/debug/prometheus",
}

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the standard middleware stack and HTTP server used by
// the API binary.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, options.Configuration.RequestIDHeader),
		middleware.Metrics(),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors(options.Configuration.Origin),
		middleware.WithTenant(tenantHeader, tenantExemptPaths...),
		middleware.RequestParams(),
	}
	app.RegisterMiddleware(middlewares...)

	return server.NewHTTPServer(app), nil
}
