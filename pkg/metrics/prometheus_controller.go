// Package metrics exposes the Prometheus scrape endpoint as a regular
// application controller so it registers like any other route.
package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ledgerflow/practice-sdk/pkg/application"
	"github.com/ledgerflow/practice-sdk/pkg/configuration"
)

type PrometheusController struct {
	opts configuration.PrometheusOptions
}

func NewPrometheusController(opts configuration.PrometheusOptions) application.Controller {
	if opts.Path == "" {
		opts.Path = "/debug/prometheus"
	}
	return &PrometheusController{opts: opts}
}

func (c *PrometheusController) Key() string {
	return c.opts.Path
}

func (c *PrometheusController) Register(r *mux.Router) {
	r.Handle(c.opts.Path, promhttp.Handler()).Methods(http.MethodGet)
}
