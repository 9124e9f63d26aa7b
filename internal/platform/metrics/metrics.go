// Package metrics exposes the Prometheus scrape endpoint. Domain metrics are
// registered by the circulation and payment packages themselves.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
