package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a private registry holding the mock backend metrics and
// the Go runtime collector. Every mock server gets its own, so several can run
// in one test binary.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return reg, NewMetrics(reg)
}

// StoreSize is a named size of the in-memory store, sampled on scrape.
type StoreSize struct {
	Name string
	Help string
	Size func() int
}

// TrackStore registers one gauge per size under hrconsole_mock_store_.
func TrackStore(reg prometheus.Registerer, sizes ...StoreSize) error {
	for _, s := range sizes {
		size := s.Size
		g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "hrconsole_mock",
			Subsystem: "store",
			Name:      s.Name,
			Help:      s.Help,
		}, func() float64 { return float64(size()) })
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}

// HandlerFor serves the registry. A failing collector drops its own series
// instead of failing the scrape.
func HandlerFor(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:      reg,
		ErrorHandling: promhttp.ContinueOnError,
	})
}
