package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"depsprobe/internal/ports"
	"depsprobe/internal/types"
)

const metricsNamespace = "depsprobe"

// MetricsTextfileAdapter writes resolution gauges in the Prometheus text
// exposition format, suitable for the node exporter textfile collector.
type MetricsTextfileAdapter struct{}

func NewMetricsTextfileAdapter() MetricsTextfileAdapter {
	return MetricsTextfileAdapter{}
}

func (a MetricsTextfileAdapter) WriteMetrics(path string, summary types.ResolutionSummary) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metrics file path is empty")
	}
	labels := prometheus.Labels{"app": summary.AppName}
	registry := prometheus.NewRegistry()

	resolvedAssets := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "resolved_assets",
			Help:        "Number of assets resolved per asset type",
			ConstLabels: labels,
		},
		[]string{"asset_type"},
	)
	breadcrumbs := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Name:        "breadcrumbs",
		Help:        "Number of distinct packages resolved",
		ConstLabels: labels,
	})
	frameworks := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Name:        "frameworks",
		Help:        "Number of shared frameworks in the chain",
		ConstLabels: labels,
	})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Name:        "resolution_duration_seconds",
		Help:        "Wall time spent resolving every asset type",
		ConstLabels: labels,
	})
	registry.MustRegister(resolvedAssets, breadcrumbs, frameworks, duration)

	for _, assetType := range types.AssetTypes {
		resolvedAssets.WithLabelValues(assetType.String()).Set(float64(summary.Assets[assetType]))
	}
	breadcrumbs.Set(float64(summary.Breadcrumbs))
	frameworks.Set(float64(summary.Frameworks))
	duration.Set(summary.DurationSec)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create metrics directory").
			WithCause(err)
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile").
			WithCause(err)
	}
	return nil
}

var _ ports.MetricsPort = MetricsTextfileAdapter{}
