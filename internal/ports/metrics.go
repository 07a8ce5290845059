package ports

import "depsprobe/internal/types"

type MetricsPort interface {
	WriteMetrics(path string, summary types.ResolutionSummary) error
}
