package ports

import "depsprobe/internal/types"

type OutputPort interface {
	WriteProbePaths(paths types.ProbePaths) error
	WriteBreadcrumbs(crumbs []types.Breadcrumb) error
}
