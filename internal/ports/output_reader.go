package ports

import "depsprobe/internal/types"

type OutputReaderPort interface {
	ReadProbePaths(path string) (types.ProbePaths, error)
	ReadPathList(path string) ([]string, error)
	ReadBreadcrumbs(path string) ([]types.Breadcrumb, error)
}
