package ports

import "depsprobe/internal/types"

type SBOMPort interface {
	WriteSBOM(path string, appName string, createdAt string, crumbs []types.Breadcrumb) error
}
