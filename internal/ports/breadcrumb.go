package ports

import "depsprobe/internal/types"

// BreadcrumbStorePort records resolved packages for install tracking.
type BreadcrumbStorePort interface {
	WriteBreadcrumbs(dir string, crumbs []types.Breadcrumb) (int, error)
}
