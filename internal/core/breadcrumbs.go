package core

import (
	"sort"

	"depsprobe/internal/types"
)

// BreadcrumbSet collects the packages whose assets were resolved. It is
// only ever written by the resolver and read by install-tracking writers.
type BreadcrumbSet map[types.Breadcrumb]struct{}

func (s BreadcrumbSet) Add(name string, version string) {
	if name == "" {
		return
	}
	s[types.Breadcrumb{Name: name, Version: version}] = struct{}{}
}

func (s BreadcrumbSet) Merge(other BreadcrumbSet) {
	for crumb := range other {
		s[crumb] = struct{}{}
	}
}

func (s BreadcrumbSet) Contains(name string, version string) bool {
	_, ok := s[types.Breadcrumb{Name: name, Version: version}]
	return ok
}

// Sorted returns the set ordered by name, then version.
func (s BreadcrumbSet) Sorted() []types.Breadcrumb {
	out := make([]types.Breadcrumb, 0, len(s))
	for crumb := range s {
		out = append(out, crumb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version < out[j].Version
	})
	return out
}
