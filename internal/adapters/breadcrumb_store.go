package adapters

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"depsprobe/internal/ports"
	"depsprobe/internal/types"
)

// BreadcrumbStoreAdapter leaves one empty marker file per resolved package
// in the servicing breadcrumb store, so servicing tools can tell which
// packages are in use.
type BreadcrumbStoreAdapter struct {
	Fs afero.Fs
}

func NewBreadcrumbStoreAdapter(fs afero.Fs) BreadcrumbStoreAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return BreadcrumbStoreAdapter{Fs: fs}
}

// WriteBreadcrumbs returns the number of markers created. A store directory
// that does not exist is not an error: nothing is written.
func (a BreadcrumbStoreAdapter) WriteBreadcrumbs(dir string, crumbs []types.Breadcrumb) (int, error) {
	if strings.TrimSpace(dir) == "" {
		return 0, nil
	}
	exists, err := afero.DirExists(a.Fs, dir)
	if err != nil || !exists {
		return 0, nil
	}
	written := 0
	for _, crumb := range crumbs {
		if strings.TrimSpace(crumb.Name) == "" {
			continue
		}
		path := filepath.Join(dir, crumb.String())
		if ok, _ := afero.Exists(a.Fs, path); ok {
			continue
		}
		if err := afero.WriteFile(a.Fs, path, nil, 0644); err != nil {
			return written, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write breadcrumb " + crumb.String()).
				WithCause(err)
		}
		written++
	}
	return written, nil
}

var _ ports.BreadcrumbStorePort = BreadcrumbStoreAdapter{}
