package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"depsprobe/internal/ports"
	"depsprobe/internal/types"
)

const (
	TPAListFile        = "tpa.list"
	NativeListFile     = "native.list"
	ResourcesListFile  = "resources.list"
	ProbePathsFile     = "probe.paths"
	BreadcrumbListFile = "breadcrumbs.list"
)

type OutputFileAdapter struct {
	Fs  afero.Fs
	Dir string
}

func NewOutputFileAdapter(fs afero.Fs, dir string) OutputFileAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return OutputFileAdapter{Fs: fs, Dir: dir}
}

// WriteProbePaths writes one list file per asset type, in resolution
// order, plus a key=value summary consumable by a launcher.
func (a OutputFileAdapter) WriteProbePaths(paths types.ProbePaths) error {
	lists := []struct {
		name  string
		items []string
	}{
		{TPAListFile, paths.TPA},
		{NativeListFile, paths.Native},
		{ResourcesListFile, paths.Resources},
	}
	for _, list := range lists {
		if err := a.writeLines(list.name, list.items); err != nil {
			return err
		}
	}
	separator := string(os.PathListSeparator)
	content := fmt.Sprintf(
		"tpa=%s\nnative=%s\nresources=%s\ncoreclr=%s\nclrjit=%s\ncoreclr_version=%s\n",
		strings.Join(paths.TPA, separator),
		strings.Join(paths.NativeDirs, separator),
		strings.Join(paths.ResourceDirs, separator),
		paths.CoreCLR,
		paths.CLRJit,
		paths.CoreCLRVersion,
	)
	return a.write(ProbePathsFile, []byte(content))
}

func (a OutputFileAdapter) WriteBreadcrumbs(crumbs []types.Breadcrumb) error {
	lines := make([]string, 0, len(crumbs))
	for _, crumb := range crumbs {
		lines = append(lines, crumb.String())
	}
	return a.writeLines(BreadcrumbListFile, lines)
}

func (a OutputFileAdapter) writeLines(filename string, lines []string) error {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return a.write(filename, []byte(content))
}

func (a OutputFileAdapter) write(filename string, data []byte) error {
	path, err := a.ensurePath(filename)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", filename)).
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := a.Fs.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
