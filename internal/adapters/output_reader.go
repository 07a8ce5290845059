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

type OutputReaderAdapter struct {
	Fs afero.Fs
}

func NewOutputReaderAdapter(fs afero.Fs) OutputReaderAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return OutputReaderAdapter{Fs: fs}
}

// ReadProbePaths reads probe.paths and the list files next to it.
func (a OutputReaderAdapter) ReadProbePaths(path string) (types.ProbePaths, error) {
	content, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return types.ProbePaths{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("probe.paths not found").
			WithCause(err)
	}
	paths := types.ProbePaths{}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return types.ProbePaths{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid probe.paths format")
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "native":
			paths.NativeDirs = splitPathList(value)
		case "resources":
			paths.ResourceDirs = splitPathList(value)
		case "coreclr":
			paths.CoreCLR = value
		case "clrjit":
			paths.CLRJit = value
		case "coreclr_version":
			paths.CoreCLRVersion = value
		}
	}

	dir := filepath.Dir(path)
	lists := []struct {
		name   string
		target *[]string
	}{
		{TPAListFile, &paths.TPA},
		{NativeListFile, &paths.Native},
		{ResourcesListFile, &paths.Resources},
	}
	for _, list := range lists {
		items, err := a.ReadPathList(filepath.Join(dir, list.name))
		if err != nil {
			return types.ProbePaths{}, err
		}
		*list.target = items
	}
	return paths, nil
}

func (a OutputReaderAdapter) ReadPathList(path string) ([]string, error) {
	content, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s not found", filepath.Base(path))).
			WithCause(err)
	}
	var items []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, strings.TrimSpace(line))
	}
	return items, nil
}

func (a OutputReaderAdapter) ReadBreadcrumbs(path string) ([]types.Breadcrumb, error) {
	lines, err := a.ReadPathList(path)
	if err != nil {
		return nil, err
	}
	crumbs := make([]types.Breadcrumb, 0, len(lines))
	for _, line := range lines {
		name, version, ok := strings.Cut(line, ",")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid breadcrumbs.list format")
		}
		crumbs = append(crumbs, types.Breadcrumb{Name: strings.TrimSpace(name), Version: strings.TrimSpace(version)})
	}
	return crumbs, nil
}

func splitPathList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, string(os.PathListSeparator))
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
