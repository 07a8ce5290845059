package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsprobe/internal/adapters"
)

// Inspect summarizes the output directory of a previous resolve.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	if s.OutputReader == nil {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service requires an output reader")
	}
	paths, err := s.OutputReader.ReadProbePaths(filepath.Join(outputDir, adapters.ProbePathsFile))
	if err != nil {
		return InspectResult{}, err
	}
	crumbs, err := s.OutputReader.ReadBreadcrumbs(filepath.Join(outputDir, adapters.BreadcrumbListFile))
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{
		TPACount:       len(paths.TPA),
		NativeCount:    len(paths.Native),
		ResourceCount:  len(paths.Resources),
		NativeDirs:     paths.NativeDirs,
		ResourceDirs:   paths.ResourceDirs,
		CoreCLR:        paths.CoreCLR,
		CoreCLRVersion: paths.CoreCLRVersion,
		CLRJit:         paths.CLRJit,
		Breadcrumbs:    crumbs,
	}, nil
}
