package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"depsprobe/internal/adapters"
	"depsprobe/internal/core"
	"depsprobe/internal/types"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	host, resolver, err := s.buildResolver(ctx, req.ChainPath, req.Probe)
	if err != nil {
		return ResolveResult{}, err
	}

	started := timeNow(s.Clock)
	paths, err := resolver.ResolveProbePaths(ctx, core.ResolveOptions{
		MaxFxLevel:           req.MaxFxLevel,
		IgnoreMissing:        req.IgnoreMissing,
		RequireNativeRuntime: req.RequireNativeRuntime,
	})
	if err != nil {
		return ResolveResult{}, err
	}
	elapsed := timeNow(s.Clock).Sub(started)
	crumbs := resolver.Breadcrumbs()
	appName := appNameOf(host.AppPath)

	result := ResolveResult{
		AppName:     appName,
		Paths:       paths,
		Breadcrumbs: crumbs,
	}

	if outputDir := strings.TrimSpace(req.OutputDir); outputDir != "" {
		output := adapters.NewOutputFileAdapter(s.Fs, outputDir)
		if err := output.WriteProbePaths(paths); err != nil {
			return ResolveResult{}, err
		}
		if err := output.WriteBreadcrumbs(crumbs); err != nil {
			return ResolveResult{}, err
		}
		result.OutputDir = outputDir
	}
	if dir := strings.TrimSpace(req.BreadcrumbDir); dir != "" && s.Breadcrumbs != nil {
		written, err := s.Breadcrumbs.WriteBreadcrumbs(dir, crumbs)
		if err != nil {
			return ResolveResult{}, err
		}
		result.BreadcrumbsWritten = written
	}
	if path := strings.TrimSpace(req.SBOMPath); path != "" && s.SBOMWriter != nil {
		createdAt := timeNow(s.Clock).Format(time.RFC3339)
		if err := s.SBOMWriter.WriteSBOM(path, appName, createdAt, crumbs); err != nil {
			return ResolveResult{}, err
		}
	}
	if path := strings.TrimSpace(req.MetricsFile); path != "" && s.Metrics != nil {
		summary := types.ResolutionSummary{
			AppName:    appName,
			Frameworks: len(host.Frameworks),
			Assets: map[types.AssetType]int{
				types.AssetTypeRuntime:   len(paths.TPA),
				types.AssetTypeNative:    len(paths.Native),
				types.AssetTypeResources: len(paths.Resources),
			},
			Breadcrumbs: len(crumbs),
			DurationSec: elapsed.Seconds(),
		}
		if err := s.Metrics.WriteMetrics(path, summary); err != nil {
			return ResolveResult{}, err
		}
	}

	log.Ctx(ctx).Info().
		Str("app", appName).
		Int("tpa", len(paths.TPA)).
		Int("native", len(paths.Native)).
		Int("resources", len(paths.Resources)).
		Int("breadcrumbs", len(crumbs)).
		Str("coreclr", paths.CoreCLR).
		Msg("probe paths resolved")
	return result, nil
}

func appNameOf(appPath string) string {
	base := filepath.Base(appPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
