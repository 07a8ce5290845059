package core

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"depsprobe/internal/shared"
	"depsprobe/internal/types"
)

// ResolveOptions controls one resolution pass.
type ResolveOptions struct {
	// MaxFxLevel bounds the framework levels walked. Negative means all.
	MaxFxLevel    int
	IgnoreMissing bool
	// RequireNativeRuntime makes a missing coreclr or clrjit fatal during
	// the native pass.
	RequireNativeRuntime bool
}

// Resolution is the outcome of one pass over a single asset type.
type Resolution struct {
	AssetType     types.AssetType
	Assets        []types.ResolvedAsset
	EnginePath    string
	EngineVersion string
	JITPath       string
}

// Paths returns the resolved file paths in resolution order.
func (r Resolution) Paths() []string {
	out := make([]string, 0, len(r.Assets))
	for _, asset := range r.Assets {
		out = append(out, asset.Path)
	}
	return out
}

// Dirs returns the distinct directories holding the resolved assets. For
// resources this is the parent of the culture directory.
func (r Resolution) Dirs() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, asset := range r.Assets {
		dir := filepath.Dir(asset.Path)
		if r.AssetType == types.AssetTypeResources {
			dir = filepath.Dir(dir)
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	return out
}

type assetSet struct {
	assetType types.AssetType
	items     []types.ResolvedAsset
	seen      map[string]struct{}
	// seeded is the key of the managed app assembly added before any
	// manifest was walked.
	seeded    string
}

func newAssetSet(assetType types.AssetType) *assetSet {
	return &assetSet{assetType: assetType, seen: map[string]struct{}{}}
}

func (s *assetSet) has(key string) bool {
	_, ok := s.seen[key]
	return ok
}

func (s *assetSet) add(key string, asset types.ResolvedAsset) {
	s.seen[key] = struct{}{}
	s.items = append(s.items, asset)
}

// Resolve walks the framework chain from the app toward the root and
// resolves every entry of assetType. The first level to resolve a name
// wins. Breadcrumbs are recorded only when the pass succeeds.
func (r *DepsResolver) Resolve(ctx context.Context, assetType types.AssetType, opts ResolveOptions) (Resolution, error) {
	if err := r.Valid(); err != nil {
		return Resolution{}, err
	}

	maxLevel := len(r.levels) - 1
	if opts.MaxFxLevel >= 0 && opts.MaxFxLevel < maxLevel {
		maxLevel = opts.MaxFxLevel
	}
	set := newAssetSet(assetType)
	crumbs := BreadcrumbSet{}
	if assetType == types.AssetTypeRuntime && r.appPath != "" {
		key := shared.AssetName(filepath.Base(r.appPath))
		addFileAsset(set, key, r.appPath, 0)
		set.seeded = key
	}

	for _, level := range r.levels[:maxLevel+1] {
		if level.Index == 0 && !level.Manifest.Exists {
			if err := r.addDirAssets(ctx, r.appDir, 0, set); err != nil {
				return Resolution{}, err
			}
			continue
		}
		for _, entry := range level.Manifest.Entries(assetType) {
			req := probeRequest{entry: entry, depsDir: level.Dir, level: level.Index, maxLevel: maxLevel}
			if err := r.resolveEntry(ctx, req, level.Index, opts, set, crumbs); err != nil {
				return Resolution{}, err
			}
		}
	}

	// Additional manifests are probed as if they belonged to the app but
	// never replace an asset the chain already resolved.
	extraLevel := len(r.levels)
	for _, manifest := range r.additional {
		for _, entry := range manifest.Entries(assetType) {
			req := probeRequest{entry: entry, depsDir: r.appDir, level: 0, maxLevel: maxLevel}
			if err := r.resolveEntry(ctx, req, extraLevel, opts, set, crumbs); err != nil {
				return Resolution{}, err
			}
		}
	}

	for _, dir := range r.probeDirs {
		if err := r.addDirAssets(ctx, dir, extraLevel, set); err != nil {
			return Resolution{}, err
		}
	}

	res := Resolution{AssetType: assetType, Assets: set.items}
	if assetType == types.AssetTypeNative {
		if err := r.locateNativeRuntime(ctx, &res, maxLevel, opts.RequireNativeRuntime && !opts.IgnoreMissing); err != nil {
			return Resolution{}, err
		}
	}

	r.breadcrumbs.Merge(crumbs)
	log.Ctx(ctx).Debug().
		Str("asset_type", assetType.String()).
		Int("max_fx_level", maxLevel).
		Int("assets", len(res.Assets)).
		Msg("asset pass resolved")
	return res, nil
}

func (r *DepsResolver) resolveEntry(ctx context.Context, req probeRequest, owner int, opts ResolveOptions, set *assetSet, crumbs BreadcrumbSet) error {
	key := req.entry.Key()
	if set.seeded != "" && key == set.seeded && owner == 0 {
		// The app's own manifest entry claims the seeded assembly.
		set.items[0].LibraryName = req.entry.LibraryName
		set.items[0].LibraryVersion = req.entry.LibraryVersion
		set.seeded = ""
		crumbs.Add(req.entry.LibraryName, req.entry.LibraryVersion)
		return nil
	}
	if set.has(key) {
		log.Ctx(ctx).Debug().
			Str("asset", key).
			Int("fx_level", owner).
			Msg("asset already resolved at a lower level")
		return nil
	}
	path, ok := r.probe(ctx, req)
	if !ok {
		if opts.IgnoreMissing || req.entry.AssetType == types.AssetTypeResources {
			log.Ctx(ctx).Debug().
				Str("asset", key).
				Str("package", req.entry.LibraryName).
				Str("version", req.entry.LibraryVersion).
				Msg("skipping unresolved asset")
			return nil
		}
		return unresolvedAssetError(req.entry)
	}
	set.add(key, types.ResolvedAsset{
		AssetType:      req.entry.AssetType,
		Name:           key,
		Path:           path,
		FxLevel:        owner,
		LibraryName:    req.entry.LibraryName,
		LibraryVersion: req.entry.LibraryVersion,
	})
	crumbs.Add(req.entry.LibraryName, req.entry.LibraryVersion)
	return nil
}

// locateNativeRuntime fills the coreclr and clrjit locations. Manifest
// entries take precedence; otherwise the framework directories are
// searched from the root down to the app.
func (r *DepsResolver) locateNativeRuntime(ctx context.Context, res *Resolution, maxLevel int, required bool) error {
	engineFile := shared.LibraryFileName("coreclr")
	jitFile := shared.LibraryFileName("clrjit")

	for _, asset := range res.Assets {
		switch filepath.Base(asset.Path) {
		case engineFile:
			if res.EnginePath == "" {
				res.EnginePath = asset.Path
				res.EngineVersion = asset.LibraryVersion
			}
		case jitFile:
			if res.JITPath == "" {
				res.JITPath = asset.Path
			}
		}
	}

	var searched []string
	if res.EnginePath == "" {
		for level := maxLevel; level >= 0; level-- {
			dir := r.levels[level].Dir
			searched = append(searched, dir)
			candidate := filepath.Join(dir, engineFile)
			if r.FS.FileExists(candidate) {
				res.EnginePath = candidate
				break
			}
		}
	}
	if res.JITPath == "" && res.EnginePath != "" {
		candidate := filepath.Join(filepath.Dir(res.EnginePath), jitFile)
		if r.FS.FileExists(candidate) {
			res.JITPath = candidate
		}
	}

	log.Ctx(ctx).Debug().
		Str("coreclr", res.EnginePath).
		Str("coreclr_version", res.EngineVersion).
		Str("clrjit", res.JITPath).
		Msg("native runtime located")

	if !required {
		return nil
	}
	if res.EnginePath == "" {
		return unresolvedRuntimeError(engineFile, searched)
	}
	if res.JITPath == "" {
		return unresolvedRuntimeError(jitFile, []string{filepath.Dir(res.EnginePath)})
	}
	return nil
}

// ResolveProbePaths runs every asset pass and flattens the result.
func (r *DepsResolver) ResolveProbePaths(ctx context.Context, opts ResolveOptions) (types.ProbePaths, error) {
	runtime, err := r.Resolve(ctx, types.AssetTypeRuntime, opts)
	if err != nil {
		return types.ProbePaths{}, err
	}
	native, err := r.Resolve(ctx, types.AssetTypeNative, opts)
	if err != nil {
		return types.ProbePaths{}, err
	}
	resources, err := r.Resolve(ctx, types.AssetTypeResources, opts)
	if err != nil {
		return types.ProbePaths{}, err
	}
	return types.ProbePaths{
		TPA:            runtime.Paths(),
		Native:         native.Paths(),
		Resources:      resources.Paths(),
		NativeDirs:     native.Dirs(),
		ResourceDirs:   resources.Dirs(),
		CoreCLR:        native.EnginePath,
		CoreCLRVersion: native.EngineVersion,
		CLRJit:         native.JITPath,
	}, nil
}
