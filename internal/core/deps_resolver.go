package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"depsprobe/internal/ports"
	"depsprobe/internal/shared"
	"depsprobe/internal/types"
)

// Options describes one application launch: the app, its framework chain
// and the probe locations configured by the host.
type Options struct {
	AppDir      string
	AppDepsFile string
	// AppPath is the managed app assembly. When set it is always the first
	// TPA entry, whether or not the app manifest lists it.
	AppPath string
	// Frameworks are ordered app-nearest first; the last entry is the
	// root framework.
	Frameworks     []types.FrameworkReference
	AdditionalDeps []string
	ProbeDirs      []string
	SharedStores   []string
	ServicingRoot  string
	Arch           string
	TFM            string
}

// DepsResolver owns the manifests of one launch and resolves their assets
// to files on disk. Manifests are loaded once at construction and are
// read-only afterwards.
type DepsResolver struct {
	FS ports.FileSystemPort

	appDir      string
	appPath     string
	levels      []types.FrameworkLevel
	additional  []types.Manifest
	probes      []probeConfig
	probeDirs   []string
	breadcrumbs BreadcrumbSet
}

func NewDepsResolver(ctx context.Context, opts Options, parser ports.ManifestParserPort, fs ports.FileSystemPort) (*DepsResolver, error) {
	if parser == nil || fs == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires manifest parser and filesystem ports")
	}
	if strings.TrimSpace(opts.AppDir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("app directory is required")
	}

	r := &DepsResolver{
		FS:          fs,
		appDir:      opts.AppDir,
		appPath:     strings.TrimSpace(opts.AppPath),
		breadcrumbs: BreadcrumbSet{},
	}
	r.levels = make([]types.FrameworkLevel, len(opts.Frameworks)+1)
	r.levels[0] = types.FrameworkLevel{Index: 0, Dir: opts.AppDir, DepsFile: opts.AppDepsFile}
	for i, fx := range opts.Frameworks {
		r.levels[i+1] = types.FrameworkLevel{
			Index:    i + 1,
			Name:     fx.Name,
			Version:  fx.Version,
			Dir:      fx.Dir,
			DepsFile: shared.FrameworkDepsFile(fx.Dir, fx.Name),
		}
	}

	// The root framework carries the RID fallback graph every other
	// manifest is parsed against.
	root := len(r.levels) - 1
	r.levels[root].Manifest = loadManifest(parser, r.levels[root].DepsFile, nil)
	graph := r.levels[root].Manifest.RIDFallback
	if graph == nil {
		graph = types.RIDFallbackGraph{}
	}
	for i := root - 1; i >= 0; i-- {
		r.levels[i].Manifest = loadManifest(parser, r.levels[i].DepsFile, graph)
	}

	for _, path := range r.additionalDepsFiles(ctx, opts.AdditionalDeps) {
		r.additional = append(r.additional, loadManifest(parser, path, graph))
	}

	r.setupProbeConfig(opts)

	log.Ctx(ctx).Debug().
		Str("app_dir", r.appDir).
		Int("frameworks", len(opts.Frameworks)).
		Int("additional_manifests", len(r.additional)).
		Int("probes", len(r.probes)).
		Msg("deps resolver initialized")
	return r, nil
}

func loadManifest(parser ports.ManifestParserPort, path string, graph types.RIDFallbackGraph) types.Manifest {
	manifest, err := parser.Load(path, graph)
	if err != nil {
		return types.InvalidManifest(path, err)
	}
	return manifest
}

// additionalDepsFiles expands the configured additional deps entries. A
// deps file is used as-is; a directory contributes the manifests found
// under shared/<framework>/<version> for each framework of the chain.
func (r *DepsResolver) additionalDepsFiles(ctx context.Context, entries []string) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if shared.IsDepsFile(entry) {
			if !r.FS.FileExists(entry) {
				log.Ctx(ctx).Debug().Str("path", entry).Msg("additional deps file does not exist")
				continue
			}
			add(entry)
			continue
		}
		if !r.FS.DirExists(entry) {
			log.Ctx(ctx).Debug().Str("path", entry).Msg("additional deps directory does not exist")
			continue
		}
		if !r.IsFrameworkDependent() {
			log.Ctx(ctx).Debug().Str("path", entry).Msg("additional deps directory ignored for self-contained app")
			continue
		}
		for _, level := range r.levels[1:] {
			dir := filepath.Join(entry, "shared", level.Name, level.Version)
			if !r.FS.DirExists(dir) {
				continue
			}
			files, err := r.FS.ListFiles(dir)
			if err != nil {
				log.Ctx(ctx).Debug().Err(err).Str("path", dir).Msg("unable to list additional deps directory")
				continue
			}
			for _, file := range files {
				if shared.IsDepsFile(file) {
					add(file)
				}
			}
		}
	}
	return out
}

// Valid reports the first fatal manifest problem, if any. A missing app
// manifest is allowed; a missing framework manifest is not.
func (r *DepsResolver) Valid() error {
	for _, level := range r.levels {
		if level.Index > 0 && !level.Manifest.Exists {
			return missingManifestError(level.DepsFile)
		}
		if !level.Manifest.Valid() {
			return invalidManifestError(level.DepsFile, level.Manifest.ParseErr)
		}
	}
	for _, manifest := range r.additional {
		if !manifest.Valid() {
			return invalidManifestError(manifest.Path, manifest.ParseErr)
		}
	}
	return nil
}

func (r *DepsResolver) IsFrameworkDependent() bool {
	return len(r.levels) > 1
}

// Levels returns the framework chain with the app at index 0.
func (r *DepsResolver) Levels() []types.FrameworkLevel {
	out := make([]types.FrameworkLevel, len(r.levels))
	copy(out, r.levels)
	return out
}

// AdditionalDepsFiles lists the additional manifests that were loaded.
func (r *DepsResolver) AdditionalDepsFiles() []string {
	out := make([]string, 0, len(r.additional))
	for _, manifest := range r.additional {
		out = append(out, manifest.Path)
	}
	return out
}

// ProbeDirs lists the additional probe directories that exist on disk.
func (r *DepsResolver) ProbeDirs() []string {
	return append([]string(nil), r.probeDirs...)
}

// Breadcrumbs returns the packages resolved by every successful pass so
// far, sorted.
func (r *DepsResolver) Breadcrumbs() []types.Breadcrumb {
	return r.breadcrumbs.Sorted()
}

func uniqueExisting(fs ports.FileSystemPort, dirs []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		clean := filepath.Clean(dir)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		if !fs.DirExists(clean) {
			continue
		}
		out = append(out, clean)
	}
	return out
}
