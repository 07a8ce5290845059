package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"depsprobe/internal/shared"
	"depsprobe/internal/types"
)

type probeKind int

const (
	probeServicing probeKind = iota
	probeStore
	probePublishedDir
	probeFramework
	probeLookup
)

func (k probeKind) String() string {
	switch k {
	case probeServicing:
		return "servicing"
	case probeStore:
		return "store"
	case probePublishedDir:
		return "published-dir"
	case probeFramework:
		return "framework"
	case probeLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// probeConfig is one location consulted while resolving an entry. Probes
// are tried in the order they were configured; the first hit wins.
type probeConfig struct {
	kind              probeKind
	dir               string
	fxLevel           int
	manifest          types.Manifest
	existenceRequired bool
	onlyServiceable   bool
	packageOnly       bool
}

type probeRequest struct {
	entry    types.ManifestEntry
	depsDir  string
	level    int
	maxLevel int
}

// ProbeDescription is a read-only view of a configured probe.
type ProbeDescription struct {
	Kind    string
	Dir     string
	FxLevel int
}

func (r *DepsResolver) setupProbeConfig(opts Options) {
	r.probeDirs = uniqueExisting(r.FS, opts.ProbeDirs)

	if root := strings.TrimSpace(opts.ServicingRoot); root != "" && r.FS.DirExists(root) {
		r.probes = append(r.probes, probeConfig{
			kind:              probeServicing,
			dir:               filepath.Join(root, "pkgs"),
			existenceRequired: true,
			onlyServiceable:   true,
			packageOnly:       true,
		})
	}
	for _, store := range r.storeRoots(opts) {
		r.probes = append(r.probes, probeConfig{
			kind:              probeStore,
			dir:               store,
			existenceRequired: true,
			packageOnly:       true,
		})
	}
	r.probes = append(r.probes, probeConfig{
		kind:              probePublishedDir,
		existenceRequired: true,
	})
	for _, level := range r.levels[1:] {
		if !r.FS.DirExists(level.Dir) {
			continue
		}
		// Framework directories are trusted: a manifest listing the exact
		// package is enough, the file is not checked.
		r.probes = append(r.probes, probeConfig{
			kind:     probeFramework,
			dir:      level.Dir,
			fxLevel:  level.Index,
			manifest: level.Manifest,
		})
	}
	for _, dir := range r.probeDirs {
		r.probes = append(r.probes, probeConfig{
			kind:              probeLookup,
			dir:               dir,
			existenceRequired: true,
			packageOnly:       true,
		})
	}
}

func (r *DepsResolver) storeRoots(opts Options) []string {
	arch := opts.Arch
	if arch == "" {
		arch = shared.HostArch()
	}
	roots := make([]string, 0, len(opts.SharedStores))
	for _, root := range opts.SharedStores {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		if opts.TFM != "" {
			root = filepath.Join(root, arch, opts.TFM)
		}
		roots = append(roots, root)
	}
	return uniqueExisting(r.FS, roots)
}

// Probes lists the configured probes in precedence order.
func (r *DepsResolver) Probes() []ProbeDescription {
	out := make([]ProbeDescription, 0, len(r.probes))
	for _, p := range r.probes {
		out = append(out, ProbeDescription{Kind: p.kind.String(), Dir: p.dir, FxLevel: p.fxLevel})
	}
	return out
}

func (p probeConfig) applies(req probeRequest) bool {
	if p.onlyServiceable && !req.entry.Serviceable {
		return false
	}
	if p.packageOnly && !req.entry.IsPackage() {
		return false
	}
	if p.kind == probeFramework {
		return req.level < p.fxLevel && p.fxLevel <= req.maxLevel
	}
	return true
}

func (p probeConfig) candidate(req probeRequest) (string, bool) {
	switch p.kind {
	case probeServicing, probeStore, probeLookup:
		return packageLayoutPath(p.dir, req.entry), true
	case probePublishedDir:
		return dirLayoutPath(req.depsDir, req.entry), true
	case probeFramework:
		if !p.manifest.HasPackage(req.entry.LibraryName, req.entry.LibraryVersion) {
			return "", false
		}
		return dirLayoutPath(p.dir, req.entry), true
	default:
		return "", false
	}
}

func (r *DepsResolver) probe(ctx context.Context, req probeRequest) (string, bool) {
	for _, p := range r.probes {
		if !p.applies(req) {
			continue
		}
		candidate, ok := p.candidate(req)
		if !ok {
			continue
		}
		if p.existenceRequired && !r.FS.FileExists(candidate) {
			continue
		}
		log.Ctx(ctx).Debug().
			Str("asset", req.entry.Key()).
			Str("probe", p.kind.String()).
			Str("path", candidate).
			Msg("asset probed")
		return candidate, true
	}
	return "", false
}

// packageLayoutPath places an entry under root/<package>/<version>/<relative>.
func packageLayoutPath(root string, entry types.ManifestEntry) string {
	pkgDir := entry.LibraryPath
	if pkgDir == "" {
		pkgDir = strings.ToLower(entry.LibraryName) + "/" + strings.ToLower(entry.LibraryVersion)
	}
	return filepath.Join(root, filepath.FromSlash(pkgDir), filepath.FromSlash(entry.RelativePath))
}

// dirLayoutPath places an entry flat in dir, or under its culture for
// resources.
func dirLayoutPath(dir string, entry types.ManifestEntry) string {
	if entry.AssetType == types.AssetTypeResources && entry.Culture != "" {
		return filepath.Join(dir, entry.Culture, entry.FileName())
	}
	return filepath.Join(dir, entry.FileName())
}
