package types

import (
	"path"
	"strings"
)

// ManifestEntry is a single asset declared by a deps manifest.
type ManifestEntry struct {
	AssetType      AssetType
	AssetName      string
	RelativePath   string
	Culture        string
	LibraryName    string
	LibraryVersion string
	LibraryType    LibraryType
	LibraryPath    string
	Serviceable    bool
	DepsFile       string
}

// Key identifies the entry for override purposes. Resources are keyed per
// culture so that the same satellite assembly in two cultures does not
// collide.
func (e ManifestEntry) Key() string {
	if e.AssetType == AssetTypeResources {
		return e.Culture + "/" + e.AssetName
	}
	return e.AssetName
}

// FileName returns the last segment of the manifest relative path.
func (e ManifestEntry) FileName() string {
	return path.Base(e.RelativePath)
}

// IsPackage reports whether the entry may be served from a package layout
// (servicing, shared store or additional probe directories).
func (e ManifestEntry) IsPackage() bool {
	return e.LibraryType != LibraryTypeProject
}

// RIDFallbackGraph maps a runtime identifier to the identifiers to try, in
// order, when the exact one has no assets.
type RIDFallbackGraph map[string][]string

// Fallbacks returns the ordered candidate list for rid, starting with rid
// itself.
func (g RIDFallbackGraph) Fallbacks(rid string) []string {
	out := []string{rid}
	for _, fallback := range g[rid] {
		if fallback != rid {
			out = append(out, fallback)
		}
	}
	return out
}

// PackageID names one library at one version.
type PackageID struct {
	Name    string
	Version string
}

func (p PackageID) key() string {
	return strings.ToLower(p.Name) + "/" + strings.ToLower(p.Version)
}

// Manifest is a parsed deps file. A manifest whose file does not exist is
// represented with Exists=false and no entries; a manifest that failed to
// parse carries ParseErr.
type Manifest struct {
	Path        string
	Exists      bool
	ParseErr    error
	RIDFallback RIDFallbackGraph

	entries  map[AssetType][]ManifestEntry
	packages map[string]struct{}
}

func NewManifest(path string, entries []ManifestEntry, packages []PackageID, graph RIDFallbackGraph) Manifest {
	m := Manifest{
		Path:        path,
		Exists:      true,
		RIDFallback: graph,
		entries:     map[AssetType][]ManifestEntry{},
		packages:    map[string]struct{}{},
	}
	for _, entry := range entries {
		m.entries[entry.AssetType] = append(m.entries[entry.AssetType], entry)
	}
	for _, pkg := range packages {
		m.packages[pkg.key()] = struct{}{}
	}
	return m
}

// MissingManifest describes a deps file that is not present on disk.
func MissingManifest(path string) Manifest {
	return Manifest{Path: path}
}

// InvalidManifest describes a deps file that exists but could not be parsed.
func InvalidManifest(path string, err error) Manifest {
	return Manifest{Path: path, Exists: true, ParseErr: err}
}

func (m Manifest) Valid() bool {
	return m.ParseErr == nil
}

func (m Manifest) Entries(assetType AssetType) []ManifestEntry {
	return m.entries[assetType]
}

func (m Manifest) HasPackage(name string, version string) bool {
	_, ok := m.packages[PackageID{Name: name, Version: version}.key()]
	return ok
}
