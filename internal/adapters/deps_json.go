package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"depsprobe/internal/ports"
	"depsprobe/internal/shared"
	"depsprobe/internal/types"
)

const placeholderFile = "_._"

type depsFile struct {
	RuntimeTarget struct {
		Name string `json:"name"`
	} `json:"runtimeTarget"`
	Targets   map[string]map[string]depsTargetLibrary `json:"targets"`
	Libraries map[string]depsLibrary                  `json:"libraries"`
	Runtimes  map[string][]string                     `json:"runtimes"`
}

type depsTargetLibrary struct {
	Runtime        map[string]json.RawMessage   `json:"runtime"`
	Native         map[string]json.RawMessage   `json:"native"`
	Resources      map[string]depsResource      `json:"resources"`
	RuntimeTargets map[string]depsRuntimeTarget `json:"runtimeTargets"`
}

type depsResource struct {
	Locale string `json:"locale"`
}

type depsRuntimeTarget struct {
	RID       string `json:"rid"`
	AssetType string `json:"assetType"`
}

type depsLibrary struct {
	Type        string `json:"type"`
	Serviceable bool   `json:"serviceable"`
	Path        string `json:"path"`
}

// DepsJSONAdapter parses *.deps.json manifests. RID is the runtime
// identifier used to pick RID-specific assets out of portable manifests.
type DepsJSONAdapter struct {
	Fs  afero.Fs
	RID string
}

func NewDepsJSONAdapter(fs afero.Fs, rid string) DepsJSONAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if strings.TrimSpace(rid) == "" {
		rid = shared.HostRID()
	}
	return DepsJSONAdapter{Fs: fs, RID: rid}
}

func (a DepsJSONAdapter) Load(filePath string, fallback types.RIDFallbackGraph) (types.Manifest, error) {
	if strings.TrimSpace(filePath) == "" {
		return types.MissingManifest(filePath), nil
	}
	data, err := afero.ReadFile(a.Fs, filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.MissingManifest(filePath), nil
		}
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read deps file %s", filePath)).
			WithCause(err)
	}
	var doc depsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Manifest{}, parseError(filePath, "invalid json", err)
	}
	if doc.Targets == nil {
		return types.Manifest{}, parseError(filePath, "missing targets section", nil)
	}

	graph := fallback
	if graph == nil {
		graph = types.RIDFallbackGraph(doc.Runtimes)
	}

	targetName, portable, err := selectTarget(doc)
	if err != nil {
		return types.Manifest{}, parseError(filePath, err.Error(), nil)
	}
	target := doc.Targets[targetName]

	var entries []types.ManifestEntry
	var packages []types.PackageID
	for _, key := range sortedKeys(target) {
		name, version, ok := strings.Cut(key, "/")
		if !ok || name == "" || version == "" {
			return types.Manifest{}, parseError(filePath, fmt.Sprintf("invalid library key %q", key), nil)
		}
		lib, ok := doc.Libraries[key]
		if !ok {
			return types.Manifest{}, parseError(filePath, fmt.Sprintf("library %q is missing from libraries", key), nil)
		}
		packages = append(packages, types.PackageID{Name: name, Version: version})

		base := types.ManifestEntry{
			LibraryName:    name,
			LibraryVersion: version,
			LibraryType:    types.LibraryType(strings.ToLower(lib.Type)),
			LibraryPath:    lib.Path,
			Serviceable:    lib.Serviceable,
			DepsFile:       filePath,
		}
		targetLib := target[key]
		runtimeAssets := sortedKeys(targetLib.Runtime)
		nativeAssets := sortedKeys(targetLib.Native)
		if portable {
			runtimeAssets = a.selectRIDAssets(targetLib.RuntimeTargets, "runtime", graph, runtimeAssets)
			nativeAssets = a.selectRIDAssets(targetLib.RuntimeTargets, "native", graph, nativeAssets)
		}
		entries = appendAssets(entries, base, types.AssetTypeRuntime, runtimeAssets, nil)
		entries = appendAssets(entries, base, types.AssetTypeNative, nativeAssets, nil)
		entries = appendAssets(entries, base, types.AssetTypeResources, sortedKeys(targetLib.Resources), targetLib.Resources)
	}

	log.Debug().
		Str("deps_file", filePath).
		Str("target", targetName).
		Bool("portable", portable).
		Int("entries", len(entries)).
		Msg("deps file parsed")
	return types.NewManifest(filePath, entries, packages, graph), nil
}

// selectRIDAssets returns the RID-specific assets of the first runtime
// identifier in the fallback chain that has any, or the RID-agnostic assets
// when no identifier matches.
func (a DepsJSONAdapter) selectRIDAssets(targets map[string]depsRuntimeTarget, assetType string, graph types.RIDFallbackGraph, agnostic []string) []string {
	byRID := map[string][]string{}
	for _, assetPath := range sortedKeys(targets) {
		target := targets[assetPath]
		if !strings.EqualFold(target.AssetType, assetType) {
			continue
		}
		byRID[target.RID] = append(byRID[target.RID], assetPath)
	}
	if len(byRID) == 0 {
		return agnostic
	}
	for _, rid := range graph.Fallbacks(a.RID) {
		if assets, ok := byRID[rid]; ok {
			return assets
		}
	}
	return agnostic
}

func selectTarget(doc depsFile) (string, bool, error) {
	name := strings.TrimSpace(doc.RuntimeTarget.Name)
	if name == "" {
		for _, key := range sortedKeys(doc.Targets) {
			if !strings.Contains(key, "/") {
				name = key
				break
			}
		}
		if name == "" {
			keys := sortedKeys(doc.Targets)
			if len(keys) == 0 {
				return "", false, errors.New("no targets declared")
			}
			name = keys[0]
		}
	}
	if _, ok := doc.Targets[name]; !ok {
		return "", false, fmt.Errorf("runtime target %q not found", name)
	}
	return name, !strings.Contains(name, "/"), nil
}

func appendAssets(entries []types.ManifestEntry, base types.ManifestEntry, assetType types.AssetType, assets []string, resources map[string]depsResource) []types.ManifestEntry {
	for _, relative := range assets {
		fileName := path.Base(relative)
		if fileName == placeholderFile {
			continue
		}
		entry := base
		entry.AssetType = assetType
		entry.RelativePath = relative
		entry.AssetName = shared.AssetName(fileName)
		if assetType == types.AssetTypeResources {
			entry.Culture = resources[relative].Locale
			if entry.Culture == "" {
				entry.Culture = path.Base(path.Dir(relative))
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseError(filePath string, reason string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("failed to parse deps file %s: %s", filePath, reason))
	if cause != nil {
		return builder.WithCause(cause)
	}
	return builder
}

func sortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.ManifestParserPort = DepsJSONAdapter{}
