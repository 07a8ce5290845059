// Package testutil provides shared test helpers used across adapter, core,
// app and integration test packages.
package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// PortableTarget is the target framework name used by generated manifests.
const PortableTarget = ".NETCoreApp,Version=v2.1"

// Library describes one library of a generated deps manifest.
type Library struct {
	Name        string
	Version     string
	Type        string
	Serviceable bool
	Path        string
	Runtime     []string
	Native      []string
	// Resources maps a relative path to its locale.
	Resources map[string]string
	// RuntimeTargets maps a relative path to {rid, assetType}.
	RuntimeTargets map[string][2]string
}

// Deps describes a generated deps manifest.
type Deps struct {
	Target    string
	Libraries []Library
	Runtimes  map[string][]string
}

// DepsJSON renders d in the deps.json layout.
func DepsJSON(t *testing.T, d Deps) []byte {
	t.Helper()
	target := d.Target
	if target == "" {
		target = PortableTarget
	}
	targets := map[string]any{}
	libraries := map[string]any{}
	for _, lib := range d.Libraries {
		key := lib.Name + "/" + lib.Version
		assets := map[string]any{}
		if len(lib.Runtime) > 0 {
			assets["runtime"] = emptyObjects(lib.Runtime)
		}
		if len(lib.Native) > 0 {
			assets["native"] = emptyObjects(lib.Native)
		}
		if len(lib.Resources) > 0 {
			resources := map[string]any{}
			for rel, locale := range lib.Resources {
				resources[rel] = map[string]string{"locale": locale}
			}
			assets["resources"] = resources
		}
		if len(lib.RuntimeTargets) > 0 {
			runtimeTargets := map[string]any{}
			for rel, target := range lib.RuntimeTargets {
				runtimeTargets[rel] = map[string]string{"rid": target[0], "assetType": target[1]}
			}
			assets["runtimeTargets"] = runtimeTargets
		}
		targets[key] = assets
		libType := lib.Type
		if libType == "" {
			libType = "package"
		}
		libraries[key] = map[string]any{
			"type":        libType,
			"serviceable": lib.Serviceable,
			"sha512":      "",
			"path":        lib.Path,
		}
	}
	doc := map[string]any{
		"runtimeTarget": map[string]string{"name": target},
		"targets":       map[string]any{target: targets},
		"libraries":     libraries,
	}
	if d.Runtimes != nil {
		doc["runtimes"] = d.Runtimes
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	return data
}

// WriteDeps renders d and writes it to path on fs.
func WriteDeps(t *testing.T, fs afero.Fs, path string, d Deps) {
	t.Helper()
	WriteFile(t, fs, path, DepsJSON(t, d))
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, data, 0644))
}

// Touch creates empty files at every path.
func Touch(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, path := range paths {
		WriteFile(t, fs, path, []byte{})
	}
}

func emptyObjects(paths []string) map[string]any {
	out := map[string]any{}
	for _, path := range paths {
		out[path] = map[string]any{}
	}
	return out
}
