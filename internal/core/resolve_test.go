package core

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsprobe/internal/shared"
	"depsprobe/internal/testutil"
	"depsprobe/internal/types"
)

var allLevels = ResolveOptions{MaxFxLevel: -1}

func TestResolve_AppLevelWinsOverFramework(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{{Name: "X", Version: "1.0", Runtime: []string{"lib/netstandard2.0/X.dll"}}},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{
		Libraries: []testutil.Library{{Name: "X", Version: "0.9", Runtime: []string{"lib/netstandard2.0/X.dll"}}},
	})
	testutil.Touch(t, fs, "/app/X.dll", filepath.Join(netcoreDir, "X.dll"))

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{netcore}})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.NoError(t, err)

	want := []types.ResolvedAsset{{
		AssetType:      types.AssetTypeRuntime,
		Name:           "X",
		Path:           "/app/X.dll",
		FxLevel:        0,
		LibraryName:    "X",
		LibraryVersion: "1.0",
	}}
	if diff := cmp.Diff(want, res.Assets); diff != "" {
		t.Fatalf("unexpected assets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]types.Breadcrumb{{Name: "X", Version: "1.0"}}, resolver.Breadcrumbs()); diff != "" {
		t.Fatalf("unexpected breadcrumbs (-want +got):\n%s", diff)
	}
}

func TestResolve_SelfContainedDirectoryFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	native := "foo" + shared.NativeLibraryExt()
	testutil.Touch(t, fs,
		"/app/App.dll",
		"/app/Foo.ni.dll",
		"/app/Foo.dll",
		"/app/readme.txt",
		"/app/fr/App.resources.dll",
		"/probe/"+native,
		"/probe/Extra.dll",
		"/probe/App.dll",
	)

	resolver := newTestResolver(t, fs, Options{ProbeDirs: []string{"/probe"}})
	require.NoError(t, resolver.Valid())

	runtime, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.NoError(t, err)
	assert.Equal(t, []string{"/app/Foo.ni.dll", "/app/App.dll", "/probe/Extra.dll"}, runtime.Paths())
	assert.Equal(t, 1, runtime.Assets[2].FxLevel)

	nativeRes, err := resolver.Resolve(t.Context(), types.AssetTypeNative, allLevels)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/probe", native)}, nativeRes.Paths())
	assert.Equal(t, []string{"/probe"}, nativeRes.Dirs())

	resources, err := resolver.Resolve(t.Context(), types.AssetTypeResources, allLevels)
	require.NoError(t, err)
	require.Len(t, resources.Assets, 1)
	assert.Equal(t, "fr/App.resources", resources.Assets[0].Name)
	assert.Equal(t, []string{"/app"}, resources.Dirs())

	// Directory assets carry no package identity.
	assert.Empty(t, resolver.Breadcrumbs())
}

func TestResolve_IgnoreMissing(t *testing.T) {
	setup := func(t *testing.T) *DepsResolver {
		fs := afero.NewMemMapFs()
		testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
			Libraries: []testutil.Library{
				{Name: "A.Present", Version: "1.0.0", Runtime: []string{"lib/A.Present.dll"}},
				{Name: "Y", Version: "2.0.0", Runtime: []string{"lib/netstandard2.0/Y.dll"}},
			},
		})
		testutil.Touch(t, fs, "/app/A.Present.dll")
		return newTestResolver(t, fs, Options{})
	}

	t.Run("ignored", func(t *testing.T) {
		resolver := setup(t)
		res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, ResolveOptions{MaxFxLevel: -1, IgnoreMissing: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"/app/A.Present.dll"}, res.Paths())
	})

	t.Run("fatal", func(t *testing.T) {
		resolver := setup(t)
		_, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
		require.Error(t, err)
		if diff := cmp.Diff(KindUnresolvedRequiredAsset, KindOf(err)); diff != "" {
			t.Fatalf("unexpected kind (-want +got):\n%s", diff)
		}
		assert.Contains(t, err.Error(), "package: 'Y', version: '2.0.0'")
		assert.Contains(t, err.Error(), "path: 'lib/netstandard2.0/Y.dll'")
		assert.Contains(t, err.Error(), appDepsFile)
		// A failed pass leaves no breadcrumbs behind.
		assert.Empty(t, resolver.Breadcrumbs())
	})
}

func TestResolve_MissingResourcesAreDropped(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{{
			Name:    "App",
			Version: "1.0.0",
			Type:    "project",
			Resources: map[string]string{
				"fr/App.resources.dll": "fr",
				"de/App.resources.dll": "de",
			},
		}},
	})
	testutil.Touch(t, fs, "/app/fr/App.resources.dll")

	resolver := newTestResolver(t, fs, Options{})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeResources, allLevels)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/app", "fr", "App.resources.dll")}, res.Paths())
}

func TestResolve_MaxFxLevel(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{})
	testutil.WriteDeps(t, fs, fxDepsFile(aspnet), testutil.Deps{
		Libraries: []testutil.Library{{Name: "Mid.Lib", Version: "2.1.0", Runtime: []string{"lib/Mid.Lib.dll"}}},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{
		Libraries: []testutil.Library{{Name: "Root.Lib", Version: "2.1.0", Runtime: []string{"lib/Root.Lib.dll"}}},
	})
	testutil.Touch(t, fs, filepath.Join(aspnetDir, "Mid.Lib.dll"), filepath.Join(netcoreDir, "Root.Lib.dll"))

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{aspnet, netcore}})

	tests := []struct {
		name     string
		maxLevel int
		want     []string
	}{
		{name: "app only", maxLevel: 0, want: nil},
		{name: "first framework", maxLevel: 1, want: []string{"Mid.Lib"}},
		{name: "all", maxLevel: -1, want: []string{"Mid.Lib", "Root.Lib"}},
		{name: "beyond root", maxLevel: 9, want: []string{"Mid.Lib", "Root.Lib"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, ResolveOptions{MaxFxLevel: tt.maxLevel})
			require.NoError(t, err)
			var got []string
			for _, asset := range res.Assets {
				got = append(got, asset.Name)
				if tt.maxLevel >= 0 {
					assert.LessOrEqual(t, asset.FxLevel, tt.maxLevel)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected assets (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_FrameworkProbeTrustsManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{{Name: "Shared.Lib", Version: "2.0.0", Runtime: []string{"lib/netstandard2.0/Shared.Lib.dll"}}},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(aspnet), testutil.Deps{
		Libraries: []testutil.Library{{Name: "Shared.Lib", Version: "2.0.0", Runtime: []string{"lib/netstandard2.0/Shared.Lib.dll"}}},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{})

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{aspnet, netcore}})

	res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.NoError(t, err)
	require.Len(t, res.Assets, 1)
	assert.Equal(t, filepath.Join(aspnetDir, "Shared.Lib.dll"), res.Assets[0].Path)
	assert.Equal(t, 0, res.Assets[0].FxLevel)

	// The framework is outside the walked levels, so it cannot serve the entry.
	_, err = resolver.Resolve(t.Context(), types.AssetTypeRuntime, ResolveOptions{MaxFxLevel: 0})
	require.Error(t, err)
	assert.Equal(t, KindUnresolvedRequiredAsset, KindOf(err))
}

func TestResolve_FrameworkProbeRequiresExactVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{{Name: "Shared.Lib", Version: "3.0.0", Runtime: []string{"lib/Shared.Lib.dll"}}},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{
		Libraries: []testutil.Library{{Name: "Shared.Lib", Version: "2.0.0", Runtime: []string{"lib/Shared.Lib.dll"}}},
	})
	testutil.Touch(t, fs, filepath.Join(netcoreDir, "Shared.Lib.dll"))

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{netcore}})
	_, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version: '3.0.0'")
}

func TestResolve_SharedStoreBeforePublishedDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{
			{Name: "App", Version: "1.0.0", Type: "project", Runtime: []string{"App.dll"}},
			{Name: "Lib", Version: "1.0.0", Runtime: []string{"lib/netstandard2.0/Lib.dll"}},
		},
	})
	store := "/store/x64/netcoreapp2.1"
	testutil.Touch(t, fs,
		"/app/App.dll",
		"/app/Lib.dll",
		store+"/app/1.0.0/App.dll",
		store+"/lib/1.0.0/lib/netstandard2.0/Lib.dll",
	)

	resolver := newTestResolver(t, fs, Options{SharedStores: []string{"/store"}, Arch: "x64", TFM: "netcoreapp2.1"})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.NoError(t, err)
	want := []string{"/app/App.dll", store + "/lib/1.0.0/lib/netstandard2.0/Lib.dll"}
	if diff := cmp.Diff(want, res.Paths()); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}

func TestResolve_ServicingOnlyForServiceable(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{
			{Name: "Patched", Version: "1.0.0", Serviceable: true, Path: "patched/1.0.0", Runtime: []string{"lib/Patched.dll"}},
			{Name: "Plain", Version: "1.0.0", Runtime: []string{"lib/Plain.dll"}},
		},
	})
	testutil.Touch(t, fs,
		"/app/Patched.dll",
		"/app/Plain.dll",
		"/servicing/pkgs/patched/1.0.0/lib/Patched.dll",
		"/servicing/pkgs/plain/1.0.0/lib/Plain.dll",
	)

	resolver := newTestResolver(t, fs, Options{ServicingRoot: "/servicing"})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.NoError(t, err)
	want := []string{"/servicing/pkgs/patched/1.0.0/lib/Patched.dll", "/app/Plain.dll"}
	if diff := cmp.Diff(want, res.Paths()); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}

func TestResolve_LookupProbeUsesPackageLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{
			{Name: "Cached.Lib", Version: "4.2.0-beta", Runtime: []string{"lib/netstandard2.0/Cached.Lib.dll"}},
			{Name: "Proj", Version: "1.0.0", Type: "project", Runtime: []string{"Proj.dll"}},
		},
	})
	testutil.Touch(t, fs,
		"/nuget/cached.lib/4.2.0-beta/lib/netstandard2.0/Cached.Lib.dll",
		"/nuget/proj/1.0.0/Proj.dll",
	)

	resolver := newTestResolver(t, fs, Options{ProbeDirs: []string{"/nuget"}})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, ResolveOptions{MaxFxLevel: -1, IgnoreMissing: true})
	require.NoError(t, err)
	// Project entries are never served from package caches.
	assert.Equal(t, []string{"/nuget/cached.lib/4.2.0-beta/lib/netstandard2.0/Cached.Lib.dll"}, res.Paths())
}

func TestResolve_AdditionalDepsNeverOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{{Name: "X", Version: "1.0.0", Runtime: []string{"lib/X.dll"}}},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{})
	testutil.WriteDeps(t, fs, "/plugins/Plugin.deps.json", testutil.Deps{
		Libraries: []testutil.Library{
			{Name: "Plugin.Lib", Version: "1.0.0", Runtime: []string{"lib/Plugin.Lib.dll"}},
			{Name: "X", Version: "3.0.0", Runtime: []string{"lib/X.dll"}},
		},
	})
	testutil.Touch(t, fs, "/app/X.dll", "/app/Plugin.Lib.dll")

	resolver := newTestResolver(t, fs, Options{
		Frameworks:     []types.FrameworkReference{netcore},
		AdditionalDeps: []string{"/plugins/Plugin.deps.json"},
	})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.NoError(t, err)

	want := []types.ResolvedAsset{
		{AssetType: types.AssetTypeRuntime, Name: "X", Path: "/app/X.dll", FxLevel: 0, LibraryName: "X", LibraryVersion: "1.0.0"},
		{AssetType: types.AssetTypeRuntime, Name: "Plugin.Lib", Path: "/app/Plugin.Lib.dll", FxLevel: 2, LibraryName: "Plugin.Lib", LibraryVersion: "1.0.0"},
	}
	if diff := cmp.Diff(want, res.Assets); diff != "" {
		t.Fatalf("unexpected assets (-want +got):\n%s", diff)
	}
	wantCrumbs := []types.Breadcrumb{{Name: "Plugin.Lib", Version: "1.0.0"}, {Name: "X", Version: "1.0.0"}}
	if diff := cmp.Diff(wantCrumbs, resolver.Breadcrumbs()); diff != "" {
		t.Fatalf("unexpected breadcrumbs (-want +got):\n%s", diff)
	}
}

func TestResolve_AppDirFallbackWithFrameworks(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{
		Libraries: []testutil.Library{{Name: "System.Runtime", Version: "4.2.0", Runtime: []string{"lib/System.Runtime.dll"}}},
	})
	testutil.Touch(t, fs, "/app/App.dll", "/app/System.Runtime.dll", filepath.Join(netcoreDir, "System.Runtime.dll"))

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{netcore}})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
	require.NoError(t, err)
	assert.Equal(t, []string{"/app/App.dll", "/app/System.Runtime.dll"}, res.Paths())
	// The app-local copy came from the directory, not a package.
	assert.Empty(t, resolver.Breadcrumbs())
}

func TestResolve_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{
			{Name: "App", Version: "1.0.0", Type: "project", Runtime: []string{"App.dll"}},
			{Name: "Lib", Version: "1.0.0", Runtime: []string{"lib/Lib.dll"}},
		},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{
		Libraries: []testutil.Library{{Name: "System.Runtime", Version: "4.2.0", Runtime: []string{"lib/System.Runtime.dll"}}},
	})
	testutil.Touch(t, fs, "/app/App.dll", "/app/Lib.dll", filepath.Join(netcoreDir, "System.Runtime.dll"))

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{netcore}})
	first, err := resolver.ResolveProbePaths(t.Context(), allLevels)
	require.NoError(t, err)
	crumbs := resolver.Breadcrumbs()
	second, err := resolver.ResolveProbePaths(t.Context(), allLevels)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolution changed between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(crumbs, resolver.Breadcrumbs()); diff != "" {
		t.Fatalf("breadcrumbs changed between runs (-first +second):\n%s", diff)
	}
	assert.Len(t, first.TPA, 3)
}

func TestResolve_NativeRuntimeFromManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	coreclr := shared.LibraryFileName("coreclr")
	clrjit := shared.LibraryFileName("clrjit")
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{
		Libraries: []testutil.Library{{
			Name:    "runtime.linux-x64.Microsoft.NETCore.App",
			Version: "2.1.0",
			Native:  []string{"runtimes/linux-x64/native/" + coreclr},
		}},
	})
	testutil.Touch(t, fs, filepath.Join(netcoreDir, coreclr), filepath.Join(netcoreDir, clrjit))

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{netcore}})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeNative, ResolveOptions{MaxFxLevel: -1, RequireNativeRuntime: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(netcoreDir, coreclr), res.EnginePath)
	assert.Equal(t, "2.1.0", res.EngineVersion)
	assert.Equal(t, filepath.Join(netcoreDir, clrjit), res.JITPath)
	assert.Equal(t, []string{netcoreDir}, res.Dirs())
}

func TestResolve_NativeRuntimeFromDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	coreclr := shared.LibraryFileName("coreclr")
	clrjit := shared.LibraryFileName("clrjit")
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{})
	testutil.WriteDeps(t, fs, fxDepsFile(aspnet), testutil.Deps{})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{})
	testutil.Touch(t, fs,
		filepath.Join(appDir, coreclr),
		filepath.Join(netcoreDir, coreclr),
		filepath.Join(netcoreDir, clrjit),
	)

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{aspnet, netcore}})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeNative, ResolveOptions{MaxFxLevel: -1, RequireNativeRuntime: true})
	require.NoError(t, err)
	// The highest included framework is searched first.
	assert.Equal(t, filepath.Join(netcoreDir, coreclr), res.EnginePath)
	assert.Empty(t, res.EngineVersion)
	assert.Equal(t, filepath.Join(netcoreDir, clrjit), res.JITPath)

	res, err = resolver.Resolve(t.Context(), types.AssetTypeNative, ResolveOptions{MaxFxLevel: 1})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(appDir, coreclr), res.EnginePath)
	assert.Empty(t, res.JITPath)

	_, err = resolver.Resolve(t.Context(), types.AssetTypeNative, ResolveOptions{MaxFxLevel: 1, RequireNativeRuntime: true})
	require.Error(t, err)
	assert.Equal(t, KindUnresolvedRequiredAsset, KindOf(err))
	assert.Contains(t, err.Error(), clrjit)
}

func TestResolve_NativeRuntimeMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{})

	resolver := newTestResolver(t, fs, Options{})
	res, err := resolver.Resolve(t.Context(), types.AssetTypeNative, allLevels)
	require.NoError(t, err)
	assert.Empty(t, res.EnginePath)

	_, err = resolver.Resolve(t.Context(), types.AssetTypeNative, ResolveOptions{MaxFxLevel: -1, RequireNativeRuntime: true})
	require.Error(t, err)
	assert.Equal(t, KindUnresolvedRequiredAsset, KindOf(err))
	assert.Contains(t, err.Error(), shared.LibraryFileName("coreclr"))

	res, err = resolver.Resolve(t.Context(), types.AssetTypeNative, ResolveOptions{MaxFxLevel: -1, IgnoreMissing: true, RequireNativeRuntime: true})
	require.NoError(t, err)
	assert.Empty(t, res.EnginePath)
	assert.Empty(t, res.JITPath)
}

func TestResolve_ManagedAppSeedsTPA(t *testing.T) {
	tests := []struct {
		name       string
		libraries  []testutil.Library
		wantPaths  []string
		wantCrumbs []types.Breadcrumb
	}{
		{
			name: "manifest omits the app assembly",
			libraries: []testutil.Library{
				{Name: "Lib", Version: "2.0.0", Type: "project", Runtime: []string{"Lib.dll"}},
			},
			wantPaths:  []string{"/app/App.dll", "/app/Lib.dll"},
			wantCrumbs: []types.Breadcrumb{{Name: "Lib", Version: "2.0.0"}},
		},
		{
			name: "manifest lists the app assembly after another library",
			libraries: []testutil.Library{
				{Name: "Zed", Version: "1.0.0", Type: "project", Runtime: []string{"App.dll"}},
				{Name: "Lib", Version: "2.0.0", Type: "project", Runtime: []string{"Lib.dll"}},
			},
			wantPaths: []string{"/app/App.dll", "/app/Lib.dll"},
			wantCrumbs: []types.Breadcrumb{
				{Name: "Lib", Version: "2.0.0"},
				{Name: "Zed", Version: "1.0.0"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{Libraries: tt.libraries})
			testutil.Touch(t, fs, "/app/App.dll", "/app/Lib.dll")

			resolver := newTestResolver(t, fs, Options{AppPath: "/app/App.dll"})
			res, err := resolver.Resolve(t.Context(), types.AssetTypeRuntime, allLevels)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantPaths, res.Paths()); diff != "" {
				t.Fatalf("unexpected tpa (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantCrumbs, resolver.Breadcrumbs()); diff != "" {
				t.Fatalf("unexpected breadcrumbs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveProbePaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	coreclr := shared.LibraryFileName("coreclr")
	testutil.WriteDeps(t, fs, appDepsFile, testutil.Deps{
		Libraries: []testutil.Library{{
			Name:      "App",
			Version:   "1.0.0",
			Type:      "project",
			Runtime:   []string{"App.dll"},
			Resources: map[string]string{"fr/App.resources.dll": "fr"},
		}},
	})
	testutil.WriteDeps(t, fs, fxDepsFile(netcore), testutil.Deps{
		Libraries: []testutil.Library{{
			Name:    "Microsoft.NETCore.App",
			Version: "2.1.0",
			Runtime: []string{"lib/System.Runtime.dll"},
			Native:  []string{"native/" + coreclr},
		}},
	})
	testutil.Touch(t, fs,
		"/app/App.dll",
		"/app/fr/App.resources.dll",
		filepath.Join(netcoreDir, "System.Runtime.dll"),
		filepath.Join(netcoreDir, coreclr),
	)

	resolver := newTestResolver(t, fs, Options{Frameworks: []types.FrameworkReference{netcore}})
	paths, err := resolver.ResolveProbePaths(t.Context(), allLevels)
	require.NoError(t, err)

	want := types.ProbePaths{
		TPA:            []string{"/app/App.dll", filepath.Join(netcoreDir, "System.Runtime.dll")},
		Native:         []string{filepath.Join(netcoreDir, coreclr)},
		Resources:      []string{filepath.Join("/app", "fr", "App.resources.dll")},
		NativeDirs:     []string{netcoreDir},
		ResourceDirs:   []string{"/app"},
		CoreCLR:        filepath.Join(netcoreDir, coreclr),
		CoreCLRVersion: "2.1.0",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("unexpected probe paths (-want +got):\n%s", diff)
	}
	wantCrumbs := []types.Breadcrumb{{Name: "App", Version: "1.0.0"}, {Name: "Microsoft.NETCore.App", Version: "2.1.0"}}
	if diff := cmp.Diff(wantCrumbs, resolver.Breadcrumbs()); diff != "" {
		t.Fatalf("unexpected breadcrumbs (-want +got):\n%s", diff)
	}
}
