package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsprobe/internal/types"
)

func TestOutputFileAdapterFormats(t *testing.T) {
	dir := t.TempDir()
	adapter := NewOutputFileAdapter(nil, dir)

	paths := types.ProbePaths{
		TPA:            []string{"/app/App.dll", "/fx/System.Runtime.dll"},
		Native:         []string{"/fx/libcoreclr.so", "/fx/libclrjit.so"},
		NativeDirs:     []string{"/fx"},
		CoreCLR:        "/fx/libcoreclr.so",
		CoreCLRVersion: "2.1.0",
		CLRJit:         "/fx/libclrjit.so",
	}
	require.NoError(t, adapter.WriteProbePaths(paths))

	data, err := os.ReadFile(filepath.Join(dir, TPAListFile))
	require.NoError(t, err)
	if diff := cmp.Diff("/app/App.dll\n/fx/System.Runtime.dll\n", string(data)); diff != "" {
		t.Fatalf("unexpected tpa.list content (-want +got):\n%s", diff)
	}

	data, err = os.ReadFile(filepath.Join(dir, ResourcesListFile))
	require.NoError(t, err)
	assert.Empty(t, string(data))

	summary, err := os.ReadFile(filepath.Join(dir, ProbePathsFile))
	require.NoError(t, err)
	containsChecks := []struct {
		name string
		want string
	}{
		{name: "tpa", want: "tpa=" + strings.Join(paths.TPA, string(os.PathListSeparator))},
		{name: "native dirs", want: "native=/fx\n"},
		{name: "coreclr", want: "coreclr=/fx/libcoreclr.so\n"},
		{name: "clrjit", want: "clrjit=/fx/libclrjit.so\n"},
		{name: "version", want: "coreclr_version=2.1.0\n"},
	}
	for _, tt := range containsChecks {
		if diff := cmp.Diff(true, strings.Contains(string(summary), tt.want)); diff != "" {
			t.Fatalf("unexpected probe.paths %s (-want +got):\n%s", tt.name, diff)
		}
	}

	require.NoError(t, adapter.WriteBreadcrumbs([]types.Breadcrumb{
		{Name: "Lib.A", Version: "1.0.0"},
		{Name: "Lib.B", Version: "2.0.0"},
	}))
	data, err = os.ReadFile(filepath.Join(dir, BreadcrumbListFile))
	require.NoError(t, err)
	if diff := cmp.Diff("Lib.A,1.0.0\nLib.B,2.0.0\n", string(data)); diff != "" {
		t.Fatalf("unexpected breadcrumbs.list content (-want +got):\n%s", diff)
	}
}

func TestOutputFileAdapter_EmptyDir(t *testing.T) {
	err := NewOutputFileAdapter(afero.NewMemMapFs(), "").WriteProbePaths(types.ProbePaths{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is empty")
	if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected code (-want +got):\n%s", diff)
	}
}

func TestOutputFileAdapter_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := NewOutputFileAdapter(fs, "/out").WriteBreadcrumbs(nil)
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeInternal, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected code (-want +got):\n%s", diff)
	}
}
