package app

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsprobe/internal/adapters"
)

func TestCheckProbeHints(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/store", 0755))
	require.NoError(t, fs.MkdirAll("/probe", 0755))
	port := adapters.NewFileSystemAdapter(fs)

	tests := []struct {
		name      string
		probe     ProbeSettings
		servicing string
		stores    []string
		probeDirs []string
		expected  []string
	}{
		{
			name:     "no settings",
			expected: nil,
		},
		{
			name:      "existing locations with tfm",
			probe:     ProbeSettings{TFM: "netcoreapp2.1"},
			stores:    []string{"/store"},
			probeDirs: []string{"/probe"},
			expected:  nil,
		},
		{
			name:      "missing servicing root and probe dir",
			servicing: "/servicing",
			probeDirs: []string{"/probe", "/gone"},
			expected: []string{
				"hint: --servicing-root /servicing does not exist (servicing_root); it will not be probed",
				"hint: --probe-dir /gone does not exist (probe_dirs); it will not be probed",
			},
		},
		{
			name:   "store without tfm",
			stores: []string{"/store"},
			expected: []string{
				"hint: --shared-store is set without --tfm; store roots are probed without the <arch>/<tfm> layout",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkProbeHints(port, tt.probe, tt.servicing, tt.stores, tt.probeDirs)
			assert.Equal(t, tt.expected, got)
		})
	}
}
