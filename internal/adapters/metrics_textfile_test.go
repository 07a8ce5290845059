package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsprobe/internal/types"
)

func TestMetricsTextfileAdapter_WriteMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textfile", "depsprobe.prom")
	summary := types.ResolutionSummary{
		AppName:    "App",
		Frameworks: 2,
		Assets: map[types.AssetType]int{
			types.AssetTypeRuntime: 12,
			types.AssetTypeNative:  3,
		},
		Breadcrumbs: 7,
		DurationSec: 0.25,
	}
	require.NoError(t, NewMetricsTextfileAdapter().WriteMetrics(path, summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	for _, want := range []string{
		`depsprobe_resolved_assets{app="App",asset_type="runtime"} 12`,
		`depsprobe_resolved_assets{app="App",asset_type="native"} 3`,
		`depsprobe_resolved_assets{app="App",asset_type="resources"} 0`,
		`depsprobe_breadcrumbs{app="App"} 7`,
		`depsprobe_frameworks{app="App"} 2`,
		`depsprobe_resolution_duration_seconds{app="App"} 0.25`,
	} {
		assert.True(t, strings.Contains(text, want), "missing %q in:\n%s", want, text)
	}
}

func TestMetricsTextfileAdapter_EmptyPath(t *testing.T) {
	err := NewMetricsTextfileAdapter().WriteMetrics(" ", types.ResolutionSummary{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics file path is empty")
}
