package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"depsprobe/internal/ports"
)

// probeHint names the flag a hint refers to.
type probeHint struct {
	FlagName  string
	ConfigKey string
}

// checkProbeHints returns hints for probe settings that will be silently
// ignored by the resolver: locations that do not exist, and a shared store
// without a target framework.
func checkProbeHints(fs ports.FileSystemPort, probe ProbeSettings, servicingRoot string, stores []string, probeDirs []string) []string {
	var hints []string
	missing := func(hint probeHint, dir string) {
		hints = append(hints, fmt.Sprintf(
			"hint: %s %s does not exist (%s); it will not be probed",
			hint.FlagName, dir, hint.ConfigKey,
		))
	}
	if servicingRoot != "" && !fs.DirExists(servicingRoot) {
		missing(probeHint{"--servicing-root", "servicing_root"}, servicingRoot)
	}
	for _, dir := range stores {
		if !fs.DirExists(dir) {
			missing(probeHint{"--shared-store", "shared_stores"}, dir)
		}
	}
	for _, dir := range probeDirs {
		if !fs.DirExists(dir) {
			missing(probeHint{"--probe-dir", "probe_dirs"}, dir)
		}
	}
	if len(stores) > 0 && strings.TrimSpace(probe.TFM) == "" {
		hints = append(hints, "hint: --shared-store is set without --tfm; store roots are probed without the <arch>/<tfm> layout")
	}
	return hints
}

// emitHints writes hint messages as warnings.
func emitHints(ctx context.Context, hints []string) {
	for _, h := range hints {
		log.Ctx(ctx).Warn().Msg(h)
	}
}
