package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"depsprobe/internal/adapters"
	"depsprobe/internal/core"
	"depsprobe/internal/shared"
	"depsprobe/internal/types"
)

// buildResolver loads the chain file and constructs a resolver over it.
func (s Service) buildResolver(ctx context.Context, chainPath string, probe ProbeSettings) (types.HostContext, *core.DepsResolver, error) {
	chainPath = strings.TrimSpace(chainPath)
	if chainPath == "" {
		return types.HostContext{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("chain file path is required")
	}
	if s.Chain == nil || s.FileSystem == nil {
		return types.HostContext{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service requires chain and filesystem ports")
	}
	host, err := s.Chain.LoadHostContext(chainPath)
	if err != nil {
		return types.HostContext{}, nil, err
	}
	rid := strings.TrimSpace(probe.RID)
	if rid == "" {
		rid = shared.HostRID()
	}
	servicingRoot := strings.TrimSpace(probe.ServicingRoot)
	stores := shared.SplitPathLists(probe.SharedStores)
	probeDirs := shared.SplitPathLists(probe.ProbeDirs)
	emitHints(ctx, checkProbeHints(s.FileSystem, probe, servicingRoot, stores, probeDirs))

	resolver, err := core.NewDepsResolver(ctx, core.Options{
		AppDir:         host.AppDir,
		AppDepsFile:    host.AppDepsFile,
		AppPath:        host.AppPath,
		Frameworks:     host.Frameworks,
		AdditionalDeps: shared.SplitPathLists(probe.AdditionalDeps),
		ProbeDirs:      probeDirs,
		SharedStores:   stores,
		ServicingRoot:  servicingRoot,
		Arch:           shared.RIDArch(rid),
		TFM:            strings.TrimSpace(probe.TFM),
	}, adapters.NewDepsJSONAdapter(s.Fs, rid), s.FileSystem)
	if err != nil {
		return types.HostContext{}, nil, err
	}
	return host, resolver, nil
}
