package app

import (
	"depsprobe/internal/core"
	"depsprobe/internal/types"
)

// ProbeSettings are the host-provided probe locations shared by every
// command that builds a resolver.
type ProbeSettings struct {
	ProbeDirs      []string
	SharedStores   []string
	AdditionalDeps []string
	ServicingRoot  string
	RID            string
	TFM            string
}

type ValidateRequest struct {
	ChainPath string
	Probe     ProbeSettings
}

type ValidateResult struct {
	AppPath        string
	Frameworks     []types.FrameworkReference
	AdditionalDeps []string
	ProbeDirs      []string
	Probes         []core.ProbeDescription
}

type ResolveRequest struct {
	ChainPath            string
	Probe                ProbeSettings
	MaxFxLevel           int
	IgnoreMissing        bool
	RequireNativeRuntime bool
	OutputDir            string
	BreadcrumbDir        string
	SBOMPath             string
	MetricsFile          string
}

type ResolveResult struct {
	AppName            string
	OutputDir          string
	Paths              types.ProbePaths
	Breadcrumbs        []types.Breadcrumb
	BreadcrumbsWritten int
}

type InspectRequest struct {
	OutputDir string
}

type InspectResult struct {
	TPACount       int
	NativeCount    int
	ResourceCount  int
	NativeDirs     []string
	ResourceDirs   []string
	CoreCLR        string
	CoreCLRVersion string
	CLRJit         string
	Breadcrumbs    []types.Breadcrumb
}
