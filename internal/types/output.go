package types

// ResolvedAsset is an asset whose on-disk location was found during a
// resolution pass.
type ResolvedAsset struct {
	AssetType      AssetType
	Name           string
	Path           string
	FxLevel        int
	LibraryName    string
	LibraryVersion string
}

type Breadcrumb struct {
	Name    string
	Version string
}

func (b Breadcrumb) String() string {
	return b.Name + "," + b.Version
}

// ProbePaths is the flattened outcome of resolving every asset type.
type ProbePaths struct {
	TPA            []string
	Native         []string
	Resources      []string
	NativeDirs     []string
	ResourceDirs   []string
	CoreCLR        string
	CoreCLRVersion string
	CLRJit         string
}

// ResolutionSummary feeds the metrics writer.
type ResolutionSummary struct {
	AppName     string
	Frameworks  int
	Assets      map[AssetType]int
	Breadcrumbs int
	DurationSec float64
}
