package types

type AssetType int

const (
	AssetTypeRuntime AssetType = iota
	AssetTypeNative
	AssetTypeResources
)

// AssetTypes lists every asset type in resolution order.
var AssetTypes = []AssetType{AssetTypeRuntime, AssetTypeNative, AssetTypeResources}

func (t AssetType) String() string {
	switch t {
	case AssetTypeRuntime:
		return "runtime"
	case AssetTypeNative:
		return "native"
	case AssetTypeResources:
		return "resources"
	default:
		return "unknown"
	}
}

type LibraryType string

const (
	LibraryTypeProject   LibraryType = "project"
	LibraryTypePackage   LibraryType = "package"
	LibraryTypeReference LibraryType = "reference"
)
