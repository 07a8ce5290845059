package ports

import "depsprobe/internal/types"

// ManifestParserPort loads a deps file. A nil fallback graph means the file
// is the root framework's manifest and its own runtimes section is used.
// A missing file is not an error; it yields a manifest with Exists=false.
type ManifestParserPort interface {
	Load(path string, fallback types.RIDFallbackGraph) (types.Manifest, error)
}
