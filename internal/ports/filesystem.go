package ports

// FileSystemPort answers the existence and listing questions the resolver
// asks while probing. Listings are sorted by name.
type FileSystemPort interface {
	FileExists(path string) bool
	DirExists(path string) bool
	ListFiles(dir string) ([]string, error)
	ListDirs(dir string) ([]string, error)
}
