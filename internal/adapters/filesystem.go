package adapters

import (
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"depsprobe/internal/ports"
)

type FileSystemAdapter struct {
	Fs afero.Fs
}

func NewFileSystemAdapter(fs afero.Fs) FileSystemAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return FileSystemAdapter{Fs: fs}
}

func (a FileSystemAdapter) FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := a.Fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func (a FileSystemAdapter) DirExists(path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.DirExists(a.Fs, path)
	return err == nil && ok
}

func (a FileSystemAdapter) ListFiles(dir string) ([]string, error) {
	return a.list(dir, false)
}

func (a FileSystemAdapter) ListDirs(dir string) ([]string, error) {
	return a.list(dir, true)
}

func (a FileSystemAdapter) list(dir string, dirs bool) ([]string, error) {
	if dir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("directory is empty")
	}
	infos, err := afero.ReadDir(a.Fs, dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list directory").
			WithCause(err)
	}
	var out []string
	for _, info := range infos {
		if info.IsDir() != dirs {
			continue
		}
		out = append(out, filepath.Join(dir, info.Name()))
	}
	sort.Strings(out)
	return out, nil
}

var _ ports.FileSystemPort = FileSystemAdapter{}
