// Package shared provides platform naming and path helpers used across
// multiple packages in the depsprobe codebase.
package shared

import (
	"path/filepath"
	"runtime"
	"strings"
)

const depsFileSuffix = ".deps.json"

// HostOS returns the runtime identifier operating system component for the
// running platform.
func HostOS() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	case "windows":
		return "win"
	default:
		return runtime.GOOS
	}
}

// HostArch returns the runtime identifier architecture component for the
// running platform.
func HostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	default:
		return runtime.GOARCH
	}
}

// HostRID returns the default runtime identifier, e.g. "linux-x64".
func HostRID() string {
	return HostOS() + "-" + HostArch()
}

// RIDArch returns the architecture component of rid ("linux-x64" gives
// "x64"), or the host architecture when rid is empty.
func RIDArch(rid string) string {
	rid = strings.TrimSpace(rid)
	if rid == "" {
		return HostArch()
	}
	if idx := strings.LastIndex(rid, "-"); idx >= 0 && idx < len(rid)-1 {
		return rid[idx+1:]
	}
	return HostArch()
}

// NativeLibraryExt returns the file extension of native shared libraries.
func NativeLibraryExt() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// LibraryFileName returns the platform file name of a native library, e.g.
// "libcoreclr.so" for "coreclr" on Linux.
func LibraryFileName(name string) string {
	if runtime.GOOS == "windows" {
		return name + NativeLibraryExt()
	}
	return "lib" + name + NativeLibraryExt()
}

// AssetName strips the extension from an asset file name. Native images
// (".ni.dll") lose both extensions so they share a name with the IL image.
func AssetName(fileName string) string {
	lower := strings.ToLower(fileName)
	if strings.HasSuffix(lower, ".ni.dll") {
		return fileName[:len(fileName)-len(".ni.dll")]
	}
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// AppDepsFile derives the deps manifest path of a managed application.
func AppDepsFile(appPath string) string {
	dir := filepath.Dir(appPath)
	name := strings.TrimSuffix(filepath.Base(appPath), filepath.Ext(appPath))
	return filepath.Join(dir, name+depsFileSuffix)
}

// FrameworkDepsFile returns the manifest path of a shared framework.
func FrameworkDepsFile(dir string, name string) string {
	return filepath.Join(dir, name+depsFileSuffix)
}

// IsDepsFile reports whether path names a deps manifest.
func IsDepsFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), depsFileSuffix)
}

// SplitPathLists flattens values that may each hold an OS path list
// (e.g. "a:b" on Unix) and drops empty elements.
func SplitPathLists(values []string) []string {
	var out []string
	for _, value := range values {
		for _, item := range filepath.SplitList(value) {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
