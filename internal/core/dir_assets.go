package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"depsprobe/internal/shared"
	"depsprobe/internal/types"
)

const (
	nativeImageSuffix = ".ni.dll"
	assemblySuffix    = ".dll"
	resourcesSuffix   = ".resources.dll"
)

// addDirAssets adds the files of dir that look like assets of the set's
// type. Names that are already resolved are left alone. For runtime assets
// native images are taken before IL images of the same name.
func (r *DepsResolver) addDirAssets(ctx context.Context, dir string, level int, set *assetSet) error {
	if !r.FS.DirExists(dir) {
		return nil
	}
	before := len(set.items)
	switch set.assetType {
	case types.AssetTypeRuntime:
		files, err := r.FS.ListFiles(dir)
		if err != nil {
			return err
		}
		for _, nativeImages := range []bool{true, false} {
			for _, file := range files {
				lower := strings.ToLower(filepath.Base(file))
				isNI := strings.HasSuffix(lower, nativeImageSuffix)
				if isNI != nativeImages || !strings.HasSuffix(lower, assemblySuffix) {
					continue
				}
				addFileAsset(set, shared.AssetName(filepath.Base(file)), file, level)
			}
		}
	case types.AssetTypeNative:
		files, err := r.FS.ListFiles(dir)
		if err != nil {
			return err
		}
		ext := shared.NativeLibraryExt()
		for _, file := range files {
			if strings.HasSuffix(strings.ToLower(file), ext) {
				addFileAsset(set, shared.AssetName(filepath.Base(file)), file, level)
			}
		}
	case types.AssetTypeResources:
		cultures, err := r.FS.ListDirs(dir)
		if err != nil {
			return err
		}
		for _, cultureDir := range cultures {
			files, err := r.FS.ListFiles(cultureDir)
			if err != nil {
				return err
			}
			culture := filepath.Base(cultureDir)
			for _, file := range files {
				if !strings.HasSuffix(strings.ToLower(file), resourcesSuffix) {
					continue
				}
				addFileAsset(set, culture+"/"+shared.AssetName(filepath.Base(file)), file, level)
			}
		}
	}
	log.Ctx(ctx).Debug().
		Str("dir", dir).
		Str("asset_type", set.assetType.String()).
		Int("added", len(set.items)-before).
		Msg("directory assets added")
	return nil
}

func addFileAsset(set *assetSet, key string, path string, level int) {
	if set.has(key) {
		return
	}
	set.add(key, types.ResolvedAsset{
		AssetType: set.assetType,
		Name:      key,
		Path:      path,
		FxLevel:   level,
	})
}
