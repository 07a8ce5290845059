package adapters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"depsprobe/internal/ports"
	"depsprobe/internal/shared"
	"depsprobe/internal/types"
)

type chainFile struct {
	App        chainApp         `yaml:"app"`
	Frameworks []chainFramework `yaml:"frameworks" validate:"dive"`
}

type chainApp struct {
	Path     string `yaml:"path" validate:"required"`
	DepsFile string `yaml:"deps_file,omitempty"`
}

type chainFramework struct {
	Name    string `yaml:"name" validate:"required"`
	Version string `yaml:"version" validate:"required"`
	Dir     string `yaml:"dir" validate:"required"`
}

// ChainFileAdapter loads the launch description: the managed app and the
// already-resolved framework chain. Relative paths are taken relative to
// the chain file's directory.
type ChainFileAdapter struct {
	Fs       afero.Fs
	validate *validator.Validate
}

func NewChainFileAdapter(fs afero.Fs) ChainFileAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return ChainFileAdapter{Fs: fs, validate: validator.New()}
}

func (a ChainFileAdapter) LoadHostContext(path string) (types.HostContext, error) {
	if strings.TrimSpace(path) == "" {
		return types.HostContext{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("chain file path is required")
	}
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return types.HostContext{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("chain file not found").
			WithCause(err)
	}
	var file chainFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.HostContext{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse chain yaml").
			WithCause(err)
	}
	validate := a.validate
	if validate == nil {
		validate = validator.New()
	}
	if err := validate.Struct(file); err != nil {
		return types.HostContext{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid chain file").
			WithCause(err)
	}

	base := filepath.Dir(path)
	appPath := absolute(base, file.App.Path)
	ctx := types.HostContext{
		AppPath:     appPath,
		AppDir:      filepath.Dir(appPath),
		AppDepsFile: shared.AppDepsFile(appPath),
	}
	if strings.TrimSpace(file.App.DepsFile) != "" {
		ctx.AppDepsFile = absolute(base, file.App.DepsFile)
	}
	for _, fx := range file.Frameworks {
		if _, err := semver.NewVersion(fx.Version); err != nil {
			return types.HostContext{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("framework %s has invalid version %q", fx.Name, fx.Version)).
				WithCause(err)
		}
		ctx.Frameworks = append(ctx.Frameworks, types.FrameworkReference{
			Name:    fx.Name,
			Version: fx.Version,
			Dir:     absolute(base, fx.Dir),
		})
	}
	return ctx, nil
}

func absolute(base string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

var _ ports.HostContextPort = ChainFileAdapter{}
