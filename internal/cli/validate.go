package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsprobe/internal/app"
)

// probeOptions are the flags shared by every command that builds a resolver.
type probeOptions struct {
	Chain          string
	ProbeDirs      []string
	SharedStores   []string
	ServicingRoot  string
	AdditionalDeps []string
	RID            string
	TFM            string
}

type validateOptions struct {
	Probe probeOptions
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the app and framework dependency manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addProbeFlags(cmd, &opts.Probe)
	return cmd
}

func addProbeFlags(cmd *cobra.Command, opts *probeOptions) {
	cmd.Flags().StringVar(&opts.Chain, "chain", "", "Launch chain file (app path and framework references)")
	cmd.Flags().StringSliceVar(&opts.ProbeDirs, "probe-dir", nil, "Additional probe directories")
	cmd.Flags().StringSliceVar(&opts.SharedStores, "shared-store", nil, "Shared store roots")
	cmd.Flags().StringVar(&opts.ServicingRoot, "servicing-root", "", "Servicing root")
	cmd.Flags().StringSliceVar(&opts.AdditionalDeps, "additional-deps", nil, "Additional deps files or directories")
	cmd.Flags().StringVar(&opts.RID, "rid", "", "Runtime identifier (defaults to the host)")
	cmd.Flags().StringVar(&opts.TFM, "tfm", "", "Target framework moniker for store probing")

	_ = viper.BindPFlag("chain", cmd.Flags().Lookup("chain"))
	_ = viper.BindPFlag("probe_dirs", cmd.Flags().Lookup("probe-dir"))
	_ = viper.BindPFlag("shared_stores", cmd.Flags().Lookup("shared-store"))
	_ = viper.BindPFlag("servicing_root", cmd.Flags().Lookup("servicing-root"))
	_ = viper.BindPFlag("additional_deps", cmd.Flags().Lookup("additional-deps"))
	_ = viper.BindPFlag("rid", cmd.Flags().Lookup("rid"))
	_ = viper.BindPFlag("tfm", cmd.Flags().Lookup("tfm"))
}

func probeSettings(cmd *cobra.Command, opts probeOptions) app.ProbeSettings {
	return app.ProbeSettings{
		ProbeDirs:      resolveStrings(cmd, opts.ProbeDirs, "probe_dirs", "probe-dir"),
		SharedStores:   resolveStrings(cmd, opts.SharedStores, "shared_stores", "shared-store"),
		ServicingRoot:  resolveString(cmd, opts.ServicingRoot, "servicing_root", "servicing-root"),
		AdditionalDeps: resolveStrings(cmd, opts.AdditionalDeps, "additional_deps", "additional-deps"),
		RID:            resolveString(cmd, opts.RID, "rid", "rid"),
		TFM:            resolveString(cmd, opts.TFM, "tfm", "tfm"),
	}
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		ChainPath: resolveString(cmd, opts.Probe.Chain, "chain", "chain"),
		Probe:     probeSettings(cmd, opts.Probe),
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %s\n", result.AppPath)
	for _, fx := range result.Frameworks {
		fmt.Printf("- framework %s %s (%s)\n", fx.Name, fx.Version, fx.Dir)
	}
	for _, path := range result.AdditionalDeps {
		fmt.Printf("- additional deps %s\n", path)
	}
	for _, dir := range result.ProbeDirs {
		fmt.Printf("- probe dir %s\n", dir)
	}
	for _, probe := range result.Probes {
		if probe.Dir == "" {
			fmt.Printf("- probe %s\n", probe.Kind)
			continue
		}
		fmt.Printf("- probe %s %s\n", probe.Kind, probe.Dir)
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) || !viper.IsSet(key) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
