package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsprobe/internal/app"
)

type resolveOptions struct {
	Probe                probeOptions
	MaxFxLevel           int
	IgnoreMissing        bool
	RequireNativeRuntime bool
	OutputDir            string
	BreadcrumbDir        string
	SBOMPath             string
	MetricsFile          string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve TPA, native and resource probe paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	addProbeFlags(cmd, &opts.Probe)
	cmd.Flags().IntVar(&opts.MaxFxLevel, "max-fx-level", -1, "Deepest framework level to include (-1 for all)")
	cmd.Flags().BoolVar(&opts.IgnoreMissing, "ignore-missing", false, "Skip assets no probe location can satisfy")
	cmd.Flags().BoolVar(&opts.RequireNativeRuntime, "require-native-runtime", false, "Fail when coreclr or clrjit cannot be located")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().StringVar(&opts.BreadcrumbDir, "breadcrumb-dir", "", "Directory receiving servicing breadcrumb markers")
	cmd.Flags().StringVar(&opts.SBOMPath, "sbom", "", "Write an SPDX SBOM of resolved packages to this path")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")

	_ = viper.BindPFlag("max_fx_level", cmd.Flags().Lookup("max-fx-level"))
	_ = viper.BindPFlag("ignore_missing", cmd.Flags().Lookup("ignore-missing"))
	_ = viper.BindPFlag("require_native_runtime", cmd.Flags().Lookup("require-native-runtime"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("breadcrumb_dir", cmd.Flags().Lookup("breadcrumb-dir"))
	_ = viper.BindPFlag("sbom", cmd.Flags().Lookup("sbom"))
	_ = viper.BindPFlag("metrics_file", cmd.Flags().Lookup("metrics-file"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		ChainPath:            resolveString(cmd, opts.Probe.Chain, "chain", "chain"),
		Probe:                probeSettings(cmd, opts.Probe),
		MaxFxLevel:           resolveInt(cmd, opts.MaxFxLevel, "max_fx_level", "max-fx-level"),
		IgnoreMissing:        resolveBool(cmd, opts.IgnoreMissing, "ignore_missing", "ignore-missing"),
		RequireNativeRuntime: resolveBool(cmd, opts.RequireNativeRuntime, "require_native_runtime", "require-native-runtime"),
		OutputDir:            resolveString(cmd, opts.OutputDir, "output", "output"),
		BreadcrumbDir:        resolveString(cmd, opts.BreadcrumbDir, "breadcrumb_dir", "breadcrumb-dir"),
		SBOMPath:             resolveString(cmd, opts.SBOMPath, "sbom", "sbom"),
		MetricsFile:          resolveString(cmd, opts.MetricsFile, "metrics_file", "metrics-file"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %s\n", result.AppName)
	fmt.Printf("tpa: %d native: %d resources: %d\n", len(result.Paths.TPA), len(result.Paths.Native), len(result.Paths.Resources))
	if result.Paths.CoreCLR != "" {
		fmt.Printf("coreclr: %s (%s)\n", result.Paths.CoreCLR, result.Paths.CoreCLRVersion)
	}
	if result.Paths.CLRJit != "" {
		fmt.Printf("clrjit: %s\n", result.Paths.CLRJit)
	}
	fmt.Printf("breadcrumbs: %d (written %d)\n", len(result.Breadcrumbs), result.BreadcrumbsWritten)
	if result.OutputDir != "" {
		fmt.Printf("output: %s\n", result.OutputDir)
	}
	return nil
}
