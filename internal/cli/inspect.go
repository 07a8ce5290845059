package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsprobe/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the probe paths and breadcrumbs of a previous resolve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("tpa entries: %d\n", result.TPACount)
	fmt.Printf("native entries: %d\n", result.NativeCount)
	if len(result.NativeDirs) > 0 {
		fmt.Printf("  %s\n", strings.Join(result.NativeDirs, ", "))
	}
	fmt.Printf("resource entries: %d\n", result.ResourceCount)
	if len(result.ResourceDirs) > 0 {
		fmt.Printf("  %s\n", strings.Join(result.ResourceDirs, ", "))
	}
	if result.CoreCLR != "" {
		fmt.Printf("coreclr: %s (%s)\n", result.CoreCLR, result.CoreCLRVersion)
	}
	if result.CLRJit != "" {
		fmt.Printf("clrjit: %s\n", result.CLRJit)
	}
	fmt.Printf("breadcrumbs: %d\n", len(result.Breadcrumbs))
	for _, crumb := range result.Breadcrumbs {
		fmt.Printf("- %s %s\n", crumb.Name, crumb.Version)
	}
	return nil
}
