// Package cli wires the gridforge command tree: configuration loading,
// logging, and the subcommands that drive the generators.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cli/commands"
	"github.com/openfab-labs/gridforge/internal/cli/config"
)

// Commands that must work before any project configuration exists.
var skipConfigLoad = map[string]bool{
	"init":       true,
	"version":    true,
	"completion": true,
	"help":       true,
}

// NewRootCommand builds the gridforge root command.
func NewRootCommand(version string) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "gridforge",
		Short: "Batch layout and netlist generators for the GF180MCU PDK",
		Long: `gridforge generates via arrays, power distribution grids, standard-cell
galleries, cell size reports, and latch-based storage modules for the
GF180MCU open PDK. Results are written as portable scene files and
reports under the configured output directory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipConfigLoad[cmd.Name()] {
				return nil
			}

			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: configFile,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := commands.WithConfig(cmd.Context(), cfg)
			ctx = commands.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate("gridforge {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "path to gridforge.yaml (default: search upward)")
	pf.String("pdk-dir", "", "root of the GF180MCU PDK checkout")
	pf.String("out-dir", "", "directory for generated outputs")
	pf.StringP("output", "o", "", "output mode: auto, text, markdown, json")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(
		commands.NewViaArrayCommand(),
		commands.NewMetalGridCommand(),
		commands.NewGalleryCommand(),
		commands.NewSizesCommand(),
		commands.NewStoreCommand(),
		commands.NewCategorizeCommand(),
		commands.NewDoctorCommand(),
		commands.NewInitCommand(),
		commands.NewVersionCommand(version),
	)

	return root
}

// Execute runs the root command and returns a process exit code.
func Execute(version string) int {
	root := NewRootCommand(version)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
