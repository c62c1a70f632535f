package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cli/output"
)

// NewInitCommand scaffolds a new gridforge project.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a gridforge project",
		Long: `Creates gridforge.yaml, a starter categorization rule table, and a
.gitignore in the given directory (default: current directory). Existing
files are left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create project directory: %w", err)
			}

			created := 0
			for _, f := range scaffoldFiles {
				dest := filepath.Join(dir, f.dest)
				if _, err := os.Stat(dest); err == nil && !force {
					renderer.StatusLine(f.dest, "failed", "already exists (use --force to overwrite)")
					continue
				}

				data, err := scaffoldFS.ReadFile(f.src)
				if err != nil {
					return fmt.Errorf("failed to read template %s: %w", f.src, err)
				}
				if err := os.WriteFile(dest, data, 0600); err != nil {
					return fmt.Errorf("failed to write %s: %w", dest, err)
				}
				renderer.StatusLine(f.dest, "success", "")
				created++
			}

			if created == 0 {
				return fmt.Errorf("nothing created, all files already exist")
			}
			renderer.Success(fmt.Sprintf("initialized gridforge project in %s", dir))
			renderer.Println("")
			renderer.Println("Next steps:")
			renderer.Println("  1. Point pdk_dir at your GF180MCU PDK checkout")
			renderer.Println("  2. Run: gridforge doctor")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}
