package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cli/output"
	defaults "github.com/openfab-labs/gridforge/internal/config"
	"github.com/openfab-labs/gridforge/internal/lef"
)

// NewSizesCommand extracts cell dimensions from LEF abstracts and writes
// the size report.
func NewSizesCommand() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "Extract standard-cell dimensions from LEF into a CSV report",
		Long: `Scans the configured standard-cell libraries for LEF abstracts, parses
each cell's SIZE statement, and writes a CSV report of name, width, height,
and area. Duplicate cell names keep the first occurrence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd)
			if err != nil {
				return err
			}

			records, err := lef.ScanLibraries(cc.Logger, cc.Cfg.PDKDir, cc.Cfg.Libraries)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no LEF cells found under %s", cc.Cfg.PDKDir)
			}

			path := csvPath
			if path == "" {
				path = filepath.Join(cc.Cfg.OutDir, "reports", defaults.DefaultReportCSV)
			}
			if err := lef.WriteCSV(path, records); err != nil {
				return err
			}

			switch cc.Renderer.EffectiveMode() {
			case output.ModeJSON:
				return cc.Renderer.JSON(records)
			case output.ModeMarkdown:
				lef.RenderMarkdown(cc.Renderer.Writer(), records)
			default:
				lef.RenderTable(cc.Renderer.Writer(), records)
			}
			cc.Renderer.Success(fmt.Sprintf("wrote %d cells to %s", len(records), path))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV report path (default: <out-dir>/reports/"+defaults.DefaultReportCSV+")")

	return cmd
}
