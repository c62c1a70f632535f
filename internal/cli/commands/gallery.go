package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cells"
	"github.com/openfab-labs/gridforge/internal/cli/output"
	"github.com/openfab-labs/gridforge/internal/gallery"
	"github.com/openfab-labs/gridforge/internal/lef"
)

// NewGalleryCommand arranges every library cell into a categorized overview
// scene.
func NewGalleryCommand() *cobra.Command {
	var (
		name    string
		padding float64
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Arrange all standard cells into a categorized gallery scene",
		Long: `Builds an overview layout of every cell in the configured libraries.
Cells are categorized by function, sorted by drive strength, and placed in
labeled rows, one band per category. Cell outlines come from the LEF
abstracts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd)
			if err != nil {
				return err
			}

			rules, err := loadRuleSet(cc.Cfg.RulesFile)
			if err != nil {
				return err
			}

			records, err := lef.ScanLibraries(cc.Logger, cc.Cfg.PDKDir, cc.Cfg.Libraries)
			if err != nil {
				return err
			}

			result, err := gallery.Arrange(records, gallery.Options{
				Name:    name,
				Padding: padding,
				Rules:   rules,
			})
			if err != nil {
				return err
			}

			files, err := writeScene(cc.Cfg.OutDir, result.Scene)
			if err != nil {
				return err
			}

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(map[string]any{
					"scene":       result.Scene.Name,
					"placed":      result.Placed,
					"columns":     result.Columns,
					"by_category": result.ByCategory,
					"files":       files,
				})
			}

			cc.Renderer.Header(1, "Standard cell gallery")
			for _, cat := range rulesOrDefault(rules).Categories() {
				if n := result.ByCategory[cat]; n > 0 {
					cc.Renderer.StatusLine(string(cat), "success", fmt.Sprintf("%d cells", n))
				}
			}
			cc.Renderer.Success(fmt.Sprintf("placed %d cells in %d columns, wrote %s",
				result.Placed, result.Columns, filepath.Base(files[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "scene name (default: stdcell_gallery)")
	cmd.Flags().Float64Var(&padding, "padding", gallery.DefaultPadding, "gap between cells in microns")

	return cmd
}

// loadRuleSet returns the configured categorization rules, or nil when the
// built-in table should be used.
func loadRuleSet(path string) (*cells.RuleSet, error) {
	if path == "" {
		return nil, nil
	}
	rs, err := cells.LoadRuleSet(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule table: %w", err)
	}
	return rs, nil
}

func rulesOrDefault(rs *cells.RuleSet) *cells.RuleSet {
	if rs == nil {
		return cells.DefaultRuleSet()
	}
	return rs
}
