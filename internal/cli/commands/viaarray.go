package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cli/output"
	"github.com/openfab-labs/gridforge/internal/layout"
	"github.com/openfab-labs/gridforge/internal/tech"
)

// viaArrayPolicies maps policy names to their generators, in display order.
var viaArrayPolicies = []struct {
	name  string
	build func(layout.ViaArrayParams) (*layout.Scene, error)
}{
	{"grid", layout.ViaArray},
	{"stripes", layout.ViaArrayStripes},
	{"staggered", layout.ViaArrayStaggered},
}

// NewViaArrayCommand generates square via arrays between Metal5 and MetalTop.
func NewViaArrayCommand() *cobra.Command {
	var (
		size         float64
		policy       string
		verify       bool
		viaSize      float64
		viaSpacing   float64
		viaEnclosure float64
	)

	cmd := &cobra.Command{
		Use:   "via-array",
		Short: "Generate dense Via5 arrays between Metal5 and MetalTop",
		Long: `Generates square via arrays at minimum pitch. Three fill policies are
available: grid (uniform vias under solid plates), stripes (crossing metal
stripes with a via per intersection), and staggered (a brick pattern with
odd rows shifted by half a pitch).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd)
			if err != nil {
				return err
			}

			rules := cc.Cfg.Rules()
			if cmd.Flags().Changed("via-size") {
				rules.ViaSize = viaSize
			}
			if cmd.Flags().Changed("via-spacing") {
				rules.ViaSpacing = viaSpacing
			}
			if cmd.Flags().Changed("via-enclosure") {
				rules.ViaEnclosure = viaEnclosure
			}
			params := layout.ViaArrayParams{Size: size, Rules: rules}

			var selected []string
			switch policy {
			case "all":
				for _, p := range viaArrayPolicies {
					selected = append(selected, p.name)
				}
			case "grid", "stripes", "staggered":
				selected = []string{policy}
			default:
				return fmt.Errorf("unknown policy %q (want grid, stripes, staggered, or all)", policy)
			}

			type sceneReport struct {
				Policy string   `json:"policy"`
				Scene  string   `json:"scene"`
				Vias   int      `json:"vias"`
				Files  []string `json:"files"`
			}
			var reports []sceneReport

			for _, name := range selected {
				var scene *layout.Scene
				for _, p := range viaArrayPolicies {
					if p.name == name {
						scene, err = p.build(params)
						break
					}
				}
				if err != nil {
					return fmt.Errorf("via array policy %s: %w", name, err)
				}

				if verify {
					if violations := layout.Verify(scene, rules); len(violations) > 0 {
						for _, v := range violations {
							cc.Logger.Error("design rule violation",
								"policy", name, "kind", v.Kind, "detail", v.Message)
						}
						return fmt.Errorf("policy %s produced %d design rule violations", name, len(violations))
					}
				}

				files, err := writeScene(cc.Cfg.OutDir, scene)
				if err != nil {
					return err
				}
				reports = append(reports, sceneReport{
					Policy: name,
					Scene:  scene.Name,
					Vias:   scene.CountOnLayer(tech.LayerVia5),
					Files:  files,
				})
			}

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(reports)
			}
			cc.Renderer.Header(1, fmt.Sprintf("Via arrays (%gx%g um)", size, size))
			for _, r := range reports {
				cc.Renderer.StatusLine(r.Policy, "success",
					fmt.Sprintf("%d vias, %s", r.Vias, filepath.Base(r.Files[0])))
			}
			cc.Renderer.Success(fmt.Sprintf("wrote %d scene(s) under %s",
				len(reports), filepath.Join(cc.Cfg.OutDir, "layout")))
			return nil
		},
	}

	cmd.Flags().Float64Var(&size, "size", 100.0, "array edge length in microns")
	cmd.Flags().StringVar(&policy, "policy", "all", "fill policy: grid, stripes, staggered, or all")
	cmd.Flags().BoolVar(&verify, "verify", true, "check results against the design rules")
	cmd.Flags().Float64Var(&viaSize, "via-size", 0.26, "via edge length in microns")
	cmd.Flags().Float64Var(&viaSpacing, "via-spacing", 0.28, "minimum via spacing in microns")
	cmd.Flags().Float64Var(&viaEnclosure, "via-enclosure", 0.09, "metal enclosure of vias in microns")

	return cmd
}

// writeScene serializes a scene in both supported formats under
// outDir/layout and returns the written paths.
func writeScene(outDir string, s *layout.Scene) ([]string, error) {
	dir := filepath.Join(outDir, "layout")
	paths := []string{
		filepath.Join(dir, s.Name+".json"),
		filepath.Join(dir, s.Name+".scene"),
	}
	for _, p := range paths {
		if err := s.WriteFile(p); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
