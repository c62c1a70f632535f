package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cells"
	"github.com/openfab-labs/gridforge/internal/cli/output"
)

// NewCategorizeCommand classifies standard-cell names by function and groups
// drive-strength variants.
func NewCategorizeCommand() *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:   "categorize [cell-name...]",
		Short: "Classify cell names by function",
		Long: `Classifies standard-cell names into functional categories (logic gates,
flip-flops, buffers, ...) using the rule table. Library prefixes and drive
strength suffixes are stripped before matching. Names are read from the
arguments, or from stdin when none are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd)
			if err != nil {
				return err
			}

			rules, err := loadRuleSet(cc.Cfg.RulesFile)
			if err != nil {
				return err
			}
			rs := rulesOrDefault(rules)

			names := args
			if len(names) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						names = append(names, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read cell names: %w", err)
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no cell names given")
			}

			if group {
				return renderGroups(cc, rs, names)
			}
			return renderCategories(cc, rs, names)
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "group drive-strength variants by base name")

	return cmd
}

func renderCategories(cc *CommandContext, rs *cells.RuleSet, names []string) error {
	type entry struct {
		Name     string `json:"name"`
		Base     string `json:"base"`
		Drive    string `json:"drive"`
		Category string `json:"category"`
	}
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		base, drive := rs.Split(name)
		entries = append(entries, entry{
			Name:     name,
			Base:     base,
			Drive:    drive,
			Category: string(rs.Categorize(name)),
		})
	}

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		return cc.Renderer.JSON(entries)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cc.Renderer.Writer())
	t.AppendHeader(table.Row{"name", "base", "drive", "category"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Name, e.Base, e.Drive, e.Category})
	}
	if cc.Renderer.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		t.Render()
	}
	return nil
}

func renderGroups(cc *CommandContext, rs *cells.RuleSet, names []string) error {
	groups := rs.GroupBySize(names)

	if cc.Renderer.EffectiveMode() == output.ModeJSON {
		return cc.Renderer.JSON(groups)
	}

	cc.Renderer.Header(1, fmt.Sprintf("Cell groups (%d)", len(groups)))
	for _, g := range groups {
		drives := make([]string, len(g.Variants))
		for i, v := range g.Variants {
			drives[i] = v.Drive
		}
		cc.Renderer.StatusLine(g.Base, "success",
			fmt.Sprintf("x%s", strings.Join(drives, ", x")))
	}
	return nil
}
