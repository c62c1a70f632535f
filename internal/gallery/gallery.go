// Package gallery arranges standard cells into a labeled 2D overview
// layout. Cells are categorized with the shared rule table, grouped by
// drive strength, and placed category by category so related cells sit
// together. Cell geometry comes from the LEF abstracts: each cell is drawn
// as a boundary outline with a name label, which keeps the gallery
// independent of any binary layout format.
package gallery

import (
	"fmt"
	"math"
	"sort"

	"github.com/openfab-labs/gridforge/internal/cells"
	"github.com/openfab-labs/gridforge/internal/layout"
	"github.com/openfab-labs/gridforge/internal/lef"
	"github.com/openfab-labs/gridforge/internal/tech"
)

// DefaultPadding is the gap between neighboring cells in microns.
const DefaultPadding = 5.0

// Options controls gallery arrangement.
type Options struct {
	Name    string         // scene name, "stdcell_gallery" when empty
	Padding float64        // cell-to-cell gap, DefaultPadding when zero
	Rules   *cells.RuleSet // nil means the built-in rule table
}

// Result is an arranged gallery.
type Result struct {
	Scene      *layout.Scene
	Placed     int
	Columns    int
	ByCategory map[cells.Category]int
}

// Arrange builds the gallery scene from extracted cell records.
func Arrange(records []lef.Record, opts Options) (*Result, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no cells to arrange")
	}

	rules := opts.Rules
	if rules == nil {
		rules = cells.DefaultRuleSet()
	}
	padding := opts.Padding
	if padding == 0 {
		padding = DefaultPadding
	}
	name := opts.Name
	if name == "" {
		name = "stdcell_gallery"
	}

	// Bucket cells by category, ordered as the rule table orders them.
	byCategory := make(map[cells.Category][]lef.Record)
	for _, rec := range records {
		cat := rules.Categorize(rec.Name)
		byCategory[cat] = append(byCategory[cat], rec)
	}
	for _, members := range byCategory {
		sortByBaseAndDrive(rules, members)
	}

	// A roughly square grid sets the column count; every category starts
	// on a fresh row so the bands stay visually separate.
	cols := int(math.Ceil(math.Sqrt(float64(len(records)))))

	maxWidth, maxHeight := 0.0, 0.0
	for _, rec := range records {
		maxWidth = math.Max(maxWidth, rec.Width)
		maxHeight = math.Max(maxHeight, rec.Height)
	}
	pitchX := maxWidth + padding
	pitchY := maxHeight + padding

	scene := layout.NewScene(name)
	counts := make(map[cells.Category]int)

	row := 0
	for _, cat := range rules.Categories() {
		members := byCategory[cat]
		if len(members) == 0 {
			continue
		}
		counts[cat] = len(members)

		// Category banner on the left edge of its first row.
		scene.AddLabel(string(cat), 0, float64(row)*pitchY+maxHeight+padding/2)

		for i, rec := range members {
			col := i % cols
			if i > 0 && col == 0 {
				row++
			}
			x := float64(col) * pitchX
			y := float64(row) * pitchY

			scene.AddRect(tech.LayerBoundary, x, y, x+rec.Width, y+rec.Height)
			scene.AddLabel(rec.Name, x, y-padding/2)
		}
		row++
	}

	return &Result{
		Scene:      scene,
		Placed:     len(records),
		Columns:    cols,
		ByCategory: counts,
	}, nil
}

// sortByBaseAndDrive orders cells by base name, then ascending numeric
// drive strength, so buf_2 lands between buf_1 and buf_16.
func sortByBaseAndDrive(rules *cells.RuleSet, members []lef.Record) {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	order := make(map[string]int, len(names))
	pos := 0
	for _, g := range rules.GroupBySize(names) {
		for _, v := range g.Variants {
			order[v.Name] = pos
			pos++
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return order[members[i].Name] < order[members[j].Name]
	})
}
