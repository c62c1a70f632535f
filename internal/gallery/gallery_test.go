package gallery

import (
	"testing"

	"github.com/openfab-labs/gridforge/internal/cells"
	"github.com/openfab-labs/gridforge/internal/lef"
	"github.com/openfab-labs/gridforge/internal/tech"
)

func testRecords() []lef.Record {
	return []lef.Record{
		{Library: "libA", Type: "inv", Name: "inv_1", Width: 1.48, Height: 5.6},
		{Library: "libA", Type: "inv", Name: "inv_2", Width: 2.22, Height: 5.6},
		{Library: "libA", Type: "nand", Name: "nand2_1", Width: 2.96, Height: 5.6},
		{Library: "libA", Type: "dff", Name: "dffq_1", Width: 8.88, Height: 5.6},
	}
}

func TestArrange(t *testing.T) {
	result, err := Arrange(testRecords(), Options{})
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}

	if result.Placed != 4 {
		t.Errorf("Placed = %d, want 4", result.Placed)
	}
	if result.Columns != 2 {
		t.Errorf("Columns = %d, want 2", result.Columns)
	}
	if result.Scene.Name != "stdcell_gallery" {
		t.Errorf("scene name = %q", result.Scene.Name)
	}

	// One boundary outline per cell.
	if got := result.Scene.CountOnLayer(tech.LayerBoundary); got != 4 {
		t.Errorf("boundary count = %d, want 4", got)
	}

	// A name label per cell plus a banner per non-empty category.
	wantLabels := 4 + 3
	if got := len(result.Scene.Labels); got != wantLabels {
		t.Errorf("label count = %d, want %d", got, wantLabels)
	}

	if result.ByCategory[cells.CategoryBuffers] != 2 {
		t.Errorf("buffers = %d, want 2", result.ByCategory[cells.CategoryBuffers])
	}
	if result.ByCategory[cells.CategoryLogicGates] != 1 {
		t.Errorf("logic_gates = %d, want 1", result.ByCategory[cells.CategoryLogicGates])
	}
	if result.ByCategory[cells.CategoryFlipFlops] != 1 {
		t.Errorf("flip_flops = %d, want 1", result.ByCategory[cells.CategoryFlipFlops])
	}
}

func TestArrangeDriveOrderWithinCategory(t *testing.T) {
	records := []lef.Record{
		{Name: "buf_16", Width: 5, Height: 5},
		{Name: "buf_2", Width: 2, Height: 5},
		{Name: "buf_1", Width: 1, Height: 5},
	}
	result, err := Arrange(records, Options{})
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}

	// Labels carry the placement order: banner first, then cells by
	// ascending drive strength.
	var names []string
	for _, l := range result.Scene.Labels {
		names = append(names, l.Text)
	}
	want := []string{string(cells.CategoryBuffers), "buf_1", "buf_2", "buf_16"}
	if len(names) != len(want) {
		t.Fatalf("labels = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("labels = %v, want %v", names, want)
		}
	}
}

func TestArrangeCategoriesStartNewRows(t *testing.T) {
	records := testRecords()
	result, err := Arrange(records, Options{})
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}

	rules := cells.DefaultRuleSet()
	cellCat := make(map[string]cells.Category, len(records))
	for _, rec := range records {
		cellCat[rec.Name] = rules.Categorize(rec.Name)
	}

	// Cell labels sit at a fixed offset below their outline row, so two
	// cells with the same label Y share a row. Different categories must
	// never do that.
	seen := make(map[float64]cells.Category)
	for _, l := range result.Scene.Labels {
		c, ok := cellCat[l.Text]
		if !ok {
			continue // category banner
		}
		if prev, dup := seen[l.Y]; dup && prev != c {
			t.Fatalf("categories %s and %s share a row at y=%g", prev, c, l.Y)
		}
		seen[l.Y] = c
	}
}

func TestArrangeEmpty(t *testing.T) {
	if _, err := Arrange(nil, Options{}); err == nil {
		t.Error("Arrange(nil) succeeded")
	}
}

func TestArrangeCustomOptions(t *testing.T) {
	result, err := Arrange(testRecords(), Options{Name: "my_gallery", Padding: 10})
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if result.Scene.Name != "my_gallery" {
		t.Errorf("scene name = %q, want my_gallery", result.Scene.Name)
	}
}
