package layout

import (
	"testing"

	"github.com/openfab-labs/gridforge/internal/tech"
)

func TestMetalGridCounts(t *testing.T) {
	tests := []struct {
		name   string
		params MetalGridParams
	}{
		{"standard", StandardGrid()},
		{"dense", DenseGrid()},
		{"wide", WideGrid()},
	}
	for _, tt := range tests {
		s, err := MetalGrid(tt.params)
		if err != nil {
			t.Fatalf("%s: MetalGrid: %v", tt.name, err)
		}

		lines := tt.params.Lines
		if got := s.CountOnLayer(tech.LayerM5); got != lines {
			t.Errorf("%s: Metal5 trace count = %d, want %d", tt.name, got, lines)
		}
		if got := s.CountOnLayer(tech.LayerMT); got != lines {
			t.Errorf("%s: MetalTop trace count = %d, want %d", tt.name, got, lines)
		}
		if got := s.CountOnLayer(tech.LayerVia5); got != lines*lines {
			t.Errorf("%s: via count = %d, want %d", tt.name, got, lines*lines)
		}
	}
}

func TestMetalGridPitchFloor(t *testing.T) {
	// 200 lines over 10um would need a 0.05um pitch; the floor of
	// width + width + spacing must win.
	p := MetalGridParams{
		GridSize:   10.0,
		Lines:      200,
		M5Width:    0.45,
		MTWidth:    0.45,
		ViaSize:    0.26,
		MinSpacing: 0.5,
	}
	s, err := MetalGrid(p)
	if err != nil {
		t.Fatalf("MetalGrid: %v", err)
	}

	floor := p.M5Width + p.MTWidth + p.MinSpacing
	var prev float64
	seen := 0
	for _, r := range s.Rects {
		if r.Layer != tech.LayerM5 {
			continue
		}
		center := (r.Y0 + r.Y1) / 2
		if seen > 0 {
			if gap := center - prev; gap < floor-tolerance {
				t.Fatalf("trace pitch %g below floor %g", gap, floor)
			}
		}
		prev = center
		seen++
	}
	if seen != p.Lines {
		t.Fatalf("found %d Metal5 traces, want %d", seen, p.Lines)
	}
}

func TestMetalGridViasSitOnCrossings(t *testing.T) {
	s, err := MetalGrid(StandardGrid())
	if err != nil {
		t.Fatalf("MetalGrid: %v", err)
	}

	// Every via center must lie inside a horizontal and a vertical trace.
	var m5, mt, vias []Rect
	for _, r := range s.Rects {
		switch r.Layer {
		case tech.LayerM5:
			m5 = append(m5, r)
		case tech.LayerMT:
			mt = append(mt, r)
		case tech.LayerVia5:
			vias = append(vias, r)
		}
	}
	contains := func(shapes []Rect, x, y float64) bool {
		for _, s := range shapes {
			if x >= s.X0 && x <= s.X1 && y >= s.Y0 && y <= s.Y1 {
				return true
			}
		}
		return false
	}
	for _, v := range vias {
		cx, cy := (v.X0+v.X1)/2, (v.Y0+v.Y1)/2
		if !contains(m5, cx, cy) || !contains(mt, cx, cy) {
			t.Fatalf("via center %g,%g off the trace grid", cx, cy)
		}
	}
}

func TestMetalGridRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MetalGridParams)
	}{
		{"zero size", func(p *MetalGridParams) { p.GridSize = 0 }},
		{"one line", func(p *MetalGridParams) { p.Lines = 1 }},
		{"zero width", func(p *MetalGridParams) { p.M5Width = 0 }},
		{"negative spacing", func(p *MetalGridParams) { p.MinSpacing = -1 }},
	}
	for _, tt := range tests {
		p := StandardGrid()
		tt.mutate(&p)
		if _, err := MetalGrid(p); err == nil {
			t.Errorf("%s: MetalGrid accepted invalid params", tt.name)
		}
	}
}

func TestMetalGridPresetNames(t *testing.T) {
	for _, p := range []MetalGridParams{StandardGrid(), DenseGrid(), WideGrid()} {
		s, err := MetalGrid(p)
		if err != nil {
			t.Fatalf("MetalGrid(%s): %v", p.Name, err)
		}
		if s.Name != p.Name {
			t.Errorf("scene name = %q, want %q", s.Name, p.Name)
		}
	}
}
