package layout

import (
	"fmt"

	"github.com/openfab-labs/gridforge/internal/tech"
)

// MetalGridParams describes a crossing grid of metal traces with a via at
// every intersection. Horizontal traces ride Metal5, vertical traces ride
// MetalTop.
type MetalGridParams struct {
	Name       string  // optional; derived from parameters when empty
	GridSize   float64 // total grid extent in microns
	Lines      int     // number of traces in each direction
	M5Width    float64
	MTWidth    float64
	ViaSize    float64
	MinSpacing float64
}

// Validate rejects grids that cannot be constructed.
func (p MetalGridParams) Validate() error {
	if p.GridSize <= 0 {
		return fmt.Errorf("grid size must be positive, got %g", p.GridSize)
	}
	if p.Lines < 2 {
		return fmt.Errorf("grid needs at least 2 lines per direction, got %d", p.Lines)
	}
	if p.M5Width <= 0 || p.MTWidth <= 0 || p.ViaSize <= 0 || p.MinSpacing <= 0 {
		return fmt.Errorf("widths, via size and spacing must be positive")
	}
	return nil
}

// StandardGrid returns the default grid respecting GF180MCU top-metal rules.
func StandardGrid() MetalGridParams {
	return MetalGridParams{
		Name:       "metal_grid_with_vias_standard",
		GridSize:   100.0,
		Lines:      20,
		M5Width:    0.45,
		MTWidth:    0.45,
		ViaSize:    0.26,
		MinSpacing: 0.5,
	}
}

// DenseGrid returns a grid with twice the trace count of StandardGrid.
func DenseGrid() MetalGridParams {
	p := StandardGrid()
	p.Name = "metal_grid_with_vias_dense"
	p.Lines = 40
	return p
}

// WideGrid returns a grid with wider traces and fewer lines.
func WideGrid() MetalGridParams {
	p := StandardGrid()
	p.Name = "metal_grid_with_vias_wide"
	p.Lines = 15
	p.M5Width = 0.8
	p.MTWidth = 0.8
	return p
}

// MetalGrid builds the trace grid. The pitch spreads the requested line
// count across the grid but never drops below the width-plus-spacing floor
// that keeps crossing traces legal.
func MetalGrid(p MetalGridParams) (*Scene, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pitch := p.GridSize / float64(p.Lines-1)
	if floor := p.M5Width + p.MTWidth + p.MinSpacing; pitch < floor {
		pitch = floor
	}

	name := p.Name
	if name == "" {
		name = sceneName("metal_grid_with_vias", p.GridSize, p.Lines, p.M5Width, p.MTWidth)
	}
	s := NewScene(name)

	for i := 0; i < p.Lines; i++ {
		y := float64(i) * pitch
		s.AddRect(tech.LayerM5, 0, y-p.M5Width/2, p.GridSize, y+p.M5Width/2)
	}
	for i := 0; i < p.Lines; i++ {
		x := float64(i) * pitch
		s.AddRect(tech.LayerMT, x-p.MTWidth/2, 0, x+p.MTWidth/2, p.GridSize)
	}
	for i := 0; i < p.Lines; i++ {
		for j := 0; j < p.Lines; j++ {
			x := float64(i) * pitch
			y := float64(j) * pitch
			s.AddRect(tech.LayerVia5,
				x-p.ViaSize/2, y-p.ViaSize/2,
				x+p.ViaSize/2, y+p.ViaSize/2)
		}
	}
	return s, nil
}
