package layout

import (
	"fmt"

	"github.com/openfab-labs/gridforge/internal/tech"
)

// ViaArrayParams describes a square via-array region.
type ViaArrayParams struct {
	Size  float64 // edge length of the square region in microns
	Rules tech.DesignRules
}

// Validate rejects degenerate regions and impossible rules.
func (p ViaArrayParams) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("array size must be positive, got %g", p.Size)
	}
	if err := p.Rules.Validate(); err != nil {
		return err
	}
	if p.Rules.ViaPitch() > p.Size {
		return fmt.Errorf("via pitch %g exceeds array size %g, nothing fits", p.Rules.ViaPitch(), p.Size)
	}
	return nil
}

// ViaArray places the densest uniform grid of vias under continuous Metal5
// and MetalTop plates. Vias sit centered in pitch cells, pitch being
// via size plus minimum spacing.
func ViaArray(p ViaArrayParams) (*Scene, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := p.Rules
	pitch := r.ViaPitch()
	perRow := int(p.Size / pitch)

	s := NewScene(sceneName("dense_via_array", p.Size, r.ViaSize, r.ViaSpacing))

	// Full metal coverage guarantees via enclosure everywhere.
	s.AddRect(tech.LayerM5, 0, 0, p.Size, p.Size)
	s.AddRect(tech.LayerMT, 0, 0, p.Size, p.Size)

	for i := 0; i < perRow; i++ {
		x := float64(i)*pitch + pitch/2
		for j := 0; j < perRow; j++ {
			y := float64(j)*pitch + pitch/2
			s.AddRect(tech.LayerVia5,
				x-r.ViaSize/2, y-r.ViaSize/2,
				x+r.ViaSize/2, y+r.ViaSize/2)
		}
	}
	return s, nil
}

// ViaArrayStripes builds striped metal instead of solid plates: horizontal
// Metal5 stripes, vertical MetalTop stripes, and a via at every stripe
// intersection. Stripe width is widened when the configured metal width
// cannot enclose a via.
func ViaArrayStripes(p ViaArrayParams) (*Scene, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := p.Rules

	// Narrowest stripe that still encloses a via.
	minWidth := r.ViaSize + 2*r.ViaEnclosure
	m5Width := max(minWidth, r.M5Width)
	mtWidth := max(minWidth, r.MTWidth)

	m5Pitch := m5Width + r.M5Spacing
	mtPitch := mtWidth + r.MTSpacing

	numM5 := int(p.Size / m5Pitch)
	numMT := int(p.Size / mtPitch)
	if numM5 == 0 || numMT == 0 {
		return nil, fmt.Errorf("stripe pitch exceeds array size %g, nothing fits", p.Size)
	}

	s := NewScene(sceneName("dense_via_array_stripes", p.Size, r))

	for i := 0; i < numM5; i++ {
		yCenter := float64(i)*m5Pitch + m5Width/2
		s.AddRect(tech.LayerM5, 0, yCenter-m5Width/2, p.Size, yCenter+m5Width/2)
	}
	for i := 0; i < numMT; i++ {
		xCenter := float64(i)*mtPitch + mtWidth/2
		s.AddRect(tech.LayerMT, xCenter-mtWidth/2, 0, xCenter+mtWidth/2, p.Size)
	}

	for i := 0; i < numMT; i++ {
		x := float64(i)*mtPitch + mtWidth/2
		for j := 0; j < numM5; j++ {
			y := float64(j)*m5Pitch + m5Width/2
			s.AddRect(tech.LayerVia5,
				x-r.ViaSize/2, y-r.ViaSize/2,
				x+r.ViaSize/2, y+r.ViaSize/2)
		}
	}
	return s, nil
}

// ViaArrayStaggered packs vias in a brick pattern: odd rows are shifted by
// half a pitch and row/column counts run one past the uniform grid, bounded
// by the region edge. The metal plates are padded by the enclosure rule so
// edge vias stay enclosed. Callers wanting proof against the spacing rules
// should run Verify on the result; the stagger keeps the row pitch intact
// so the minimum via spacing holds whenever the rules themselves do.
func ViaArrayStaggered(p ViaArrayParams) (*Scene, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r := p.Rules
	pitch := r.ViaPitch()
	n := int(p.Size / pitch)

	s := NewScene(sceneName("optimized_via_array", p.Size, r.ViaSize, r.ViaSpacing, r.ViaEnclosure))

	s.AddRect(tech.LayerM5, -r.ViaEnclosure, -r.ViaEnclosure, p.Size+r.ViaEnclosure, p.Size+r.ViaEnclosure)
	s.AddRect(tech.LayerMT, -r.ViaEnclosure, -r.ViaEnclosure, p.Size+r.ViaEnclosure, p.Size+r.ViaEnclosure)

	for i := 0; i <= n; i++ {
		rowOffset := 0.0
		if i%2 == 1 {
			rowOffset = pitch / 2
		}
		y := float64(i) * pitch
		if y+r.ViaSize > p.Size {
			continue
		}
		for j := 0; j <= n; j++ {
			x := float64(j)*pitch + rowOffset
			if x+r.ViaSize > p.Size {
				continue
			}
			s.AddRect(tech.LayerVia5, x, y, x+r.ViaSize, y+r.ViaSize)
		}
	}
	return s, nil
}
