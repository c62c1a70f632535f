// Package tech describes the GF180MCU process as seen by the generators:
// the GDS layer map for the top two routing levels and the design rules
// that constrain via and metal placement.
package tech

import "fmt"

// Layer identifies a GDS layer/datatype pair.
type Layer struct {
	Name     string `json:"name" koanf:"name"`
	Number   int    `json:"number" koanf:"number"`
	Datatype int    `json:"datatype" koanf:"datatype"`
}

// Standard GF180MCU layer numbers for the Metal5/Metal6 stack, plus the
// placement-boundary layer used for cell outlines in galleries.
var (
	LayerM5       = Layer{Name: "Metal5", Number: 51, Datatype: 0}
	LayerMT       = Layer{Name: "MetalTop", Number: 81, Datatype: 0}
	LayerVia5     = Layer{Name: "Via5", Number: 82, Datatype: 0}
	LayerBoundary = Layer{Name: "Boundary", Number: 63, Datatype: 0}
)

// DesignRules holds the manufacturing constraints relevant to via and
// metal-grid generation. All dimensions are in microns.
type DesignRules struct {
	ViaSize      float64 `json:"via_size" koanf:"via_size"`
	ViaSpacing   float64 `json:"via_spacing" koanf:"via_spacing"`
	ViaEnclosure float64 `json:"via_enclosure" koanf:"via_enclosure"`
	M5Width      float64 `json:"m5_width" koanf:"m5_width"`
	M5Spacing    float64 `json:"m5_spacing" koanf:"m5_spacing"`
	MTWidth      float64 `json:"mt_width" koanf:"mt_width"`
	MTSpacing    float64 `json:"mt_spacing" koanf:"mt_spacing"`
}

// GF180MCU returns the minimum design rules for the Metal5/MetalTop stack.
func GF180MCU() DesignRules {
	return DesignRules{
		ViaSize:      0.26,
		ViaSpacing:   0.28,
		ViaEnclosure: 0.09,
		M5Width:      0.44,
		M5Spacing:    0.46,
		MTWidth:      0.44,
		MTSpacing:    0.46,
	}
}

// ViaPitch is the center-to-center distance between adjacent vias.
func (r DesignRules) ViaPitch() float64 {
	return r.ViaSize + r.ViaSpacing
}

// Validate rejects rule sets that no generator could satisfy.
func (r DesignRules) Validate() error {
	type field struct {
		name  string
		value float64
	}
	for _, f := range []field{
		{"via_size", r.ViaSize},
		{"via_spacing", r.ViaSpacing},
		{"m5_width", r.M5Width},
		{"m5_spacing", r.M5Spacing},
		{"mt_width", r.MTWidth},
		{"mt_spacing", r.MTSpacing},
	} {
		if f.value <= 0 {
			return fmt.Errorf("design rule %s must be positive, got %g", f.name, f.value)
		}
	}
	if r.ViaEnclosure < 0 {
		return fmt.Errorf("design rule via_enclosure must not be negative, got %g", r.ViaEnclosure)
	}
	return nil
}

// Merge overlays non-zero fields from o onto r and returns the result.
// Used to apply config-file overrides on top of the process minimums.
func (r DesignRules) Merge(o DesignRules) DesignRules {
	merged := r
	if o.ViaSize > 0 {
		merged.ViaSize = o.ViaSize
	}
	if o.ViaSpacing > 0 {
		merged.ViaSpacing = o.ViaSpacing
	}
	if o.ViaEnclosure > 0 {
		merged.ViaEnclosure = o.ViaEnclosure
	}
	if o.M5Width > 0 {
		merged.M5Width = o.M5Width
	}
	if o.M5Spacing > 0 {
		merged.M5Spacing = o.M5Spacing
	}
	if o.MTWidth > 0 {
		merged.MTWidth = o.MTWidth
	}
	if o.MTSpacing > 0 {
		merged.MTSpacing = o.MTSpacing
	}
	return merged
}
