package layout

import (
	"fmt"
	"math"

	"github.com/openfab-labs/gridforge/internal/tech"
)

// Violation reports a design-rule breach found in a scene.
type Violation struct {
	Kind    string // "spacing" or "enclosure"
	Layer   tech.Layer
	Message string
}

// tolerance absorbs float64 noise when a gap lands exactly on the rule.
const tolerance = 1e-9

// Verify checks a scene against the design rules: minimum edge-to-edge
// spacing between disjoint shapes on each layer, and metal enclosure of
// every via on both connecting layers. Generators are expected to produce
// clean scenes; this is the proof.
func Verify(s *Scene, rules tech.DesignRules) []Violation {
	var out []Violation

	minSpacing := map[tech.Layer]float64{
		tech.LayerVia5: rules.ViaSpacing,
		tech.LayerM5:   rules.M5Spacing,
		tech.LayerMT:   rules.MTSpacing,
	}

	byLayer := make(map[tech.Layer][]Rect)
	for _, r := range s.Rects {
		byLayer[r.Layer] = append(byLayer[r.Layer], r)
	}

	for layer, spacing := range minSpacing {
		out = append(out, checkSpacing(layer, byLayer[layer], spacing)...)
	}
	out = append(out, checkEnclosure(byLayer, rules.ViaEnclosure)...)
	return out
}

// checkSpacing finds disjoint same-layer pairs closer than the minimum.
// Rects are binned into a coarse grid so dense via arrays stay tractable;
// a rect is registered in every bin its spacing-inflated extent overlaps.
func checkSpacing(layer tech.Layer, rects []Rect, spacing float64) []Violation {
	if len(rects) < 2 || spacing <= 0 {
		return nil
	}

	const cell = 4.0
	bins := make(map[[2]int][]int)
	for idx, r := range rects {
		x0 := int(math.Floor((r.X0 - spacing) / cell))
		x1 := int(math.Floor((r.X1 + spacing) / cell))
		y0 := int(math.Floor((r.Y0 - spacing) / cell))
		y1 := int(math.Floor((r.Y1 + spacing) / cell))
		for bx := x0; bx <= x1; bx++ {
			for by := y0; by <= y1; by++ {
				bins[[2]int{bx, by}] = append(bins[[2]int{bx, by}], idx)
			}
		}
	}

	var out []Violation
	seen := make(map[[2]int]bool)
	for _, members := range bins {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				if a > b {
					a, b = b, a
				}
				if seen[[2]int{a, b}] {
					continue
				}
				seen[[2]int{a, b}] = true

				d, disjoint := rectDistance(rects[a], rects[b])
				if disjoint && d < spacing-tolerance {
					out = append(out, Violation{
						Kind:  "spacing",
						Layer: layer,
						Message: fmt.Sprintf("%s shapes %.3f apart, rule is %.3f (near %.3f,%.3f)",
							layer.Name, d, spacing, rects[a].X0, rects[a].Y0),
					})
				}
			}
		}
	}
	return out
}

// rectDistance returns the edge-to-edge distance between two rectangles.
// Overlapping or touching rectangles are not disjoint and carry no spacing
// requirement.
func rectDistance(a, b Rect) (dist float64, disjoint bool) {
	dx := math.Max(a.X0, b.X0) - math.Min(a.X1, b.X1)
	dy := math.Max(a.Y0, b.Y0) - math.Min(a.Y1, b.Y1)
	if dx <= 0 && dy <= 0 {
		return 0, false
	}
	dx = math.Max(dx, 0)
	dy = math.Max(dy, 0)
	if dx > 0 && dy > 0 {
		return math.Hypot(dx, dy), true
	}
	return math.Max(dx, dy), true
}

// checkEnclosure requires every via to sit inside a single metal shape with
// the enclosure margin, on both Metal5 and MetalTop. The generators build
// enclosures from whole shapes rather than abutting fragments, so per-shape
// containment is the right test.
func checkEnclosure(byLayer map[tech.Layer][]Rect, enclosure float64) []Violation {
	vias := byLayer[tech.LayerVia5]
	if len(vias) == 0 {
		return nil
	}

	var out []Violation
	for _, metalLayer := range []tech.Layer{tech.LayerM5, tech.LayerMT} {
		metal := byLayer[metalLayer]
		for _, v := range vias {
			if !enclosedByAny(v, metal, enclosure) {
				out = append(out, Violation{
					Kind:  "enclosure",
					Layer: metalLayer,
					Message: fmt.Sprintf("via at %.3f,%.3f not enclosed by %.3f of %s",
						v.X0, v.Y0, enclosure, metalLayer.Name),
				})
			}
		}
	}
	return out
}

func enclosedByAny(v Rect, metal []Rect, enclosure float64) bool {
	for _, m := range metal {
		if v.X0 >= m.X0+enclosure-tolerance &&
			v.Y0 >= m.Y0+enclosure-tolerance &&
			v.X1 <= m.X1-enclosure+tolerance &&
			v.Y1 <= m.Y1-enclosure+tolerance {
			return true
		}
	}
	return false
}
