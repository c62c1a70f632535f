// Package layout builds geometric scenes for via arrays, metal grids and
// cell galleries. A scene is an in-memory set of layer-tagged rectangles and
// text labels, built once and serialized once.
package layout

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/openfab-labs/gridforge/internal/tech"
)

// Rect is an axis-aligned rectangle on a process layer, in microns.
type Rect struct {
	Layer tech.Layer
	X0    float64
	Y0    float64
	X1    float64
	Y1    float64
}

// NewRect normalizes corner order so X0 <= X1 and Y0 <= Y1.
func NewRect(layer tech.Layer, x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Layer: layer, X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the rectangle's vertical extent.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Label is a text annotation anchored at a point.
type Label struct {
	Text string
	X    float64
	Y    float64
}

// Scene is a named collection of rectangles and labels.
type Scene struct {
	Name   string
	Rects  []Rect
	Labels []Label
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{Name: name}
}

// AddRect appends a normalized rectangle.
func (s *Scene) AddRect(layer tech.Layer, x0, y0, x1, y1 float64) {
	s.Rects = append(s.Rects, NewRect(layer, x0, y0, x1, y1))
}

// AddLabel appends a text label.
func (s *Scene) AddLabel(text string, x, y float64) {
	s.Labels = append(s.Labels, Label{Text: text, X: x, Y: y})
}

// CountOnLayer returns the number of rectangles on the given layer.
func (s *Scene) CountOnLayer(layer tech.Layer) int {
	n := 0
	for _, r := range s.Rects {
		if r.Layer == layer {
			n++
		}
	}
	return n
}

// Bounds returns the bounding box over all rectangles and label anchors.
// Empty scenes report all zeros.
func (s *Scene) Bounds() (x0, y0, x1, y1 float64) {
	if len(s.Rects) == 0 && len(s.Labels) == 0 {
		return 0, 0, 0, 0
	}
	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)
	for _, r := range s.Rects {
		x0 = math.Min(x0, r.X0)
		y0 = math.Min(y0, r.Y0)
		x1 = math.Max(x1, r.X1)
		y1 = math.Max(y1, r.Y1)
	}
	for _, l := range s.Labels {
		x0 = math.Min(x0, l.X)
		y0 = math.Min(y0, l.Y)
		x1 = math.Max(x1, l.X)
		y1 = math.Max(y1, l.Y)
	}
	return x0, y0, x1, y1
}

// sceneName derives a stable component name from the generator parameters.
// A parameter hash replaces the old process-wide naming counter, so equal
// inputs name their scenes identically across runs and no cross-call
// ordering dependency exists.
func sceneName(prefix string, params ...any) string {
	h := fnv.New64a()
	for _, p := range params {
		fmt.Fprintf(h, "%v;", p)
	}
	return fmt.Sprintf("%s_%08x", prefix, h.Sum64()&0xffffffff)
}
