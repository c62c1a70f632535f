package layout

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Scene files come in two interchangeable forms: a JSON document (.json)
// for downstream tooling and a line-based text form (.scene) that diffs
// and greps cleanly. Both carry the same information.

// jsonScene is the serialized shape of a scene.
type jsonScene struct {
	Name   string      `json:"name"`
	Rects  []jsonRect  `json:"rects"`
	Labels []jsonLabel `json:"labels,omitempty"`
}

type jsonRect struct {
	Layer    string    `json:"layer"`
	Number   int       `json:"number"`
	Datatype int       `json:"datatype"`
	Box      [4]float64 `json:"box"` // x0, y0, x1, y1
}

type jsonLabel struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// EncodeJSON writes the scene as an indented JSON document.
func (s *Scene) EncodeJSON(w io.Writer) error {
	doc := jsonScene{Name: s.Name}
	doc.Rects = make([]jsonRect, 0, len(s.Rects))
	for _, r := range s.Rects {
		doc.Rects = append(doc.Rects, jsonRect{
			Layer:    r.Layer.Name,
			Number:   r.Layer.Number,
			Datatype: r.Layer.Datatype,
			Box:      [4]float64{r.X0, r.Y0, r.X1, r.Y1},
		})
	}
	for _, l := range s.Labels {
		doc.Labels = append(doc.Labels, jsonLabel{Text: l.Text, X: l.X, Y: l.Y})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// EncodeText writes the scene in the line-based text form:
//
//	Scene: <name>
//	Rect: <layer> <number> <datatype> <x0> <y0> <x1> <y1>
//	Label: <x> <y> <text>
//	SceneEnd
func (s *Scene) EncodeText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Scene: %s\n", s.Name)
	for _, r := range s.Rects {
		fmt.Fprintf(bw, "Rect: %s %d %d %.4f %.4f %.4f %.4f\n",
			r.Layer.Name, r.Layer.Number, r.Layer.Datatype, r.X0, r.Y0, r.X1, r.Y1)
	}
	for _, l := range s.Labels {
		fmt.Fprintf(bw, "Label: %.4f %.4f %s\n", l.X, l.Y, l.Text)
	}
	fmt.Fprintln(bw, "SceneEnd")
	return bw.Flush()
}

// WriteFile serializes the scene to path, choosing the format from the
// file extension. The parent directory is created as needed.
func (s *Scene) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = s.EncodeJSON(f)
	case ".scene":
		err = s.EncodeText(f)
	default:
		err = fmt.Errorf("unsupported scene format %q (want .json or .scene)", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
