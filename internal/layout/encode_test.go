package layout

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openfab-labs/gridforge/internal/tech"
)

func testScene() *Scene {
	s := NewScene("encode_test")
	s.AddRect(tech.LayerM5, 0, 0, 10, 0.44)
	s.AddRect(tech.LayerVia5, 0.09, 0.09, 0.35, 0.35)
	s.AddLabel("anchor", 1.5, 2.5)
	return s
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	if err := testScene().EncodeText(&buf); err != nil {
		t.Fatalf("EncodeText: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"Scene: encode_test",
		"Rect: Metal5 51 0 0.0000 0.0000 10.0000 0.4400",
		"Rect: Via5 82 0 0.0900 0.0900 0.3500 0.3500",
		"Label: 1.5000 2.5000 anchor",
		"SceneEnd",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := testScene().EncodeJSON(&buf); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	var doc struct {
		Name  string `json:"name"`
		Rects []struct {
			Layer    string     `json:"layer"`
			Number   int        `json:"number"`
			Datatype int        `json:"datatype"`
			Box      [4]float64 `json:"box"`
		} `json:"rects"`
		Labels []struct {
			Text string  `json:"text"`
			X    float64 `json:"x"`
			Y    float64 `json:"y"`
		} `json:"labels"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Name != "encode_test" {
		t.Errorf("name = %q", doc.Name)
	}
	if len(doc.Rects) != 2 {
		t.Fatalf("rect count = %d, want 2", len(doc.Rects))
	}
	if doc.Rects[0].Layer != "Metal5" || doc.Rects[0].Number != 51 {
		t.Errorf("first rect = %+v", doc.Rects[0])
	}
	if doc.Rects[1].Box != [4]float64{0.09, 0.09, 0.35, 0.35} {
		t.Errorf("via box = %v", doc.Rects[1].Box)
	}
	if len(doc.Labels) != 1 || doc.Labels[0].Text != "anchor" {
		t.Errorf("labels = %+v", doc.Labels)
	}
}

func TestWriteFileFormats(t *testing.T) {
	dir := t.TempDir()
	s := testScene()

	jsonPath := filepath.Join(dir, "nested", "scene.json")
	if err := s.WriteFile(jsonPath); err != nil {
		t.Fatalf("WriteFile json: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !json.Valid(data) {
		t.Error("written .json file is not valid JSON")
	}

	textPath := filepath.Join(dir, "scene.scene")
	if err := s.WriteFile(textPath); err != nil {
		t.Fatalf("WriteFile scene: %v", err)
	}
	text, err := os.ReadFile(textPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(text), "Scene: encode_test\n") {
		t.Errorf("unexpected text header: %q", string(text)[:30])
	}

	if err := s.WriteFile(filepath.Join(dir, "scene.gds")); err == nil {
		t.Error("WriteFile accepted an unsupported extension")
	}
}
