package lef

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractSize(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Size
		ok      bool
	}{
		{
			"plain",
			"MACRO inv_1\n  SIZE 12.500 BY 8.000 ;\nEND inv_1\n",
			Size{Width: 12.5, Height: 8.0},
			true,
		},
		{
			"extra whitespace",
			"SIZE   1.480    BY   5.600;",
			Size{Width: 1.48, Height: 5.6},
			true,
		},
		{
			"first record wins",
			"SIZE 1.000 BY 2.000 ;\nSIZE 3.000 BY 4.000 ;",
			Size{Width: 1, Height: 2},
			true,
		},
		{"no record", "MACRO inv_1\nEND inv_1\n", Size{}, false},
		{"integer dimensions not matched", "SIZE 12 BY 8 ;", Size{}, false},
		{"empty", "", Size{}, false},
	}
	for _, tt := range tests {
		got, ok := ExtractSize(tt.content)
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%s: size = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestSizeArea(t *testing.T) {
	s := Size{Width: 12.5, Height: 8.0}
	if s.Area() != 100.0 {
		t.Errorf("Area() = %g, want 100", s.Area())
	}
}

func TestCellName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/pdk/cells/inv/inv_1.lef", "inv_1"},
		{"inv_1.magic.lef", "inv_1"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := CellName(tt.path); got != tt.want {
			t.Errorf("CellName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// writePDK lays out a minimal libraries/<lib>/latest/docs/cells tree.
func writePDK(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScanLibraries(t *testing.T) {
	pdk := writePDK(t, map[string]string{
		"libraries/libA/latest/docs/cells/inv/inv_1.lef":   "SIZE 1.480 BY 5.600 ;",
		"libraries/libA/latest/docs/cells/inv/inv_2.lef":   "SIZE 2.220 BY 5.600 ;",
		"libraries/libA/latest/docs/cells/buf/buf_1.lef":   "SIZE 2.960 BY 5.600 ;",
		"libraries/libA/latest/docs/cells/inv/broken.lef":  "MACRO broken\nEND\n",
		"libraries/libB/latest/docs/cells/nand/nand_1.lef": "SIZE 3.700 BY 5.600 ;",
		// Duplicate name in a second library keeps the first occurrence.
		"libraries/libB/latest/docs/cells/inv/inv_1.lef": "SIZE 9.990 BY 9.990 ;",
	})

	records, err := ScanLibraries(discardLogger(), pdk, []string{"libA", "libB"})
	if err != nil {
		t.Fatalf("ScanLibraries: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("record count = %d, want 4", len(records))
	}

	// Sorted by (library, name).
	wantNames := []string{"buf_1", "inv_1", "inv_2", "nand_1"}
	for i, want := range wantNames {
		if records[i].Name != want {
			t.Errorf("record %d name = %q, want %q", i, records[i].Name, want)
		}
	}

	// inv_1 was claimed by libA; the libB copy must not override it.
	for _, r := range records {
		if r.Name == "inv_1" {
			if r.Library != "libA" || r.Width != 1.48 {
				t.Errorf("inv_1 record = %+v, want libA 1.48", r)
			}
		}
	}

	if records[0].Type != "buf" {
		t.Errorf("buf_1 type = %q, want buf", records[0].Type)
	}
	if a := records[0].Area; math.Abs(a-16.576) > 1e-9 {
		t.Errorf("buf_1 area = %g, want 16.576", a)
	}
}

func TestScanLibrariesMissingPDK(t *testing.T) {
	_, err := ScanLibraries(discardLogger(), "/does/not/exist", []string{"libA"})
	if err == nil {
		t.Fatal("expected error for missing PDK path")
	}
	if !strings.Contains(err.Error(), "PDK path not found") {
		t.Errorf("error = %q, want PDK path not found", err)
	}
}

func TestScanLibrariesSkipsMissingLibrary(t *testing.T) {
	pdk := writePDK(t, map[string]string{
		"libraries/libA/latest/docs/cells/inv/inv_1.lef": "SIZE 1.480 BY 5.600 ;",
	})

	records, err := ScanLibraries(discardLogger(), pdk, []string{"nosuchlib", "libA"})
	if err != nil {
		t.Fatalf("ScanLibraries: %v", err)
	}
	if len(records) != 1 || records[0].Name != "inv_1" {
		t.Fatalf("records = %+v, want just inv_1", records)
	}
}

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{Library: "libA", Type: "inv", Name: "inv_1", Width: 1.48, Height: 5.6, Area: 8.288},
	}

	path := filepath.Join(t.TempDir(), "report", "sizes.csv")
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("CSV has %d lines, want 2:\n%s", len(lines), data)
	}
	if lines[0] != "library,type,name,width_um,height_um,area_um2" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "libA,inv,inv_1,1.48,5.6,") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestRenderMarkdown(t *testing.T) {
	records := []Record{
		{Library: "libA", Type: "inv", Name: "inv_1", Width: 1.48, Height: 5.6, Area: 8.288},
	}

	var buf bytes.Buffer
	RenderMarkdown(&buf, records)
	out := buf.String()
	if !strings.Contains(out, "| library |") && !strings.Contains(out, "| inv_1 |") {
		t.Errorf("markdown output missing table cells:\n%s", out)
	}
}
