package storegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModuleName(t *testing.T) {
	if got := ModuleName(4, 8); got != "store_4x8" {
		t.Errorf("ModuleName(4, 8) = %q, want store_4x8", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		rows, cols int
		ok         bool
	}{
		{1, 1, true},
		{4, 8, true},
		{0, 4, false},
		{4, 0, false},
		{-1, 4, false},
		{4, -1, false},
	}
	for _, tt := range tests {
		err := Validate(tt.rows, tt.cols)
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%d, %d) error = %v, want ok=%v", tt.rows, tt.cols, err, tt.ok)
		}
	}
}

func TestGenerate(t *testing.T) {
	code, err := Generate(2, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(code, "module store_2x3 (") {
		t.Error("missing module declaration")
	}

	// One latch per bit.
	if got := strings.Count(code, latchCell+" dff_"); got != 6 {
		t.Errorf("latch instance count = %d, want 6", got)
	}

	// One data input per row, one capture input per column.
	for _, port := range []string{"dat0", "dat1", "cap0", "cap1", "cap2"} {
		if !strings.Contains(code, "input  wire "+port+",") {
			t.Errorf("missing port %s", port)
		}
	}
	if strings.Contains(code, "dat2") || strings.Contains(code, "cap3") {
		t.Error("generated ports beyond the requested geometry")
	}

	if !strings.Contains(code, "output wire [0:5] out") {
		t.Error("missing or wrong output bus declaration")
	}

	// Row-major output indexing: r1c0 drives out[3] for a 3-wide array.
	if !strings.Contains(code, "dff_r1c0") {
		t.Fatal("missing instance dff_r1c0")
	}
	inst := code[strings.Index(code, "dff_r1c0"):]
	if !strings.Contains(inst[:strings.Index(inst, ");")], ".Q(out[3])") {
		t.Error("dff_r1c0 does not drive out[3]")
	}

	if !strings.Contains(code, "endmodule") {
		t.Error("missing endmodule")
	}
}

func TestGenerateDiagram(t *testing.T) {
	code, err := Generate(2, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(code, "// Description: 4 bits of storage.") {
		t.Error("missing description header")
	}
	// Outer borders use '=', interior separators '-'.
	if strings.Count(code, "========+========+") != 2 {
		t.Error("diagram outer borders malformed")
	}
	if !strings.Contains(code, "--------+--------+") {
		t.Error("diagram interior separator missing")
	}
	if !strings.Contains(code, "| latq_1 | latq_1 |") {
		t.Error("diagram cells missing")
	}
}

func TestGenerateRejectsWithoutOutput(t *testing.T) {
	if _, err := Generate(0, 3); err == nil {
		t.Error("Generate(0, 3) succeeded")
	}
	if _, err := Generate(3, -2); err == nil {
		t.Error("Generate(3, -2) succeeded")
	}
}

func TestWriteModule(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteModule(dir, 2, 2)
	if err != nil {
		t.Fatalf("WriteModule: %v", err)
	}
	want := filepath.Join(dir, "modules", "store", "store_2x2.v")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "module store_2x2 (") {
		t.Error("written file missing module declaration")
	}
}

func TestWriteModuleInvalidGeometryWritesNothing(t *testing.T) {
	dir := t.TempDir()

	if _, err := WriteModule(dir, 0, 2); err == nil {
		t.Fatal("WriteModule(0, 2) succeeded")
	}
	if _, err := os.Stat(filepath.Join(dir, "modules")); !os.IsNotExist(err) {
		t.Error("invalid geometry left files behind")
	}
}

func TestInstantiationExample(t *testing.T) {
	ex := InstantiationExample(2, 3)
	for _, want := range []string{
		"store_2x3 storage (",
		".dat0(prog_dat0)",
		".dat1(prog_dat1)",
		".cap2(prog_cap2)",
		".out(q)",
		"wire [0:5] q;",
	} {
		if !strings.Contains(ex, want) {
			t.Errorf("example missing %q", want)
		}
	}
}
