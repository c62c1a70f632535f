// Package storegen emits Verilog for a rows-by-columns storage array built
// from GF180MCU latches. Generation is pure string assembly; nothing is
// written unless the inputs validate.
package storegen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// latchCell is the storage primitive instantiated per (row, column) pair.
const latchCell = "gf180mcu_fd_sc_mcu7t5v0__latq_1"

// ModuleName returns the generated module's name for the given geometry.
func ModuleName(rows, cols int) string {
	return fmt.Sprintf("store_%dx%d", rows, cols)
}

// Validate rejects non-positive geometries before any output exists.
func Validate(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("rows and columns must be positive integers, got %dx%d", rows, cols)
	}
	return nil
}

// Generate produces the Verilog source for a rows-by-cols storage array:
// one data input per row, one capture input per column, one latch per
// (row, column) pair driving a flat output bus.
func Generate(rows, cols int) (string, error) {
	if err := Validate(rows, cols); err != nil {
		return "", err
	}

	total := rows * cols
	name := ModuleName(rows, cols)

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Description: %d bits of storage.\n", total)
	fmt.Fprintf(&b, "//\n")
	fmt.Fprintf(&b, "// Contains %d latches in a row/column configuration.\n", total)
	fmt.Fprintf(&b, "//\n")
	writeDiagram(&b, rows, cols)
	fmt.Fprintf(&b, "//\n")

	fmt.Fprintf(&b, "module %s (\n", name)
	for r := 0; r < rows; r++ {
		fmt.Fprintf(&b, "    input  wire dat%d,     // Data input for row %d\n", r, r)
	}
	for c := 0; c < cols; c++ {
		fmt.Fprintf(&b, "    input  wire cap%d,     // Capture data for column %d\n", c, c)
	}
	fmt.Fprintf(&b, "    output wire [0:%d] out  // Stored data output\n", total-1)
	fmt.Fprintf(&b, ");\n\n")

	index := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fmt.Fprintf(&b, "    %s dff_r%dc%d (\n", latchCell, r, c)
			fmt.Fprintf(&b, "        .D(dat%d),\n", r)
			fmt.Fprintf(&b, "        .E(cap%d),\n", c)
			fmt.Fprintf(&b, "        .Q(out[%d])\n", index)
			fmt.Fprintf(&b, "    );\n\n")
			index++
		}
	}

	fmt.Fprintf(&b, "endmodule\n")
	return b.String(), nil
}

// writeDiagram draws the ASCII row/column picture in the module header.
// The outer borders use '=' and interior row separators use '-'.
func writeDiagram(b *bytes.Buffer, rows, cols int) {
	fmt.Fprintf(b, "//         ")
	for c := 0; c < cols; c++ {
		fmt.Fprintf(b, "col%d     ", c)
	}
	fmt.Fprintf(b, "\n//      +")
	fmt.Fprint(b, strings.Repeat("========+", cols))
	fmt.Fprintln(b)

	for r := 0; r < rows; r++ {
		fmt.Fprintf(b, "// row%d |", r)
		fmt.Fprint(b, strings.Repeat(" latq_1 |", cols))
		fmt.Fprintf(b, "\n//      +")
		if r == rows-1 {
			fmt.Fprint(b, strings.Repeat("========+", cols))
		} else {
			fmt.Fprint(b, strings.Repeat("--------+", cols))
		}
		fmt.Fprintln(b)
	}
}

// OutputPath returns where WriteModule places the generated file, relative
// to outDir.
func OutputPath(outDir string, rows, cols int) string {
	return filepath.Join(outDir, "modules", "store", ModuleName(rows, cols)+".v")
}

// WriteModule generates the module and writes it under
// outDir/modules/store/. Returns the written path.
func WriteModule(outDir string, rows, cols int) (string, error) {
	code, err := Generate(rows, cols)
	if err != nil {
		return "", err
	}

	path := OutputPath(outDir, rows, cols)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("failed to create module directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(code), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// InstantiationExample returns a usage snippet for the generated module.
func InstantiationExample(rows, cols int) string {
	name := ModuleName(rows, cols)
	total := rows * cols

	dats := make([]string, rows)
	for r := 0; r < rows; r++ {
		dats[r] = fmt.Sprintf(".dat%d(prog_dat%d)", r, r)
	}
	caps := make([]string, cols)
	for c := 0; c < cols; c++ {
		caps[c] = fmt.Sprintf(".cap%d(prog_cap%d)", c, c)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "    // Instantiation example:\n")
	fmt.Fprintf(&b, "    %s storage (\n", name)
	fmt.Fprintf(&b, "        // Data inputs\n")
	fmt.Fprintf(&b, "        %s,\n", strings.Join(dats, ", "))
	fmt.Fprintf(&b, "        // Capture signals\n")
	fmt.Fprintf(&b, "        %s,\n", strings.Join(caps, ", "))
	fmt.Fprintf(&b, "        // Output\n")
	fmt.Fprintf(&b, "        .out(q)\n")
	fmt.Fprintf(&b, "    );\n\n")
	fmt.Fprintf(&b, "    // Where q is declared as:\n")
	fmt.Fprintf(&b, "    wire [0:%d] q;\n", total-1)
	return b.String()
}
