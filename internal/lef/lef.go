// Package lef extracts standard-cell abstract dimensions from LEF files in
// a PDK tree and aggregates them into a report.
package lef

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// sizePattern matches the macro size record, e.g. "SIZE 12.500 BY 8.000 ;".
var sizePattern = regexp.MustCompile(`SIZE\s+(\d+\.\d+)\s+BY\s+(\d+\.\d+)\s*;`)

// Size is a cell's physical abstract dimensions in microns.
type Size struct {
	Width  float64
	Height float64
}

// Area returns width times height in square microns.
func (s Size) Area() float64 { return s.Width * s.Height }

// ExtractSize scans LEF text for the first SIZE record. The second return
// is false when the text carries no such record.
func ExtractSize(content string) (Size, bool) {
	m := sizePattern.FindStringSubmatch(content)
	if m == nil {
		return Size{}, false
	}
	width, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Size{}, false
	}
	height, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Size{}, false
	}
	return Size{Width: width, Height: height}, true
}

// Record is one extracted cell size.
type Record struct {
	Library string  `json:"library"`
	Type    string  `json:"type"` // cell-type directory the LEF was found under
	Name    string  `json:"name"`
	Width   float64 `json:"width_um"`
	Height  float64 `json:"height_um"`
	Area    float64 `json:"area_um2"`
}

// CellName derives the cell name from a LEF file path: the base name up to
// the first dot.
func CellName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// ScanLibraries walks the documented PDK layout
// libraries/<lib>/latest/docs/cells/<type>/*.lef for each requested library
// and extracts one Record per cell. Files without a SIZE record are skipped
// with a warning, duplicate cell names keep the first occurrence in
// traversal order, and a missing library directory skips that library. The
// result is sorted by (library, name).
func ScanLibraries(logger *slog.Logger, pdkDir string, libraries []string) ([]Record, error) {
	if _, err := os.Stat(pdkDir); err != nil {
		return nil, fmt.Errorf("PDK path not found: %s", pdkDir)
	}

	var records []Record
	seen := make(map[string]bool)

	for _, lib := range libraries {
		libPath := filepath.Join(pdkDir, "libraries", lib, "latest", "docs", "cells")
		entries, err := os.ReadDir(libPath)
		if err != nil {
			logger.Warn("library path not found, skipping", "library", lib, "path", libPath)
			continue
		}

		logger.Info("processing library", "library", lib)

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			cellType := entry.Name()
			lefFiles, err := filepath.Glob(filepath.Join(libPath, cellType, "*.lef"))
			if err != nil {
				return nil, fmt.Errorf("failed to list LEF files under %s: %w", cellType, err)
			}
			sort.Strings(lefFiles)

			for _, lefFile := range lefFiles {
				name := CellName(lefFile)
				if seen[name] {
					continue
				}

				content, err := os.ReadFile(lefFile)
				if err != nil {
					logger.Warn("failed to read LEF file, skipping", "path", lefFile, "error", err)
					continue
				}

				size, ok := ExtractSize(string(content))
				if !ok {
					logger.Warn("no SIZE record found, skipping", "path", lefFile)
					continue
				}

				records = append(records, Record{
					Library: lib,
					Type:    cellType,
					Name:    name,
					Width:   size.Width,
					Height:  size.Height,
					Area:    size.Area(),
				})
				seen[name] = true
			}
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Library != records[j].Library {
			return records[i].Library < records[j].Library
		}
		return records[i].Name < records[j].Name
	})
	return records, nil
}
