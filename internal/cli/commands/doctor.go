package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cli/output"
	"github.com/openfab-labs/gridforge/internal/lef"
)

type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "success" or "failed"
	Note   string `json:"note,omitempty"`
}

// NewDoctorCommand verifies the project environment: configuration, PDK
// checkout, libraries, and output directory.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project setup and PDK checkout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd)
			if err != nil {
				return err
			}

			var checks []doctorCheck
			add := func(name string, ok bool, note string) {
				status := "success"
				if !ok {
					status = "failed"
				}
				checks = append(checks, doctorCheck{Name: name, Status: status, Note: note})
			}

			if cc.Cfg.ConfigFile() != "" {
				add("config file", true, cc.Cfg.ConfigFile())
			} else {
				add("config file", false, "no gridforge.yaml found, using defaults (run: gridforge init)")
			}

			pdkOK := false
			if info, err := os.Stat(cc.Cfg.PDKDir); err == nil && info.IsDir() {
				pdkOK = true
			}
			add("PDK directory", pdkOK, cc.Cfg.PDKDir)

			for _, lib := range cc.Cfg.Libraries {
				cellsDir := filepath.Join(cc.Cfg.PDKDir, "libraries", lib, "latest", "docs", "cells")
				info, err := os.Stat(cellsDir)
				add("library "+lib, err == nil && info != nil && info.IsDir(), cellsDir)
			}

			if pdkOK {
				records, err := lef.ScanLibraries(cc.Logger, cc.Cfg.PDKDir, cc.Cfg.Libraries)
				if err != nil || len(records) == 0 {
					add("LEF abstracts", false, "no parseable SIZE statements found")
				} else {
					add("LEF abstracts", true, fmt.Sprintf("%d cells", len(records)))
				}
			}

			if err := os.MkdirAll(cc.Cfg.OutDir, 0750); err != nil {
				add("output directory", false, err.Error())
			} else {
				add("output directory", true, cc.Cfg.OutDir)
			}

			passed := 0
			for _, c := range checks {
				if c.Status == "success" {
					passed++
				}
			}

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(map[string]any{
					"checks": checks,
					"passed": passed,
					"total":  len(checks),
				})
			}

			cc.Renderer.Header(1, "gridforge doctor")
			for _, c := range checks {
				cc.Renderer.StatusLine(c.Name, c.Status, c.Note)
			}
			cc.Renderer.Println("")
			if passed == len(checks) {
				cc.Renderer.Success(fmt.Sprintf("%d/%d checks passed", passed, len(checks)))
				return nil
			}
			cc.Renderer.Warning(fmt.Sprintf("%d/%d checks passed", passed, len(checks)))
			return fmt.Errorf("%d check(s) failed", len(checks)-passed)
		},
	}
	return cmd
}
