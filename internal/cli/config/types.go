// Package config loads gridforge project configuration. Values are layered:
// built-in defaults, then a gridforge.yaml discovered upward from the working
// directory (or given explicitly), then GRIDFORGE_* environment variables,
// then any command-line flags the user actually set.
package config

import (
	"path/filepath"

	"github.com/openfab-labs/gridforge/internal/tech"
)

// ConfigFileName is the project configuration file discovered upward from
// the working directory.
const ConfigFileName = "gridforge.yaml"

// Config is the resolved gridforge configuration.
type Config struct {
	// PDKDir is the root of the GF180MCU PDK checkout.
	PDKDir string `koanf:"pdk_dir"`

	// OutDir receives generated scenes, reports, and Verilog modules.
	OutDir string `koanf:"out_dir"`

	// Libraries are the standard-cell libraries scanned for LEF abstracts.
	Libraries []string `koanf:"libraries"`

	// RulesFile optionally points at a YAML categorization rule table that
	// replaces the built-in one.
	RulesFile string `koanf:"rules_file"`

	// Output selects the rendering mode: auto, text, markdown, or json.
	Output string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// DRC overrides individual design-rule values. Zero fields keep the
	// process minimums.
	DRC tech.DesignRules `koanf:"drc"`

	projectRoot string
	configFile  string
}

// ProjectRoot is the directory the configuration file was found in, or the
// working directory when no file exists.
func (c *Config) ProjectRoot() string { return c.projectRoot }

// ConfigFile is the path of the loaded configuration file, empty when the
// defaults were used.
func (c *Config) ConfigFile() string { return c.configFile }

// Rules returns the effective design rules: process minimums overlaid with
// any configured overrides.
func (c *Config) Rules() tech.DesignRules {
	return tech.GF180MCU().Merge(c.DRC)
}

// resolvePath anchors a relative path at the project root.
func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.projectRoot, p)
}
