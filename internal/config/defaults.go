// Package config holds configuration defaults shared between the CLI and
// the domain packages.
package config

// Default configuration values.
const (
	DefaultPDKDir    = "gf180mcu-pdk"
	DefaultOutDir    = "build"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultReportCSV = "gf180mcu_stdcell_sizes.csv"
)

// DefaultLibraries lists the standard-cell libraries scanned when a project
// does not configure its own set: the 7-track and 9-track 5V libraries.
func DefaultLibraries() []string {
	return []string{
		"gf180mcu_fd_sc_mcu7t5v0",
		"gf180mcu_fd_sc_mcu9t5v0",
	}
}
