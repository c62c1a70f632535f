package commands

import "embed"

// scaffoldFS carries the files written by gridforge init.
//
//go:embed templates/minimal
var scaffoldFS embed.FS

// scaffoldFiles maps embedded template paths to their on-disk names.
// The gitignore template is stored without the leading dot so the embed
// directive picks it up.
var scaffoldFiles = []struct {
	src  string
	dest string
}{
	{"templates/minimal/gridforge.yaml", "gridforge.yaml"},
	{"templates/minimal/rules.yaml", "rules.yaml"},
	{"templates/minimal/gitignore", ".gitignore"},
}
