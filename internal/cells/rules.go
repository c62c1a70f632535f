// Package cells provides standard-cell name categorization and
// drive-strength grouping shared by all layout-generation commands.
//
// Historically each gallery script carried its own copy of the category
// keywords and the set of valid drive-strength tokens, and the copies
// drifted. This package is the single source of truth: an explicit,
// versioned rule table that can be overridden per project from a YAML file.
package cells

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a functional tag for a standard cell.
type Category string

// Categories recognized by the default rule table.
const (
	CategoryClock      Category = "clock"
	CategoryAOIOAI     Category = "aoi_oai"
	CategoryArithmetic Category = "arithmetic"
	CategoryBuffers    Category = "buffers"
	CategoryLogicGates Category = "logic_gates"
	CategoryFlipFlops  Category = "flip_flops"
	CategoryLatches    Category = "latches"
	CategoryMux        Category = "mux"
	CategoryDelay      Category = "delay"
	CategorySpecial    Category = "special"
	CategoryOther      Category = "other"
)

// Rule maps a category to the keywords that select it. Rules are evaluated
// in order and the first match wins, so narrower keywords must precede
// broader ones (e.g. "clkbuf" is claimed by clock before buffers sees it).
type Rule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet is a versioned categorization rule table.
type RuleSet struct {
	Version        string   `yaml:"version"`
	DriveStrengths []string `yaml:"drive_strengths"`
	Rules          []Rule   `yaml:"rules"`

	suffixRe *regexp.Regexp
}

// DefaultRuleSet returns the built-in GF180MCU rule table. Drive strengths
// cover the tokens seen across the standard-cell libraries: 1 through 32
// plus 64.
func DefaultRuleSet() *RuleSet {
	strengths := make([]string, 0, 33)
	for i := 1; i <= 32; i++ {
		strengths = append(strengths, strconv.Itoa(i))
	}
	strengths = append(strengths, "64")

	rs := &RuleSet{
		Version:        "1",
		DriveStrengths: strengths,
		Rules: []Rule{
			{Category: CategoryClock, Keywords: []string{"clk", "icgt"}},
			{Category: CategoryAOIOAI, Keywords: []string{"aoi", "oai"}},
			{Category: CategoryArithmetic, Keywords: []string{"add", "addf", "addh"}},
			{Category: CategoryBuffers, Keywords: []string{"inv", "buf", "bufz"}},
			{Category: CategoryLogicGates, Keywords: []string{"and", "or", "nand", "nor", "xor", "xnor"}},
			{Category: CategoryFlipFlops, Keywords: []string{"dff", "sdff"}},
			{Category: CategoryLatches, Keywords: []string{"lat"}},
			{Category: CategoryMux, Keywords: []string{"mux"}},
			{Category: CategoryDelay, Keywords: []string{"dly"}},
			{Category: CategorySpecial, Keywords: []string{"fill", "tie", "endcap", "antenna", "hold"}},
		},
	}
	if err := rs.compile(); err != nil {
		panic(err) // built-in table is static
	}
	return rs
}

// LoadRuleSet reads a rule table from a YAML file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	if err := rs.compile(); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}
	return &rs, nil
}

// Validate checks structural requirements on the table.
func (rs *RuleSet) Validate() error {
	if len(rs.Rules) == 0 {
		return fmt.Errorf("rule table has no rules")
	}
	seen := make(map[Category]bool, len(rs.Rules))
	for _, r := range rs.Rules {
		if r.Category == "" {
			return fmt.Errorf("rule with empty category")
		}
		if seen[r.Category] {
			return fmt.Errorf("duplicate category %q", r.Category)
		}
		seen[r.Category] = true
		if len(r.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", r.Category)
		}
	}
	for _, tok := range rs.DriveStrengths {
		if _, err := strconv.Atoi(tok); err != nil {
			return fmt.Errorf("drive strength token %q is not an integer", tok)
		}
	}
	return nil
}

// compile builds the size-suffix matcher from the drive-strength tokens.
func (rs *RuleSet) compile() error {
	if len(rs.DriveStrengths) == 0 {
		rs.suffixRe = nil
		return nil
	}
	quoted := make([]string, len(rs.DriveStrengths))
	for i, tok := range rs.DriveStrengths {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	re, err := regexp.Compile(`_(` + strings.Join(quoted, "|") + `)$`)
	if err != nil {
		return fmt.Errorf("failed to compile drive-strength pattern: %w", err)
	}
	rs.suffixRe = re
	return nil
}
