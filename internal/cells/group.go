package cells

import (
	"sort"
	"strconv"
)

// Variant is one drive-strength variant of a base cell.
type Variant struct {
	Name  string `json:"name"`  // original cell name
	Drive string `json:"drive"` // drive-strength token, "1" when unparseable
}

// Group collects the size variants of one base cell name.
type Group struct {
	Base     string    `json:"base"`
	Variants []Variant `json:"variants"`
}

// GroupBySize groups cell names by base name and sorts each group's
// variants by numeric drive strength ascending. Groups come back sorted by
// base name so output is stable across runs.
func (rs *RuleSet) GroupBySize(names []string) []Group {
	byBase := make(map[string][]Variant)
	for _, name := range names {
		base, drive := rs.Split(name)
		byBase[base] = append(byBase[base], Variant{Name: name, Drive: drive})
	}

	groups := make([]Group, 0, len(byBase))
	for base, variants := range byBase {
		sort.Slice(variants, func(i, j int) bool {
			return driveValue(variants[i].Drive) < driveValue(variants[j].Drive)
		})
		groups = append(groups, Group{Base: base, Variants: variants})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Base < groups[j].Base })
	return groups
}

func driveValue(tok string) int {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 1
	}
	return n
}
