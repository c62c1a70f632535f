package cells

import "strings"

// StripLibrary removes a library-qualified prefix ("lib__cell" -> "cell").
// Names without a double underscore are returned unchanged.
func StripLibrary(name string) string {
	if i := strings.LastIndex(name, "__"); i >= 0 {
		return name[i+2:]
	}
	return name
}

// Split separates a cell name into its base name and drive-strength token.
// The library prefix is stripped first. Names without a recognized
// drive-strength suffix keep their full name and report strength "1".
func (rs *RuleSet) Split(name string) (base, drive string) {
	name = StripLibrary(name)
	if rs.suffixRe != nil {
		if m := rs.suffixRe.FindStringSubmatch(name); m != nil {
			return name[:len(name)-len(m[0])], m[1]
		}
	}
	return name, "1"
}

// BaseName returns the cell name with library prefix and drive-strength
// suffix removed.
func (rs *RuleSet) BaseName(name string) string {
	base, _ := rs.Split(name)
	return base
}

// Categorize maps a cell name to its functional category. The base name is
// lower-cased and tested against the ordered rule table; the first rule
// with a matching keyword wins, unmatched names are CategoryOther.
func (rs *RuleSet) Categorize(name string) Category {
	if name == "" {
		return CategoryOther
	}
	lower := strings.ToLower(rs.BaseName(name))
	for _, rule := range rs.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return CategoryOther
}

// Categories returns the table's categories in evaluation order, with
// CategoryOther appended for cells nothing claims.
func (rs *RuleSet) Categories() []Category {
	out := make([]Category, 0, len(rs.Rules)+1)
	for _, rule := range rs.Rules {
		out = append(out, rule.Category)
	}
	return append(out, CategoryOther)
}
