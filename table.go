package jrepl

import (
	"fmt"
	"strings"
)

// Replacement is one literal old -> new substitution.
type Replacement struct {
	Old string
	New string
}

// Table is an ordered list of replacements. Duplicate Old values are kept and
// each one is applied in turn.
type Table []Replacement

// ParseTable parses "old1=new1,old2=new2". Each pair is split on its first
// '='; there is no escaping, so keys cannot contain ',' or '=' and values
// cannot contain ','.
func ParseTable(spec string) (Table, error) {
	if spec == "" {
		return nil, fmt.Errorf("empty replacement list: %w", ErrMalformedReplacementSpec)
	}

	pairs := strings.Split(spec, ",")
	table := make(Table, 0, len(pairs))

	for _, pair := range pairs {
		old, repl, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("%q has no '=': %w", pair, ErrMalformedReplacementSpec)
		}

		if old == "" {
			return nil, fmt.Errorf("%q has an empty key: %w", pair, ErrMalformedReplacementSpec)
		}

		table = append(table, Replacement{Old: old, New: repl})
	}

	return table, nil
}

// Apply runs every replacement over s in table order. Each pair replaces all
// non-overlapping occurrences in the output of the previous pair, so earlier
// replacements can create or remove matches for later ones.
func (t Table) Apply(s string) string {
	for _, r := range t {
		s = strings.ReplaceAll(s, r.Old, r.New)
	}

	return s
}

// Disjoint reports whether no Old value occurs in any New value. Applying a
// disjoint table twice gives the same result as applying it once.
func (t Table) Disjoint() bool {
	for _, a := range t {
		for _, b := range t {
			if strings.Contains(b.New, a.Old) {
				return false
			}
		}
	}

	return true
}

func (t Table) String() string {
	parts := make([]string, len(t))
	for i, r := range t {
		parts[i] = r.Old + "=" + r.New
	}

	return strings.Join(parts, ",")
}
