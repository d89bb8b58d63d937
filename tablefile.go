package jrepl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopatchy/jrepl/internal/format"
)

// LoadTableFile reads a replacement table from a file whose extension names
// its format: json, properties, toml, yaml or yml.
func LoadTableFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseTableFile(path, data)
}

// ParseTableFile decodes data as a replacement table, choosing the format
// from the extension of name.
func ParseTableFile(name string, data []byte) (Table, error) {
	ft, err := format.Get(strings.TrimPrefix(filepath.Ext(name), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	pairs, err := ft.UnmarshalPairs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	table := make(Table, len(pairs))
	for i, p := range pairs {
		table[i] = Replacement{Old: p.Old, New: p.New}
	}

	return table, nil
}
