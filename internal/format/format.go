package format

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/gopatchy/jrepl/pkg/errors"
)

// Pair is one old -> new entry read from a replacement file.
type Pair struct {
	Old string `json:"old" toml:"old" yaml:"old"`
	New string `json:"new" toml:"new" yaml:"new"`
}

// Format decodes a replacement file into pairs, preserving file order.
type Format struct {
	UnmarshalPairs func([]byte) ([]Pair, error)
}

var formatByExtension = map[string]Format{
	"json": {
		UnmarshalPairs: jsonUnmarshalPairs,
	},
	"properties": {
		UnmarshalPairs: propertiesUnmarshalPairs,
	},
	"toml": {
		UnmarshalPairs: tomlUnmarshalPairs,
	},
	"yaml": {
		UnmarshalPairs: yamlUnmarshalPairs,
	},
	"yml": {
		UnmarshalPairs: yamlUnmarshalPairs,
	},
}

// Get retrieves a format by name from the registry
func Get(name string) (*Format, error) {
	ft, found := formatByExtension[name]
	if !found {
		return nil, fmt.Errorf("%q (supported: %v): %w", name, Extensions(), errors.ErrUnknownFormat)
	}

	return &ft, nil
}

// Extensions returns all supported format extensions, sorted
func Extensions() []string {
	exts := make([]string, 0, len(formatByExtension))
	for ext := range formatByExtension {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

func checkPairs(pairs []Pair) ([]Pair, error) {
	for i, p := range pairs {
		if p.Old == "" {
			return nil, fmt.Errorf("entry %d has an empty key: %w", i, errors.ErrMalformedReplacementSpec)
		}
	}

	return pairs, nil
}
