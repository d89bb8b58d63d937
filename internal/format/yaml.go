package format

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gopatchy/jrepl/pkg/errors"
)

// yamlUnmarshalPairs accepts either a mapping (old: new) or a sequence of
// {old, new} mappings. The mapping form is read through yaml.Node so that
// key order is kept.
func yamlUnmarshalPairs(in []byte) ([]Pair, error) {
	var node yaml.Node

	err := yaml.Unmarshal(in, &node)
	if err != nil {
		return nil, err
	}

	if node.Kind == 0 {
		return nil, nil
	}

	root := &node
	if root.Kind == yaml.DocumentNode {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.MappingNode:
		ret := []Pair{}

		for i := 0; i+1 < len(root.Content); i += 2 {
			k, v := root.Content[i], root.Content[i+1]

			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: replacement must map a string to a string: %w", k.Line, errors.ErrMalformedReplacementSpec)
			}

			ret = append(ret, Pair{Old: k.Value, New: yamlScalar(v)})
		}

		return checkPairs(ret)

	case yaml.SequenceNode:
		ret := []Pair{}

		err = root.Decode(&ret)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrMalformedReplacementSpec, err)
		}

		return checkPairs(ret)

	default:
		return nil, fmt.Errorf("line %d: expected a mapping or a sequence: %w", root.Line, errors.ErrMalformedReplacementSpec)
	}
}

// yamlScalar maps an explicit null ("old:" or "old: ~") to the empty string.
func yamlScalar(n *yaml.Node) string {
	if n.ShortTag() == "!!null" {
		return ""
	}

	return n.Value
}
