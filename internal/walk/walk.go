// Package walk rewrites the string leaves of a document tree in place.
package walk

import (
	"fmt"

	"github.com/gopatchy/jrepl/internal/document"
	"github.com/gopatchy/jrepl/pkg/errors"
	"github.com/gopatchy/jrepl/pkg/log"
)

// Strings applies fn to every string value held by an object member or array
// element below root and stores the result in place. Numbers, booleans and
// null are never touched, and neither are object keys.
//
// A root that is itself a scalar (including a bare string) is left unchanged:
// only values inside a container are rewritten.
//
// maxDepth follows document.ResolveMaxDepth. Strings returns the number of
// values whose content changed.
func Strings(root *document.Node, fn func(string) string, maxDepth int) (int, error) {
	if !root.IsContainer() {
		log.Debugf("[walk] root is not an object or array; left unchanged")
		return 0, nil
	}

	maxDepth = document.ResolveMaxDepth(maxDepth)

	type frame struct {
		node  *document.Node
		depth int
	}

	stack := []frame{{node: root, depth: 1}}
	changed := 0

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if maxDepth > 0 && f.depth > maxDepth {
			return changed, fmt.Errorf("depth %d: %w", f.depth, errors.ErrMaxDepth)
		}

		for _, child := range f.node.Children {
			switch child.Kind {
			case document.Object, document.Array:
				stack = append(stack, frame{node: child, depth: f.depth + 1})

			case document.String:
				v := fn(child.Value)
				if v != child.Value {
					child.Value = v
					changed++
				}
			}
		}
	}

	return changed, nil
}
