package jrepl

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff returns a unified diff from before (labelled from) to after (labelled
// to), or "" when they are equal.
func Diff(from, to string, before, after []byte) string {
	edits := myers.ComputeEdits(span.URIFromPath(from), string(before), string(after))
	return fmt.Sprint(gotextdiff.ToUnified(from, to, string(before), edits))
}
