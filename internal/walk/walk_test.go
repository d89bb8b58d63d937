package walk_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jrepl/internal/document"
	"github.com/gopatchy/jrepl/internal/walk"
	"github.com/gopatchy/jrepl/pkg/errors"
)

func upper(s string) string {
	return strings.ToUpper(s)
}

func parse(t *testing.T, in string) *document.Node {
	t.Helper()

	n, err := document.Parse([]byte(in), 0)
	require.NoError(t, err)

	return n
}

func encode(t *testing.T, n *document.Node) string {
	t.Helper()

	out, err := document.Encode(n)
	require.NoError(t, err)

	return string(out)
}

func TestStringsNested(t *testing.T) {
	t.Parallel()

	n := parse(t, `{"a": "x", "b": [1, "y", {"c": "z", "d": false}], "e": null}`)

	changed, err := walk.Strings(n, upper, 0)
	require.NoError(t, err)
	require.Equal(t, 3, changed)

	want := parse(t, `{"a": "X", "b": [1, "Y", {"c": "Z", "d": false}], "e": null}`)
	require.Equal(t, encode(t, want), encode(t, n))
}

func TestStringsLeavesKeysAndLiterals(t *testing.T) {
	t.Parallel()

	n := parse(t, `{"key": 1.0, "other": true, "k": null}`)

	changed, err := walk.Strings(n, upper, 0)
	require.NoError(t, err)
	require.Zero(t, changed)
	require.Equal(t, []string{"key", "other", "k"}, n.Keys)
	require.Equal(t, "1.0", n.Children[0].Value)
}

func TestStringsScalarRoot(t *testing.T) {
	t.Parallel()

	n := parse(t, `"root string"`)

	changed, err := walk.Strings(n, upper, 0)
	require.NoError(t, err)
	require.Zero(t, changed)
	require.Equal(t, "root string", n.Value)
}

func TestStringsMaxDepth(t *testing.T) {
	t.Parallel()

	in := strings.Repeat(`{"a":`, 6) + `"x"` + strings.Repeat("}", 6)

	n := parse(t, in)
	_, err := walk.Strings(n, upper, 5)
	require.ErrorIs(t, err, errors.ErrMaxDepth)

	n = parse(t, in)
	changed, err := walk.Strings(n, upper, 6)
	require.NoError(t, err)
	require.Equal(t, 1, changed)
}

func TestStringsDeepArrayUnlimited(t *testing.T) {
	t.Parallel()

	const depth = 50000

	root := document.NewArray()
	cur := root

	for i := 0; i < depth; i++ {
		next := document.NewArray()
		cur.Children = append(cur.Children, next)
		cur = next
	}

	cur.Children = append(cur.Children, document.NewString("deep"))

	changed, err := walk.Strings(root, upper, -1)
	require.NoError(t, err)
	require.Equal(t, 1, changed)
	require.Equal(t, "DEEP", cur.Children[0].Value)
}
