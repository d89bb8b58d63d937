package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/gopatchy/jrepl/pkg/errors"
)

type Kind int

const (
	// Number, true, false or null; kept as raw source text
	Literal Kind = iota
	String
	Object
	Array
)

// DefaultMaxDepth bounds container nesting when the caller passes 0.
const DefaultMaxDepth = 10000

// Node is one value of an order-preserving JSON tree.
//
// Object members are stored as parallel Keys/Children slices so that member
// order and duplicate keys survive a round trip. Literals keep their source
// text, so numbers are written back byte for byte.
type Node struct {
	Kind     Kind
	Value    string
	Keys     []string
	Children []*Node
}

func NewString(s string) *Node {
	return &Node{Kind: String, Value: s}
}

func NewLiteral(raw string) *Node {
	return &Node{Kind: Literal, Value: raw}
}

func NewObject() *Node {
	return &Node{Kind: Object}
}

func NewArray(children ...*Node) *Node {
	return &Node{Kind: Array, Children: children}
}

// Set appends a member; it does not replace an existing key.
func (n *Node) Set(key string, v *Node) *Node {
	n.Keys = append(n.Keys, key)
	n.Children = append(n.Children, v)
	return n
}

func (n *Node) IsContainer() bool {
	return n.Kind == Object || n.Kind == Array
}

// ResolveMaxDepth maps the caller-facing depth setting to an effective limit:
// 0 selects DefaultMaxDepth and a negative value disables the limit.
func ResolveMaxDepth(maxDepth int) int {
	if maxDepth == 0 {
		return DefaultMaxDepth
	}

	return maxDepth
}

// Parse decodes a JSON document. Containers are expanded from an explicit
// stack, so nesting is bounded by maxDepth rather than by the call stack.
//
// Input that is not valid UTF-8, or whose strings escape half of a UTF-16
// surrogate pair, is rejected: such text cannot be written back unchanged.
func Parse(in []byte, maxDepth int) (*Node, error) {
	if !gjson.ValidBytes(in) {
		return nil, errors.ErrJSONParse
	}

	if !utf8.Valid(in) {
		return nil, fmt.Errorf("%w: not valid UTF-8", errors.ErrJSONParse)
	}

	maxDepth = ResolveMaxDepth(maxDepth)

	res := gjson.ParseBytes(in)

	err := checkString(res)
	if err != nil {
		return nil, err
	}

	root := newNode(res)

	if !root.IsContainer() {
		return root, nil
	}

	type frame struct {
		res   gjson.Result
		node  *Node
		depth int
	}

	stack := []frame{{res: res, node: root, depth: 1}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if maxDepth > 0 && f.depth > maxDepth {
			return nil, fmt.Errorf("depth %d: %w", f.depth, errors.ErrMaxDepth)
		}

		var ferr error

		f.res.ForEach(func(key, val gjson.Result) bool {
			ferr = checkString(key)
			if ferr == nil {
				ferr = checkString(val)
			}

			if ferr != nil {
				return false
			}

			child := newNode(val)

			if f.node.Kind == Object {
				f.node.Set(key.Str, child)
			} else {
				f.node.Children = append(f.node.Children, child)
			}

			if child.IsContainer() {
				stack = append(stack, frame{res: val, node: child, depth: f.depth + 1})
			}

			return true
		})

		if ferr != nil {
			return nil, ferr
		}
	}

	return root, nil
}

func checkString(res gjson.Result) error {
	if res.Type != gjson.String || !loneSurrogate(res.Raw) {
		return nil
	}

	return fmt.Errorf("%w: unpaired surrogate in %s", errors.ErrJSONParse, res.Raw)
}

// loneSurrogate reports whether the raw string token contains a \u escape
// for one half of a UTF-16 surrogate pair without the matching other half.
func loneSurrogate(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}

		i++

		if i >= len(raw) || raw[i] != 'u' {
			continue
		}

		r, ok := hex4(raw, i+1)
		if !ok {
			return false
		}

		i += 4

		if !utf16.IsSurrogate(r) {
			continue
		}

		if r >= 0xdc00 {
			return true
		}

		if i+6 >= len(raw) || raw[i+1] != '\\' || raw[i+2] != 'u' {
			return true
		}

		lo, ok := hex4(raw, i+3)
		if !ok || lo < 0xdc00 || lo > 0xdfff {
			return true
		}

		i += 6
	}

	return false
}

func hex4(s string, i int) (rune, bool) {
	if i+4 > len(s) {
		return 0, false
	}

	v, err := strconv.ParseUint(s[i:i+4], 16, 32)
	if err != nil {
		return 0, false
	}

	return rune(v), true
}

func newNode(res gjson.Result) *Node {
	switch {
	case res.IsObject():
		return NewObject()

	case res.IsArray():
		return NewArray()

	case res.Type == gjson.String:
		return NewString(res.Str)

	default:
		return NewLiteral(strings.TrimSpace(res.Raw))
	}
}

// Encode writes n as JSON indented by four spaces, with ": " after keys and a
// trailing newline. Strings are written as UTF-8 without HTML escaping.
func Encode(n *Node) ([]byte, error) {
	compact := &bytes.Buffer{}

	err := writeCompact(compact, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEncode, err)
	}

	out := &bytes.Buffer{}

	err = json.Indent(out, compact.Bytes(), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEncode, err)
	}

	out.WriteByte('\n')

	return out.Bytes(), nil
}

// writeCompact recurses once per nesting level; Parse has already bounded
// the depth of any tree it produced.
func writeCompact(buf *bytes.Buffer, n *Node) error {
	switch n.Kind {
	case Literal:
		buf.WriteString(n.Value)

	case String:
		return writeString(buf, n.Value)

	case Object:
		buf.WriteByte('{')

		for i, k := range n.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := writeString(buf, k)
			if err != nil {
				return err
			}

			buf.WriteByte(':')

			err = writeCompact(buf, n.Children[i])
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')

	case Array:
		buf.WriteByte('[')

		for i, c := range n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := writeCompact(buf, c)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')

	default:
		return fmt.Errorf("unknown node kind %d", n.Kind)
	}

	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	tmp := &bytes.Buffer{}

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)

	err := enc.Encode(s)
	if err != nil {
		return err
	}

	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))

	return nil
}
