package format

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/gopatchy/jrepl/pkg/errors"
)

// jsonUnmarshalPairs accepts {"old": "new", ...} or [{"old": ..., "new": ...}].
// Object members are visited in document order.
func jsonUnmarshalPairs(in []byte) ([]Pair, error) {
	if !gjson.ValidBytes(in) {
		return nil, errors.ErrJSONParse
	}

	root := gjson.ParseBytes(in)
	ret := []Pair{}

	var err error

	switch {
	case root.IsObject():
		root.ForEach(func(key, val gjson.Result) bool {
			if val.Type != gjson.String {
				err = fmt.Errorf("%q: value must be a string: %w", key.Str, errors.ErrMalformedReplacementSpec)
				return false
			}

			ret = append(ret, Pair{Old: key.Str, New: val.Str})

			return true
		})

	case root.IsArray():
		root.ForEach(func(_, val gjson.Result) bool {
			old, repl := val.Get("old"), val.Get("new")

			if !val.IsObject() || old.Type != gjson.String || (repl.Exists() && repl.Type != gjson.String) {
				err = fmt.Errorf("%s: expected {\"old\": string, \"new\": string}: %w", val.Raw, errors.ErrMalformedReplacementSpec)
				return false
			}

			ret = append(ret, Pair{Old: old.Str, New: repl.Str})

			return true
		})

	default:
		return nil, fmt.Errorf("expected an object or an array: %w", errors.ErrMalformedReplacementSpec)
	}

	if err != nil {
		return nil, err
	}

	return checkPairs(ret)
}
