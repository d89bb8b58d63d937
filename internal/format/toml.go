package format

import (
	"github.com/pelletier/go-toml/v2"
)

// tomlUnmarshalPairs reads an array of tables:
//
//	[[replace]]
//	old = "a"
//	new = "b"
func tomlUnmarshalPairs(in []byte) ([]Pair, error) {
	var doc struct {
		Replace []Pair `toml:"replace"`
	}

	err := toml.Unmarshal(in, &doc)
	if err != nil {
		return nil, err
	}

	return checkPairs(doc.Replace)
}
