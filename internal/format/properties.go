package format

import (
	"github.com/magiconair/properties"
)

// propertiesUnmarshalPairs reads old=new lines. Unlike the other formats, a
// key given twice collapses to one pair at its first position with its last
// value, as properties files define.
func propertiesUnmarshalPairs(in []byte) ([]Pair, error) {
	l := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}

	p, err := l.LoadBytes(in)
	if err != nil {
		return nil, err
	}

	ret := []Pair{}

	for _, key := range p.Keys() {
		v, _ := p.Get(key)
		ret = append(ret, Pair{Old: key, New: v})
	}

	return checkPairs(ret)
}
