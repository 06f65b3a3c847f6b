package reconcile

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed fields.yaml
var defaultFields []byte

// FieldSpec maps a canonical field identifier to its provider-specific
// keys and tolerance category. Specs are read-only at comparison time.
type FieldSpec struct {
	Field         string   `yaml:"field"`             // canonical display identifier
	Category      Category `yaml:"category"`          // tolerance policy selector
	Section       string   `yaml:"section,omitempty"` // statement section, fundamentals only
	EODHDKey      string   `yaml:"eodhd"`             // key in the EODHD file
	ComparatorKey string   `yaml:"comparator"`        // key in the comparator file
}

// Registry is the immutable universe of comparable fields, one list per
// data type. It is loaded once at startup; the engine never mutates it.
type Registry struct {
	Historical   []FieldSpec `yaml:"historical"`
	Dividends    []FieldSpec `yaml:"dividends"`
	Fundamentals []FieldSpec `yaml:"fundamentals"`
}

// LoadRegistry reads a field registry from YAML.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var reg Registry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&reg); err != nil {
		return nil, fmt.Errorf("cannot parse field registry: %w", err)
	}
	for _, specs := range [][]FieldSpec{reg.Historical, reg.Dividends, reg.Fundamentals} {
		for _, s := range specs {
			if s.Field == "" {
				return nil, fmt.Errorf("field registry entry with empty field identifier")
			}
		}
	}
	return &reg, nil
}

// DefaultRegistry returns the built-in field registry covering OHLC,
// volume, dividends, and the statement figures of both providers.
func DefaultRegistry() *Registry {
	reg, err := LoadRegistry(bytes.NewReader(defaultFields))
	if err != nil {
		// The embedded registry ships with the binary.
		panic("invalid embedded field registry: " + err.Error())
	}
	return reg
}
