package reconcile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category classifies a comparable field and selects its tolerance policy.
// The set is closed: each category owns its full decision table and never
// falls through to another category's rule.
type Category int

const (
	Price Category = iota // OHLC prices, relative tolerance
	Volume                // traded volume, absolute tolerance of 1 unit
	Financial             // statement figures, absolute tolerance of 1000 units
	Dividend              // per-share dividends, absolute tolerance of 0.001
)

var categoryNames = [...]string{
	Price:     "price",
	Volume:    "volume",
	Financial: "financial",
	Dividend:  "dividend",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory parses a category name as used in the field registry.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return Category(c), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// UnmarshalYAML makes categories readable from the field registry file.
// An unknown category is a configuration error, caught at load time.
func (c *Category) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
