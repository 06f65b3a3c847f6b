package reconcile

import "fmt"

// Percent represents a ratio as a percentage, e.g. Percent(99.5) is 99.5%.
type Percent float64

// String renders the percentage with two decimals and the '%' sign.
func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
