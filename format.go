package reconcile

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
)

// groupedFormatter renders a value shifted to 4 decimal places with
// thousands separators, e.g. 1234567.8 as "1,234,567.8000".
var groupedFormatter = money.NewFormatter(4, ".", ",", "", "1")

// FormatValue renders a raw provider value for display under the
// category's convention. Volumes, statement figures, and dividends use
// grouped 4-decimal notation; prices use plain 2-decimal notation.
// Blank and missing values render as zero; values that cannot be parsed
// at all are shown verbatim so the analyst sees what the provider sent.
func FormatValue(v any, cat Category) string {
	switch cat {
	case Volume, Financial, Dividend:
		if isBlank(v) {
			return "0"
		}
		d, ok := Coerce(v)
		if !ok {
			return fmt.Sprint(v)
		}
		return groupedFormatter.Format(d.Shift(4).Round(0).IntPart())

	default: // Price
		if isBlank(v) {
			return "0.00"
		}
		d, ok := Coerce(v)
		if !ok {
			return fmt.Sprint(v)
		}
		return d.StringFixed(2)
	}
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case float64:
		return math.IsNaN(x)
	}
	return false
}
