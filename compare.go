package reconcile

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Status classifies a single field comparison.
type Status int

const (
	Match   Status = iota // values agree within tolerance
	Warning               // minor difference, acceptable
	Error                 // significant difference, needs review
)

func (s Status) String() string {
	switch s {
	case Match:
		return "match"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalJSON renders the status by name, not by ordinal.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Symbol returns the display glyph used in reports.
func (s Status) Symbol() string {
	switch s {
	case Match:
		return "✅"
	case Warning:
		return "⚠️"
	}
	return "❌"
}

// Comparison is the outcome of comparing two scalar values under a
// category's tolerance policy.
type Comparison struct {
	Status Status
	Diff   decimal.Decimal
	Note   string // descriptive payload when a numeric difference is meaningless
}

// DiffString renders the difference for display: the descriptive note when
// present, a dash for zero, the number otherwise.
func (c Comparison) DiffString() string {
	if c.Note != "" {
		return c.Note
	}
	if c.Diff.IsZero() {
		return "-"
	}
	return c.Diff.String()
}

// Tolerance thresholds per category. Statement figures are large, so they
// tolerate a much wider absolute band than per-share values.
var (
	financialTolerance = decimal.NewFromInt(1000)
	volumeTolerance    = decimal.NewFromInt(1)
	dividendTolerance  = decimal.NewFromFloat(0.001)
	priceTolerance     = decimal.NewFromFloat(0.01)
	priceWarningPct    = decimal.NewFromFloat(0.1)
	priceFloor         = decimal.NewFromFloat(0.01) // avoids division by zero
	hundred            = decimal.NewFromInt(100)
)

// Compare classifies the pair (a, b) under the category's tolerance policy
// and quantifies the difference. Blank and missing values coerce to zero;
// values that cannot be coerced at all fall back to string equality.
func Compare(a, b any, cat Category) Comparison {
	av, aok := Coerce(a)
	bv, bok := Coerce(b)
	if !aok || !bok {
		if fmt.Sprint(a) == fmt.Sprint(b) {
			return Comparison{Status: Match}
		}
		return Comparison{Status: Error, Note: fmt.Sprintf("type mismatch: %T vs %T", a, b)}
	}

	diff := av.Sub(bv).Abs()

	switch cat {
	case Financial:
		if diff.LessThanOrEqual(financialTolerance) {
			return Comparison{Status: Match}
		}
		return Comparison{Status: Error, Diff: diff.Truncate(0)}

	case Volume:
		if diff.LessThanOrEqual(volumeTolerance) {
			return Comparison{Status: Match}
		}
		return Comparison{Status: Error, Diff: diff.Truncate(0)}

	case Dividend:
		if diff.LessThanOrEqual(dividendTolerance) {
			return Comparison{Status: Match}
		}
		// Dividend mismatches are near-always rounding artifacts between
		// providers, so they never escalate past a warning.
		return Comparison{Status: Warning, Diff: diff.Round(4)}

	default: // Price
		if diff.LessThanOrEqual(priceTolerance) {
			return Comparison{Status: Match}
		}
		den := decimal.Max(av.Abs(), bv.Abs(), priceFloor)
		pct := diff.Div(den).Mul(hundred)
		if pct.LessThanOrEqual(priceWarningPct) {
			return Comparison{Status: Warning, Diff: diff.Round(4)}
		}
		return Comparison{Status: Error, Diff: diff.Round(4)}
	}
}

// Coerce attempts to read v as a decimal number. Blank, missing, and NaN
// values coerce to zero, matching the providers' habit of omitting zeroes.
// Thousands separators are stripped from strings before parsing.
func Coerce(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, true
	case decimal.Decimal:
		return x, true
	case float64:
		if math.IsNaN(x) {
			return decimal.Zero, true
		}
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt32(x), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		return coerceString(string(x))
	case string:
		return coerceString(x)
	}
	return decimal.Zero, false
}

func coerceString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
