package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     any
		category Category
		status   Status
		diff     string
	}{
		// Price: absolute band of 0.01, then relative escalation.
		{"price equal", "100.00", "100.00", Price, Match, "-"},
		{"price within band", "100.00", "100.009", Price, Match, "-"},
		{"price small relative gap", "1000.00", "1000.50", Price, Warning, "0.5"},
		{"price at warning boundary", "100.00", "100.10", Price, Warning, "0.1"},
		{"price large relative gap", "100.00", "101.00", Price, Error, "1"},
		{"price both near zero", "0", "0.005", Price, Match, "-"},
		// With both values tiny the floor keeps the ratio finite.
		{"price zero vs small", "0", "0.02", Price, Error, "0.02"},

		// Volume: absolute band of one unit.
		{"volume equal", "1000", "1000", Volume, Match, "-"},
		{"volume off by one", "1000", "1001", Volume, Match, "-"},
		{"volume off by two", "1000", "1002", Volume, Error, "2"},
		{"volume grouped separators", "1,000,000", "1000000", Volume, Match, "-"},
		{"volume fractional excess", "1000", "1002.7", Volume, Error, "2"},

		// Financial: absolute band of 1000 units.
		{"financial within band", "5000000", "5000999", Financial, Match, "-"},
		{"financial beyond band", "5000000", "5001500", Financial, Error, "1500"},
		{"financial truncated diff", "0", "1500.9", Financial, Error, "1500"},

		// Dividend: tiny band, never worse than a warning.
		{"dividend equal", "0.25", "0.25", Dividend, Match, "-"},
		{"dividend within band", "0.25", "0.2505", Dividend, Match, "-"},
		{"dividend beyond band", "0.25", "0.30", Dividend, Warning, "0.05"},
		{"dividend wildly off", "0.25", "25", Dividend, Warning, "24.75"},

		// Blanks coerce to zero.
		{"blank vs zero", "", "0", Price, Match, "-"},
		{"nil vs blank", nil, "  ", Volume, Match, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b, tt.category)
			if got.Status != tt.status {
				t.Errorf("Compare(%v, %v, %v).Status = %v, want %v", tt.a, tt.b, tt.category, got.Status, tt.status)
			}
			if got.DiffString() != tt.diff {
				t.Errorf("Compare(%v, %v, %v).DiffString() = %q, want %q", tt.a, tt.b, tt.category, got.DiffString(), tt.diff)
			}
		})
	}
}

func TestCompare_typeMismatch(t *testing.T) {
	// Uncoercible values fall back to string equality.
	if got := Compare(struct{}{}, struct{}{}, Price); got.Status != Match {
		t.Errorf("identical uncoercible values: Status = %v, want %v", got.Status, Match)
	}
	got := Compare("n/a", 12.5, Price)
	if got.Status != Error {
		t.Errorf("uncoercible vs number: Status = %v, want %v", got.Status, Error)
	}
	if got.Note == "" {
		t.Error("uncoercible vs number: want a descriptive note")
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{nil, "0", true},
		{"", "0", true},
		{"  ", "0", true},
		{"12.5", "12.5", true},
		{"1,234.56", "1234.56", true},
		{12.5, "12.5", true},
		{int64(42), "42", true},
		{"abc", "0", false},
	}
	for _, tt := range tests {
		got, ok := Coerce(tt.in)
		if ok != tt.ok {
			t.Errorf("Coerce(%#v) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if tt.ok && !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Coerce(%#v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestStatus_Symbol(t *testing.T) {
	if got := Match.Symbol(); got != "✅" {
		t.Errorf("Match.Symbol() = %q", got)
	}
	if got := Warning.Symbol(); got != "⚠️" {
		t.Errorf("Warning.Symbol() = %q", got)
	}
	if got := Error.Symbol(); got != "❌" {
		t.Errorf("Error.Symbol() = %q", got)
	}
}
