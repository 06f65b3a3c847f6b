package reconcile

import (
	"strings"
	"testing"

	"github.com/etnz/reconcile/date"
	"github.com/shopspring/decimal"
)

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rows(dates ...string) []DatedRow {
	out := make([]DatedRow, 0, len(dates))
	for _, d := range dates {
		out = append(out, DatedRow{Date: date.MustParse(d), Row: Row{"Date": d}})
	}
	return out
}

func pairDates(pairs []Pair) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Date.String())
	}
	return out
}

func TestAlignAscending(t *testing.T) {
	// The comparator is authoritative for the window: its five earliest
	// dates are the reference set, and EODHD dates outside it are
	// excluded even when valid.
	eodhd := rows("2024-01-01", "2024-01-03", "2024-01-09")
	comp := rows("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")

	pairs := AlignAscending(eodhd, comp, 5)

	want := "2024-01-01 2024-01-03"
	if got := strings.Join(pairDates(pairs), " "); got != want {
		t.Fatalf("AlignAscending dates = %q, want %q", got, want)
	}
	for _, p := range pairs {
		if p.EODHD == nil || p.Comparator == nil {
			t.Errorf("pair for %s: both rows should be present", p.Date)
		}
	}
}

func TestAlignDescending(t *testing.T) {
	// EODHD has one extra trailing day; the comparator lags behind.
	eodhd := rows("2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")
	comp := rows("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04")

	pairs := AlignDescending(eodhd, comp, 3)

	// Windows are picked per provider, then intersected, newest first.
	want := "2024-01-04 2024-01-03"
	if got := strings.Join(pairDates(pairs), " "); got != want {
		t.Fatalf("AlignDescending dates = %q, want %q", got, want)
	}
	for _, p := range pairs {
		if p.EODHD == nil || p.Comparator == nil {
			t.Errorf("pair for %s: both rows should be present", p.Date)
		}
	}
}

func TestNormalizeDates(t *testing.T) {
	table := &Table{
		Columns: []string{"Date", "Close"},
		Rows: []Row{
			{"Date": "2024-01-02", "Close": "10"},
			{"Date": "garbage", "Close": "11"},
			{"Date": "2024-01-03 00:00:00-05:00", "Close": "12"},
		},
	}
	got := NormalizeDates(table, "Date")
	if len(got) != 2 {
		t.Fatalf("NormalizeDates kept %d rows, want 2", len(got))
	}
	if got[1].Date.String() != "2024-01-03" {
		t.Errorf("second date = %s, want 2024-01-03", got[1].Date)
	}
}

func TestAdjustOHLC(t *testing.T) {
	// EODHD export shape: lowercase columns with adjusted_close.
	table := &Table{
		Columns: []string{"date", "open", "high", "low", "close", "adjusted_close"},
		Rows: []Row{
			// 2:1 split factor: raw prices halve.
			{"date": "2024-01-02", "open": "100", "high": "110", "low": "90", "close": "100", "adjusted_close": "50"},
			// Unreadable adjusted close leaves the row untouched.
			{"date": "2024-01-03", "open": "100", "high": "110", "low": "90", "close": "100", "adjusted_close": "zero"},
		},
	}
	AdjustOHLC(table)

	first := table.Rows[0]
	for col, want := range map[string]string{"open": "50", "high": "55", "low": "45", "close": "50"} {
		got, ok := Coerce(first[col])
		if !ok || !got.Equal(mustDecimal(want)) {
			t.Errorf("adjusted %s = %v, want %s", col, first[col], want)
		}
	}
	if got := table.Rows[1]["open"]; got != "100" {
		t.Errorf("row with bad adjusted close: open = %v, want untouched %q", got, "100")
	}
}

func TestAdjustOHLC_noAdjustedColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"Date", "Close"},
		Rows:    []Row{{"Date": "2024-01-02", "Close": "100"}},
	}
	AdjustOHLC(table)
	if got := table.Rows[0]["Close"]; got != "100" {
		t.Errorf("Close = %v, want untouched %q", got, "100")
	}
}
