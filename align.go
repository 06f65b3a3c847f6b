package reconcile

import (
	"slices"

	"github.com/etnz/reconcile/date"
)

// DatedRow is a table row bound to its parsed calendar date.
type DatedRow struct {
	Date date.Date
	Row  Row
}

// NormalizeDates parses the date column of every row and drops rows whose
// date cannot be read. The result preserves the table's row order.
func NormalizeDates(t *Table, dateCol string) []DatedRow {
	out := make([]DatedRow, 0, len(t.Rows))
	for _, row := range t.Rows {
		raw, _ := row[dateCol].(string)
		d, err := date.Parse(raw)
		if err != nil {
			continue
		}
		out = append(out, DatedRow{Date: d, Row: row})
	}
	return out
}

// Pair holds the two provider rows matched for one trading date.
type Pair struct {
	Date       date.Date
	EODHD      Row
	Comparator Row
}

// AlignAscending pairs rows over the comparator's n earliest dates. The
// comparator is authoritative for which dates are included; EODHD rows
// outside that window, and window dates EODHD has no row for, are
// excluded. Output is in ascending date order.
func AlignAscending(eodhd, comparator []DatedRow, n int) []Pair {
	ref := sortedDates(comparator)
	if len(ref) > n {
		ref = ref[:n]
	}

	byDate := indexByDate(eodhd)
	compByDate := indexByDate(comparator)

	pairs := make([]Pair, 0, len(ref))
	for _, d := range ref {
		row, ok := byDate[d]
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Date: d, EODHD: row, Comparator: compByDate[d]})
	}
	return pairs
}

// AlignDescending pairs each provider's n latest dates, keeping only the
// dates where both providers have a row. The windows are selected
// independently, so a lagging provider shrinks the intersection. Output
// is in descending date order.
func AlignDescending(eodhd, comparator []DatedRow, n int) []Pair {
	eodhdDates := latestDates(eodhd, n)
	compByDate := indexByDate(comparator)
	compDates := latestDates(comparator, n)
	inCompWindow := make(map[date.Date]bool, len(compDates))
	for _, d := range compDates {
		inCompWindow[d] = true
	}
	byDate := indexByDate(eodhd)

	var pairs []Pair
	for _, d := range eodhdDates {
		if !inCompWindow[d] {
			continue
		}
		pairs = append(pairs, Pair{Date: d, EODHD: byDate[d], Comparator: compByDate[d]})
	}
	slices.SortFunc(pairs, func(a, b Pair) int { return b.Date.Compare(a.Date) })
	return pairs
}

func sortedDates(rows []DatedRow) []date.Date {
	dates := make([]date.Date, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	slices.SortFunc(dates, date.Date.Compare)
	return slices.Compact(dates)
}

func latestDates(rows []DatedRow, n int) []date.Date {
	dates := sortedDates(rows)
	if len(dates) > n {
		dates = dates[len(dates)-n:]
	}
	return dates
}

func indexByDate(rows []DatedRow) map[date.Date]Row {
	m := make(map[date.Date]Row, len(rows))
	for _, r := range rows {
		m[r.Date] = r.Row
	}
	return m
}

// ohlcColumns are the price columns rescaled by the split factor.
var ohlcColumns = []string{"Open", "High", "Low", "Close"}

// AdjustOHLC rescales EODHD raw prices to their split-adjusted values
// using the ratio between the close and adjusted close of each row, so
// they compare against the comparator's already-adjusted series. Tables
// without an adjusted close column are left untouched, and rows whose
// factor cannot be computed keep their raw prices.
func AdjustOHLC(t *Table) {
	adjCol, ok := ResolveColumn(t, "adjusted_close", "Adjusted Close", "Adj Close")
	if !ok {
		return
	}
	closeCol, ok := ResolveColumn(t, "Close", "close")
	if !ok {
		return
	}

	for _, row := range t.Rows {
		closeV, ok1 := Coerce(row[closeCol])
		adjV, ok2 := Coerce(row[adjCol])
		if !ok1 || !ok2 || adjV.IsZero() || closeV.IsZero() {
			continue
		}
		factor := closeV.Div(adjV)
		for _, col := range ohlcColumns {
			name, ok := ResolveColumn(t, col)
			if !ok {
				continue
			}
			v, ok := Coerce(row[name])
			if !ok {
				continue
			}
			row[name] = v.Div(factor).Round(6)
		}
	}
}
