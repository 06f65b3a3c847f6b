package reconcile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// quarterlySection extracts one quarterly statement section from a raw
// fundamentals document, keyed by period date.
func quarterlySection(doc []byte, section string) (map[string]any, error) {
	var root any
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("cannot parse fundamentals document: %w", err)
	}
	path := fmt.Sprintf("$.Financials.%s.quarterly", section)
	v, err := jsonpath.Get(path, root)
	if err != nil {
		return nil, fmt.Errorf("fundamentals document has no %s section: %w", section, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fundamentals section %s is not an object", section)
	}
	return m, nil
}

// latestPeriod returns the period entry with the greatest key. Period
// keys are ISO dates, so lexicographic order is chronological order.
func latestPeriod(section map[string]any) (string, map[string]any) {
	var best string
	for k := range section {
		if k > best {
			best = k
		}
	}
	if best == "" {
		return "", nil
	}
	entry, _ := section[best].(map[string]any)
	return best, entry
}

// statementValues reads a comparator statement export: rows are figure
// names under an "index" column, and the first data column holds the
// latest period's values.
func statementValues(t *Table) map[string]any {
	out := make(map[string]any)
	if t.Empty() {
		return out
	}
	if len(t.Columns) < 2 {
		return out
	}
	nameCol, valueCol := t.Columns[0], t.Columns[1]
	for _, row := range t.Rows {
		name, _ := row[nameCol].(string)
		if name == "" {
			continue
		}
		out[name] = row[valueCol]
	}
	return out
}

// lookupFuzzy finds a figure by key, first exactly, then by
// case-insensitive substring containment in either direction. Candidate
// keys are tried in sorted order so the match is deterministic.
func lookupFuzzy(values map[string]any, key string) (any, bool) {
	if v, ok := values[key]; ok {
		return v, true
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	want := strings.ToLower(key)
	for _, k := range keys {
		have := strings.ToLower(k)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return values[k], true
		}
	}
	return nil, false
}

// toNumber reports whether a raw figure holds an actual number. Blank
// and missing figures are not comparable: a provider omitting a figure
// is not claiming it is zero.
func toNumber(v any) (decimal.Decimal, bool) {
	if v == nil || isBlank(v) {
		return decimal.Zero, false
	}
	return Coerce(v)
}

// sectionTitle renders a section name for display, e.g. "Income_Statement"
// becomes "Income Statement".
func sectionTitle(section string) string {
	return strings.ReplaceAll(section, "_", " ")
}
