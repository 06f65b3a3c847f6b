package reconcile

import "strings"

// ResolveColumn returns the first candidate that matches a table column,
// trying exact names first and case-insensitive names second. Providers
// are not consistent about header casing across exports.
func ResolveColumn(t *Table, candidates ...string) (string, bool) {
	for _, want := range candidates {
		if t.HasColumn(want) {
			return want, true
		}
	}
	for _, want := range candidates {
		for _, col := range t.Columns {
			if strings.EqualFold(col, want) {
				return col, true
			}
		}
	}
	return "", false
}

// resolveKey looks a candidate key up in a row, exact then
// case-insensitive. The boolean is false when no candidate is present.
func resolveKey(r Row, candidates ...string) (any, bool) {
	for _, want := range candidates {
		if v, ok := r[want]; ok {
			return v, true
		}
	}
	for _, want := range candidates {
		for k, v := range r {
			if strings.EqualFold(k, want) {
				return v, true
			}
		}
	}
	return nil, false
}
