package reconcile

import "github.com/etnz/reconcile/date"

// ComparisonRecord is one field comparison ready for display. Both
// provider values are already formatted under the field's category.
type ComparisonRecord struct {
	Ticker     string `json:"ticker"`
	Date       string `json:"date"` // calendar date or statement period label
	Field      string `json:"field"`
	EODHD      string `json:"eodhd_value"`
	Comparator string `json:"comparator_value"`
	Status     Status `json:"status"`
	Diff       string `json:"difference"`
	Cause      string `json:"cause,omitempty"`
}

// Summary counts the outcomes of a comparison run.
type Summary struct {
	Total    int
	Matches  int
	Warnings int
	Errors   int
}

func (s *Summary) add(status Status) {
	s.Total++
	switch status {
	case Match:
		s.Matches++
	case Warning:
		s.Warnings++
	default:
		s.Errors++
	}
}

// Accuracy is the share of comparisons that matched exactly. Warnings
// and errors both count against it. An empty run has zero accuracy.
func (s Summary) Accuracy() Percent {
	if s.Total == 0 {
		return 0
	}
	return Percent(float64(s.Matches) / float64(s.Total) * 100)
}

// Report is the full outcome of reconciling one ticker and data type.
type Report struct {
	Ticker   string
	DataType DataType
	Date     date.Date // day the comparison ran
	Records  []ComparisonRecord
	Summary  Summary
}
