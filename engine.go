package reconcile

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/etnz/reconcile/date"
)

// DataType selects which slice of a ticker's data a run reconciles.
type DataType string

const (
	HistoricalOHLC DataType = "historical_ohlc"
	Dividends      DataType = "dividends"
	Fundamentals   DataType = "fundamentals"
)

// ParseDataType parses a data type name as given on the command line.
func ParseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case HistoricalOHLC, Dividends, Fundamentals:
		return DataType(s), nil
	}
	return "", fmt.Errorf("unknown data type %q (want historical_ohlc, dividends or fundamentals)", s)
}

// MissingDataError reports that a provider has no data of the requested
// type for a ticker. It is the expected outcome for unlisted tickers and
// is rendered as an empty report rather than a failure.
type MissingDataError struct {
	Source   string
	Ticker   string
	DataType DataType
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%s has no %s data for %s", e.Source, e.DataType, e.Ticker)
}

// SchemaError reports that a provider's file is present but lacks a
// column the comparison needs.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s data has no %q column", e.Source, e.Column)
}

// Engine reconciles the two providers' data. It is stateless across
// runs except for the annotation store, which carries analyst notes
// between them.
type Engine struct {
	EODHD       Source
	Comparator  Source
	Registry    *Registry
	Annotations AnnotationStore
}

// Compare reconciles one ticker's data of the given type over the n
// most relevant dates and returns the per-field records with summary
// counts. Records of annotated discrepancies carry the recorded cause.
func (e *Engine) Compare(ticker string, dt DataType, n int) (*Report, error) {
	report := &Report{Ticker: ticker, DataType: dt, Date: date.Today()}

	var err error
	switch dt {
	case HistoricalOHLC:
		err = e.compareHistorical(report, ticker, n)
	case Dividends:
		err = e.compareDividends(report, ticker, n)
	case Fundamentals:
		err = e.compareFundamentals(report, ticker)
	default:
		return nil, fmt.Errorf("unknown data type %q", dt)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (e *Engine) compareHistorical(report *Report, ticker string, n int) error {
	eodhdTable, err := e.loadTable(e.EODHD.Historical, "eodhd", ticker, HistoricalOHLC)
	if err != nil {
		return err
	}
	compTable, err := e.loadTable(e.Comparator.Historical, "comparator", ticker, HistoricalOHLC)
	if err != nil {
		return err
	}

	eodhdDateCol, ok := ResolveColumn(eodhdTable, "date", "Date")
	if !ok {
		return &SchemaError{Source: "eodhd", Column: "date"}
	}
	compDateCol, ok := ResolveColumn(compTable, "Date", "date")
	if !ok {
		return &SchemaError{Source: "comparator", Column: "Date"}
	}

	AdjustOHLC(eodhdTable)

	eodhdRows := NormalizeDates(eodhdTable, eodhdDateCol)
	compRows := NormalizeDates(compTable, compDateCol)

	pairs := AlignAscending(eodhdRows, compRows, n)
	pairs = append(pairs, AlignDescending(eodhdRows, compRows, n)...)

	annotations := e.annotationsFor(ticker)
	for _, p := range pairs {
		for _, spec := range e.Registry.Historical {
			a := pairValue(p.EODHD, spec.EODHDKey)
			b := pairValue(p.Comparator, spec.ComparatorKey)
			e.record(report, annotations, p.Date.String(), spec, a, b)
		}
	}
	return nil
}

func (e *Engine) compareDividends(report *Report, ticker string, n int) error {
	eodhdTable, err := e.loadTable(e.EODHD.Dividends, "eodhd", ticker, Dividends)
	if err != nil {
		return err
	}
	compTable, err := e.loadTable(e.Comparator.Dividends, "comparator", ticker, Dividends)
	if err != nil {
		return err
	}

	eodhdDateCol, ok := ResolveColumn(eodhdTable, "date", "Date")
	if !ok {
		return &SchemaError{Source: "eodhd", Column: "date"}
	}
	compDateCol, ok := ResolveColumn(compTable, "Date", "date")
	if !ok {
		return &SchemaError{Source: "comparator", Column: "Date"}
	}
	// EODHD exports have carried the amount as either column; "value"
	// wins when both are present.
	eodhdValueCol, ok := ResolveColumn(eodhdTable, "value", "dividend")
	if !ok {
		return &SchemaError{Source: "eodhd", Column: "value"}
	}

	eodhdRows := NormalizeDates(eodhdTable, eodhdDateCol)
	compRows := NormalizeDates(compTable, compDateCol)

	annotations := e.annotationsFor(ticker)
	for _, p := range AlignDescending(eodhdRows, compRows, n) {
		for _, spec := range e.Registry.Dividends {
			a := p.EODHD[eodhdValueCol]
			b := pairValue(p.Comparator, spec.ComparatorKey, "Dividends")
			e.record(report, annotations, p.Date.String(), spec, a, b)
		}
	}
	return nil
}

func (e *Engine) compareFundamentals(report *Report, ticker string) error {
	doc, err := e.EODHD.Fundamentals(ticker)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingDataError{Source: "eodhd", Ticker: ticker, DataType: Fundamentals}
		}
		return fmt.Errorf("cannot load eodhd fundamentals for %s: %w", ticker, err)
	}

	// Group the registry by statement section so each provider file is
	// read once.
	bySection := make(map[string][]FieldSpec)
	var sections []string
	for _, spec := range e.Registry.Fundamentals {
		if _, seen := bySection[spec.Section]; !seen {
			sections = append(sections, spec.Section)
		}
		bySection[spec.Section] = append(bySection[spec.Section], spec)
	}

	type sectionData struct {
		section string
		period  string
		eodhd   map[string]any
		comp    map[string]any
	}
	var loaded []sectionData
	eodhdSections := 0
	label := ""
	for _, section := range sections {
		quarterly, err := quarterlySection(doc, section)
		if err != nil {
			log.Printf("warning: %s: %v", ticker, err)
			continue
		}
		period, values := latestPeriod(quarterly)
		if period == "" {
			continue
		}
		eodhdSections++
		if period > label {
			label = period
		}

		stmt, err := e.Comparator.Statement(ticker, section)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("warning: comparator has no %s statement for %s", section, ticker)
				continue
			}
			return fmt.Errorf("cannot load comparator %s statement for %s: %w", section, ticker, err)
		}
		loaded = append(loaded, sectionData{
			section: section,
			period:  period,
			eodhd:   values,
			comp:    statementValues(stmt),
		})
	}
	if len(loaded) == 0 {
		// EODHD had statement data but no comparator file answered, so
		// the comparator is the missing side.
		source := "eodhd"
		if eodhdSections > 0 {
			source = "comparator"
		}
		return &MissingDataError{Source: source, Ticker: ticker, DataType: Fundamentals}
	}

	annotations := e.annotationsFor(ticker)
	for _, sd := range loaded {
		for _, spec := range bySection[sd.section] {
			a, aok := lookupFuzzy(sd.eodhd, spec.EODHDKey)
			b, bok := lookupFuzzy(sd.comp, spec.ComparatorKey)
			if !aok || !bok {
				continue
			}
			// A figure omitted by one provider is incomparable, not zero.
			if _, ok := toNumber(a); !ok {
				continue
			}
			if _, ok := toNumber(b); !ok {
				continue
			}
			display := spec
			display.Field = fmt.Sprintf("%s (%s)", spec.Field, sectionTitle(spec.Section))
			e.record(report, annotations, label, display, a, b)
		}
	}
	return nil
}

// record compares one field pair, formats both sides, attaches any
// recorded annotation cause, and appends the result to the report.
func (e *Engine) record(report *Report, annotations map[IssueKey]Annotation, dateLabel string, spec FieldSpec, a, b any) {
	cmp := Compare(a, b, spec.Category)

	rec := ComparisonRecord{
		Ticker:     report.Ticker,
		Date:       dateLabel,
		Field:      spec.Field,
		EODHD:      FormatValue(a, spec.Category),
		Comparator: FormatValue(b, spec.Category),
		Status:     cmp.Status,
		Diff:       cmp.DiffString(),
	}
	if ann, ok := annotations[IssueKey{Field: spec.Field, Date: dateLabel}]; ok && ann.Cause != "" {
		rec.Cause = ann.Cause
	}
	report.Records = append(report.Records, rec)
	report.Summary.add(cmp.Status)
}

func (e *Engine) annotationsFor(ticker string) map[IssueKey]Annotation {
	if e.Annotations == nil {
		return nil
	}
	return e.Annotations.Get(ticker)
}

// loadTable fetches one provider table and normalizes absence: a missing
// or empty file is a MissingDataError, not an I/O failure.
func (e *Engine) loadTable(fetch func(string) (*Table, error), source, ticker string, dt DataType) (*Table, error) {
	t, err := fetch(ticker)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingDataError{Source: source, Ticker: ticker, DataType: dt}
		}
		return nil, fmt.Errorf("cannot load %s %s data for %s: %w", source, dt, ticker, err)
	}
	if t.Empty() {
		return nil, &MissingDataError{Source: source, Ticker: ticker, DataType: dt}
	}
	return t, nil
}

// pairValue reads a field from a pair's row, trying the registry key and
// its fallbacks. A nil row (no data for that date) yields nil.
func pairValue(r Row, candidates ...string) any {
	if r == nil {
		return nil
	}
	var deduped []string
	for _, c := range candidates {
		if c != "" && !contains(deduped, c) {
			deduped = append(deduped, c)
		}
	}
	v, _ := resolveKey(r, deduped...)
	return v
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if strings.EqualFold(x, s) {
			return true
		}
	}
	return false
}
