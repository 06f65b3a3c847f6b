// Package reconcile implements a data-quality reconciliation engine for
// financial market data. It loads historical prices, dividends, and
// financial statements for the same security from two independent
// providers (EODHD and a comparator source), aligns the records by
// calendar date or reporting period, classifies every field-level
// difference against category-specific tolerance bands, and joins in
// analyst-provided causal annotations that persist across sessions.
//
// The core functionalities include:
//   - Record Alignment: pairing rows across heterogeneous schemas, date
//     representations, and units, including rescaling raw OHLC prices to
//     an adjusted basis when the provider exposes an adjusted close.
//   - Tolerance Policy: a closed decision table per field category
//     (price, volume, financial, dividend) classifying each comparison
//     as a match, a warning, or an error.
//   - Annotation Tracking: a durable store keyed by (entity, field, date)
//     holding the analyst's root-cause notes, merged back into every
//     subsequent report.
//   - Reporting: an ordered list of comparison records plus summary
//     statistics, ready for the renderer to turn into a document.
//
// This package serves as the foundational logic for the `dqr`
// command-line tool.
package reconcile
