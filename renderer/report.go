// Package renderer turns comparison reports and annotation listings into
// markdown for terminal display.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/reconcile"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders a full comparison report: a summary of the
// outcome counts followed by the per-field detail table.
func ReportMarkdown(r *reconcile.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Comparison Report for %s (%s)", r.Ticker, r.DataType))
	doc.PlainText(fmt.Sprintf("Run on %s over %d comparisons.", r.Date, r.Summary.Total))

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Header: []string{"Matches", "Warnings", "Errors", "Accuracy"},
		Rows: [][]string{{
			fmt.Sprintf("%d", r.Summary.Matches),
			fmt.Sprintf("%d", r.Summary.Warnings),
			fmt.Sprintf("%d", r.Summary.Errors),
			r.Summary.Accuracy().String(),
		}},
	})

	doc.H2("Details")
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		cause := rec.Cause
		if cause == "" {
			cause = "-"
		}
		rows = append(rows, []string{
			rec.Date, rec.Field, rec.EODHD, rec.Comparator,
			rec.Status.Symbol(), rec.Diff, cause,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Field", "EODHD", "Comparator", "Match", "Difference", "Cause"},
		Rows:   rows,
	})

	return doc.String()
}
