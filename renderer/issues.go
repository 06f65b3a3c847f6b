package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/etnz/reconcile"
	md "github.com/nao1215/markdown"
)

// IssuesMarkdown renders every stored annotation grouped by ticker,
// tickers and issues in stable sorted order.
func IssuesMarkdown(all map[string]map[reconcile.IssueKey]reconcile.Annotation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Annotated Issues")
	if len(all) == 0 {
		doc.PlainText("No annotations recorded.")
		return doc.String()
	}

	tickers := make([]string, 0, len(all))
	for t := range all {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		annotations := all[ticker]
		var open, documented int
		for _, a := range annotations {
			if a.Status == reconcile.Documented {
				documented++
			} else {
				open++
			}
		}
		doc.H2(fmt.Sprintf("%s (%d open, %d documented)", ticker, open, documented))

		keys := make([]reconcile.IssueKey, 0, len(annotations))
		for k := range annotations {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Date != keys[j].Date {
				return keys[i].Date > keys[j].Date
			}
			return keys[i].Field < keys[j].Field
		})

		rows := make([][]string, 0, len(keys))
		for _, k := range keys {
			a := annotations[k]
			cause := a.Cause
			if cause == "" {
				cause = "-"
			}
			rows = append(rows, []string{
				a.Date, a.Field, a.EODHD, a.Comparator, a.Difference,
				string(a.Status), cause, a.UpdatedAt,
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Date", "Field", "EODHD", "Comparator", "Difference", "Status", "Cause", "Updated"},
			Rows:   rows,
		})
	}

	return doc.String()
}
