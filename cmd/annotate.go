package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reconcile"
	"github.com/google/subcommands"
)

type annotateCmd struct {
	field      string
	date       string
	cause      string
	status     string
	eodhd      string
	comparator string
	difference string
}

func (*annotateCmd) Name() string     { return "annotate" }
func (*annotateCmd) Synopsis() string { return "record or update an analyst note on a discrepancy" }
func (*annotateCmd) Usage() string {
	return `dqr annotate -f <field> -d <date> [-cause <text>] [-status <status>] <ticker>

  Records an annotation for one discrepancy of a ticker, identified by
  field and date. Re-annotating the same discrepancy updates only the
  provided fields, the rest is kept.

Usage Examples:
# Document a known split mismatch.
$ dqr annotate -f Close -d 2024-01-08 -cause "provider rounding" -status documented AAPL.US
`
}

func (p *annotateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.field, "f", "", "Field of the discrepancy (e.g. Close).")
	f.StringVar(&p.date, "d", "", "Date or period label of the discrepancy (e.g. 2024-01-08).")
	f.StringVar(&p.cause, "cause", "", "Root cause to record.")
	f.StringVar(&p.status, "status", "", "Issue status (open, documented).")
	f.StringVar(&p.eodhd, "eodhd", "", "EODHD value observed.")
	f.StringVar(&p.comparator, "comparator", "", "Comparator value observed.")
	f.StringVar(&p.difference, "diff", "", "Difference observed.")
}

func (p *annotateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || p.field == "" || p.date == "" {
		fmt.Fprintln(os.Stderr, "Error: a ticker, -f and -d are required")
		return subcommands.ExitUsageError
	}
	switch reconcile.AnnotationStatus(p.status) {
	case "", reconcile.Open, reconcile.Documented:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown status %q (want open or documented)\n", p.status)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	ticker := f.Arg(0)
	key := reconcile.IssueKey{Field: p.field, Date: p.date}
	err = store.Upsert(ticker, key, reconcile.Annotation{
		EODHD:      p.eodhd,
		Comparator: p.comparator,
		Difference: p.difference,
		Cause:      p.cause,
		Status:     reconcile.AnnotationStatus(p.status),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Annotated %s %s\n", ticker, key)
	return subcommands.ExitSuccess
}
