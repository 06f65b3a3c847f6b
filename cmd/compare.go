package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reconcile"
	"github.com/etnz/reconcile/renderer"
	"github.com/google/subcommands"
)

type compareCmd struct {
	dataType string
	n        int
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare a ticker's data between the two providers" }
func (*compareCmd) Usage() string {
	return `dqr compare [-t <data_type>] [-n <count>] <ticker>...

  Compares EODHD data against the comparator provider for each ticker and
  prints a report with per-field match status and accuracy. Discrepancies
  previously annotated show their recorded cause.

Usage Examples:
# Compare the last 30 trading days of prices and volumes.
$ dqr compare -t historical_ohlc -n 30 AAPL.US

# Compare the latest quarterly statements.
$ dqr compare -t fundamentals AAPL.US MSFT.US
`
}

func (p *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.dataType, "t", "historical_ohlc", "Data type to compare (historical_ohlc, dividends, fundamentals).")
	f.IntVar(&p.n, "n", 30, "Number of dates to compare per alignment window.")
}

func (p *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required")
		return subcommands.ExitUsageError
	}
	dt, err := reconcile.ParseDataType(p.dataType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	engine, err := NewEngine(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, ticker := range f.Args() {
		report, err := engine.Compare(ticker, dt, p.n)
		var missing *reconcile.MissingDataError
		if errors.As(err, &missing) {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", ticker, missing)
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error comparing %s: %v\n", ticker, err)
			status = subcommands.ExitFailure
			continue
		}
		printMarkdown(renderer.ReportMarkdown(report))
	}
	return status
}
