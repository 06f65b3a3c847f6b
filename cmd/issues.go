package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reconcile"
	"github.com/etnz/reconcile/renderer"
	"github.com/google/subcommands"
)

type issuesCmd struct {
	ticker string
}

func (*issuesCmd) Name() string     { return "issues" }
func (*issuesCmd) Synopsis() string { return "list annotated discrepancies" }
func (*issuesCmd) Usage() string {
	return `dqr issues [-ticker <ticker>]

  Lists all recorded annotations grouped by ticker, or only the
  annotations of one ticker.
`
}

func (p *issuesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ticker, "ticker", "", "Only show annotations for this ticker.")
}

func (p *issuesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	all := store.All()
	if p.ticker != "" {
		annotations := all[p.ticker]
		all = map[string]map[reconcile.IssueKey]reconcile.Annotation{}
		if len(annotations) > 0 {
			all[p.ticker] = annotations
		}
	}

	printMarkdown(renderer.IssuesMarkdown(all))
	return subcommands.ExitSuccess
}
