package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/reconcile"
	"github.com/google/subcommands"
)

type clearCmd struct {
	confirm bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete all annotations" }
func (*clearCmd) Usage() string {
	return `dqr clear -confirm

  Deletes every recorded annotation. This is irreversible, so the
  -confirm flag is required.
`
}

func (p *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.confirm, "confirm", false, "Confirm deleting all annotations.")
}

func (p *clearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	if err := store.ClearAll(p.confirm); err != nil {
		if errors.Is(err, reconcile.ErrClearNotConfirmed) {
			fmt.Fprintln(os.Stderr, "Refusing to clear annotations without -confirm")
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("All annotations cleared.")
	return subcommands.ExitSuccess
}
