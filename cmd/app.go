// Package cmd implements the CLI application to reconcile market data
// between EODHD and a comparator provider.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/reconcile"
	"github.com/google/subcommands"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&compareCmd{},
	&annotateCmd{},
	&issuesCmd{},
	&clearCmd{},
	&topicCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok
// to use global variables for the shared flags.

var eodhdDir = flag.String("eodhd-dir", "data", "Path to the folder holding EODHD data files")
var comparatorDir = flag.String("comparator-dir", "data", "Path to the folder holding comparator data files")
var annotationsFile = flag.String("annotations", "data_issues.json", "Path to the annotation store (.json file or .db sqlite database)")
var fieldsFile = flag.String("fields", "", "Path to a field registry file overriding the built-in one")

// OpenStore opens the annotation store selected by the -annotations flag.
// A .db path selects the sqlite backend, anything else the JSON file.
func OpenStore() (reconcile.AnnotationStore, error) {
	if strings.HasSuffix(*annotationsFile, ".db") {
		return reconcile.NewSQLiteStore(*annotationsFile)
	}
	return reconcile.NewFileStore(*annotationsFile), nil
}

// NewEngine assembles the reconciliation engine from the global flags.
func NewEngine(store reconcile.AnnotationStore) (*reconcile.Engine, error) {
	registry := reconcile.DefaultRegistry()
	if *fieldsFile != "" {
		f, err := os.Open(*fieldsFile)
		if err != nil {
			return nil, fmt.Errorf("cannot open field registry: %w", err)
		}
		defer f.Close()
		registry, err = reconcile.LoadRegistry(f)
		if err != nil {
			return nil, err
		}
	}
	return &reconcile.Engine{
		EODHD:       reconcile.NewEODHDSource(*eodhdDir),
		Comparator:  reconcile.NewComparatorSource(*comparatorDir),
		Registry:    registry,
		Annotations: store,
	}, nil
}

// printMarkdown renders markdown to the terminal. When rendering fails
// the raw markdown is still printed, it remains readable.
func printMarkdown(source string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Println(source)
		return
	}
	out, err := r.Render(source)
	if err != nil {
		fmt.Println(source)
		return
	}
	fmt.Print(out)
}
