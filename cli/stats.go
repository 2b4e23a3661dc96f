package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/amonks/klamu/db"
	"github.com/amonks/klamu/setflag"
	"github.com/amonks/klamu/subcmd"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func stats(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("stats", "count the rows of the catalog's tables")
	only := setflag.New(tableNames()...)
	subcmd.Var(only, "only", "comma separated tables to count (default all)")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	tables := only.List()
	counts, err := db.Counts(ctx, tables...)
	if err != nil {
		return err
	}
	printCounts(os.Stdout, counts)
	return nil
}

func tableNames() []string { return db.Tables }

var humanPrinter = message.NewPrinter(language.Dutch)

// printCounts prints the counts in the order of db.Tables.
func printCounts(w io.Writer, counts map[string]int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, table := range db.Tables {
		count, ok := counts[table]
		if !ok {
			continue
		}
		humanPrinter.Fprintf(tw, "%d\t%s\t\n", count, table)
	}
	tw.Flush()
}
