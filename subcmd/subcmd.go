// Package subcmd is a flag.FlagSet with the usage text of a klamu command
// and required flags.
package subcmd

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func New(name, doc string) *Subcommand {
	sc := &Subcommand{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		out:     os.Stderr,
	}
	sc.FlagSet.SetOutput(sc.out)
	sc.FlagSet.Usage = func() {
		fmt.Fprintf(sc.out, "\n%s\n\n", doc)
		fmt.Fprintf(sc.out, "  klamu %s [flags]\n\n", name)
		fmt.Fprintf(sc.out, "flags:\n")
		sc.FlagSet.PrintDefaults()
	}
	return sc
}

type Subcommand struct {
	*flag.FlagSet
	out      io.Writer
	required []string
}

// SetOutput sets where usage and errors are printed.
func (sc *Subcommand) SetOutput(w io.Writer) {
	sc.out = w
	sc.FlagSet.SetOutput(w)
}

// Require marks flags that must be given a non-empty value.
func (sc *Subcommand) Require(names ...string) *Subcommand {
	sc.required = append(sc.required, names...)
	return sc
}

// Parse parses args, then checks the required flags.
func (sc *Subcommand) Parse(args []string) error {
	if err := sc.FlagSet.Parse(args); err != nil {
		return err
	}
	for _, name := range sc.required {
		f := sc.Lookup(name)
		if f == nil || f.Value.String() == "" {
			sc.Usage()
			return fmt.Errorf("flag -%s is required", name)
		}
	}
	return nil
}
