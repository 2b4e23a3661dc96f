// klamu is a catalog of a classical music CD collection, kept in a sqlite3
// database file and edited through a small web site.
//
// see db/schema.sql for the tables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/klamu/config"
	"github.com/amonks/klamu/db"
	"github.com/amonks/klamu/logging"
	"github.com/amonks/klamu/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: klamu [-config klamu.toml] $cmd
valid $cmd are 'serve', 'adduser', 'passwd', 'stats'
for help: klamu $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	global := flag.NewFlagSet("klamu", flag.ContinueOnError)
	configPath := global.String("config", envOr("KLAMU_CONFIG", "klamu.toml"), "config file")
	global.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	if err := global.Parse(os.Args[1:]); err != nil {
		return err
	}
	if global.NArg() < 1 {
		return errors.New(usage)
	}
	cmd, args := global.Arg(0), global.Args()[1:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.LogDir, cfg.LogLevel, "klamu")
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := db.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	switch cmd {
	case "serve":
		return serve(ctx, db, log, cfg, args)

	case "adduser":
		return adduser(ctx, db, args)

	case "passwd":
		return passwd(ctx, db, args)

	case "stats":
		return stats(ctx, db, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
