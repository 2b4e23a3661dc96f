package main

import (
	"context"
	"fmt"

	"github.com/amonks/klamu/config"
	"github.com/amonks/klamu/db"
	"github.com/amonks/klamu/server"
	"github.com/amonks/klamu/subcmd"
	"github.com/sirupsen/logrus"
)

func serve(ctx context.Context, db *db.DB, log logrus.FieldLogger, cfg config.Config, args []string) error {
	subcmd := subcmd.New("serve", "run the web server")
	var (
		addr = subcmd.String("addr", cfg.Addr, "http listen address")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	hashKey, blockKey, err := cfg.SessionKeys()
	if err != nil {
		return err
	}
	if cfg.SessionKey == "" {
		log.Warn("no session key configured; sessions end when the server restarts")
	}

	srv, err := server.New(db, log, server.Options{
		HashKey:       hashKey,
		BlockKey:      blockKey,
		SecureCookies: cfg.SecureCookies,
	})
	if err != nil {
		return err
	}
	log.WithField("db", cfg.Database).Info("Start Application")
	return srv.Run(ctx, *addr)
}
