package main

import (
	"context"
	"fmt"

	"github.com/amonks/klamu/db"
	"github.com/amonks/klamu/subcmd"
)

func adduser(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("adduser", "register a user of the web site")
	var (
		username = subcmd.String("username", "", "user name, 1 to 16 characters (required)")
		password = subcmd.String("password", "", "password (required)")
	)
	subcmd.Require("username", "password")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	user, err := db.RegisterUser(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Printf("added user '%s' (id %d)\n", user.Username, user.ID)
	return nil
}
