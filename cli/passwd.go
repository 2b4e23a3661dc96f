package main

import (
	"context"
	"fmt"

	"github.com/amonks/klamu/db"
	"github.com/amonks/klamu/subcmd"
)

func passwd(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("passwd", "set a user's password")
	var (
		username = subcmd.String("username", "", "user name (required)")
		password = subcmd.String("password", "", "new password (required)")
	)
	subcmd.Require("username", "password")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	user, err := db.GetUserByName(ctx, *username)
	if err != nil {
		return err
	}
	if err := db.UpdatePassword(ctx, user.ID, *password); err != nil {
		return err
	}
	fmt.Printf("password of '%s' changed\n", user.Username)
	return nil
}
