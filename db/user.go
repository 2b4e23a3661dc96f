package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

var (
	ErrUserExists     = errors.New("user already exists")
	ErrBadCredentials = errors.New("unknown user or wrong password")
)

const maxUsernameLength = 16

func (db *DB) RegisterUser(ctx context.Context, username, password string) (*data.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLength {
		return nil, fmt.Errorf("username must be 1 to %d characters, got '%s'", maxUsernameLength, username)
	}
	if password == "" {
		return nil, fmt.Errorf("no password for '%s'", username)
	}

	user := &data.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := duplicates(tx, "users", equal("username", username))
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return fmt.Errorf("error registering '%s': %w", username, ErrUserExists)
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("error inserting user '%s': %w", username, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	db.log.WithField("user", username).Info("user registered")
	return user, nil
}

func (db *DB) GetUser(ctx context.Context, id int64) (*data.User, error) {
	return get[data.User](ctx, db, "user", id)
}

func (db *DB) GetUserByName(ctx context.Context, username string) (*data.User, error) {
	var user data.User
	if err := db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).
		Error; err != nil {
		return nil, fmt.Errorf("error getting user '%s': %w", username, err)
	}
	return &user, nil
}

// Authenticate returns the user when the password matches, and
// ErrBadCredentials when the user is unknown or the password is wrong.
func (db *DB) Authenticate(ctx context.Context, username, password string) (*data.User, error) {
	user, err := db.GetUserByName(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrBadCredentials
	} else if err != nil {
		return nil, err
	}
	if !user.VerifyPassword(password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

func (db *DB) UpdatePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return fmt.Errorf("no password for user %d", id)
	}
	user, err := db.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if err := db.WithContext(ctx).
		Model(user).
		Update("password_hash", user.PasswordHash).
		Error; err != nil {
		return fmt.Errorf("error updating password of '%s': %w", user.Username, err)
	}
	db.log.WithField("user", user.Username).Info("password changed")
	return nil
}
