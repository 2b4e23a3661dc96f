// Package config loads the application settings from an optional TOML file
// and the environment.
package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database string `toml:"database"`
	Addr     string `toml:"addr"`
	LogDir   string `toml:"log_dir"`
	LogLevel string `toml:"log_level"`

	// SessionKey signs and encrypts the session cookie, base64 encoded.
	// When empty a random key is generated at start, which logs everyone
	// out on restart.
	SessionKey    string `toml:"session_key"`
	SecureCookies bool   `toml:"secure_cookies"`
}

func Default() Config {
	return Config{
		Database: "klamu.db",
		Addr:     ":9999",
		LogLevel: "info",
	}
}

var levels = map[string]bool{
	"panic": true, "fatal": true, "error": true, "warn": true, "warning": true,
	"info": true, "debug": true, "trace": true,
}

// Load reads the TOML file at path, if there is one, over the defaults and
// then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	bs, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("error reading config '%s': %w", path, err)
	} else if err == nil {
		dec := toml.NewDecoder(bytes.NewReader(bs))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("error parsing config '%s': %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config '%s': %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	for name, dest := range map[string]*string{
		"KLAMU_DATABASE":    &cfg.Database,
		"KLAMU_ADDR":        &cfg.Addr,
		"LOGDIR":            &cfg.LogDir,
		"LOGLEVEL":          &cfg.LogLevel,
		"KLAMU_SESSION_KEY": &cfg.SessionKey,
	} {
		if v, ok := os.LookupEnv(name); ok {
			*dest = v
		}
	}
	if v, ok := os.LookupEnv("KLAMU_SECURE_COOKIES"); ok {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("error parsing KLAMU_SECURE_COOKIES '%s': %w", v, err)
		}
		cfg.SecureCookies = secure
	}
	return nil
}

func (cfg Config) Validate() error {
	if cfg.Database == "" {
		return fmt.Errorf("no database")
	}
	if cfg.Addr == "" {
		return fmt.Errorf("no addr")
	}
	if !levels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("unknown log level '%s'", cfg.LogLevel)
	}
	if cfg.SessionKey != "" {
		if _, err := cfg.decodeSessionKey(); err != nil {
			return err
		}
	}
	return nil
}

func (cfg Config) decodeSessionKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(cfg.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("error decoding session key: %w", err)
	}
	if len(key) != 32 && len(key) != 64 {
		return nil, fmt.Errorf("session key must be 32 or 64 bytes, got %d", len(key))
	}
	return key, nil
}

// SessionKeys returns the hash key and block key for the session store.
// A 64 byte session key is split in two; a 32 byte key only signs, and
// cookies are not encrypted.
func (cfg Config) SessionKeys() (hashKey, blockKey []byte, err error) {
	if cfg.SessionKey == "" {
		return securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32), nil
	}
	key, err := cfg.decodeSessionKey()
	if err != nil {
		return nil, nil, err
	}
	if len(key) == 64 {
		return key[:32], key[32:], nil
	}
	return key, nil, nil
}
