package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct {
	*gorm.DB
	log logrus.FieldLogger
}

//go:embed schema.sql
var schema string

// ErrNotFound is returned, wrapped, by the getters when no row has the
// requested id.
var ErrNotFound = gorm.ErrRecordNotFound

const driverName = "sqlite3_klamu"

var registerDriver sync.Once

// The sqlite3 driver is registered under our own name so that every
// connection gets the fold() function used by the uniqueness checks.
func register() {
	registerDriver.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("fold", fold, true)
			},
		})
	})
}

// fold is the case folding behind every "same name" comparison. sqlite's
// lower() only knows ASCII, which is not enough for Dvořák.
func fold(s string) string { return cases.Fold().String(s) }

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string, log logrus.FieldLogger) (*DB, error) {
	register()

	dsn := filename + "?_foreign_keys=on&_busy_timeout=5000"
	gdb, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: driverName, DSN: dsn}), &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	pool, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting connection pool for '%s': %w", filename, err)
	}
	// one writer at a time; sqlite would serialize us anyway
	pool.SetMaxOpenConns(1)

	db := &DB{DB: gdb, log: log}

	if err := db.Exec(schema).Error; err != nil {
		pool.Close()
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

func now() int64 { return time.Now().Unix() }
