// Package logging sets up the application logger: text to stderr, and to a
// rotating file per module and host when a log directory is configured.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxFileMB   = 1
	maxBackups  = 5
	timeFormat  = "02/01/2006 15:04:05"
	noDirCloser = nopCloser(0)
)

type nopCloser int

func (nopCloser) Close() error { return nil }

// New returns a logger at the given level. When dir is not empty it also
// writes to dir/<module>_<host>.log; the returned Closer closes that file.
func New(dir, level, module string) (*logrus.Logger, io.Closer, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing log level '%s': %w", level, err)
	}

	log := logrus.New()
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timeFormat,
	})

	if dir == "" {
		log.SetOutput(os.Stderr)
		return log, noDirCloser, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("error creating log dir '%s': %w", dir, err)
	}
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(dir, fmt.Sprintf("%s_%s.log", module, host)),
		MaxSize:    maxFileMB,
		MaxBackups: maxBackups,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return log, file, nil
}
