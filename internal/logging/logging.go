package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/artgallery/internal/config"
)

// Setup builds a logger that writes to cfg.Path. The terminal belongs to the
// TUI, so nothing is written to stdout or stderr. Every entry carries the
// run's session id. The returned close func releases the log file.
func Setup(cfg config.LogConfig) (*logrus.Entry, func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = io.Discard
	closeFn := func() error { return nil }
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	return New(out, level), closeFn, nil
}

// New returns a session-tagged entry writing to out.
func New(out io.Writer, level logrus.Level) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l.WithField("session", uuid.NewString())
}

// Discard returns an entry that drops everything. Tests use it.
func Discard() *logrus.Entry {
	return New(io.Discard, logrus.PanicLevel)
}
