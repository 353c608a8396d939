package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jask/artgallery/internal/config"
)

// KV is the key-value persistence used for the favorites shortlist.
type KV interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend selected by cfg.Backend.
func Open(cfg config.StorageConfig, log *logrus.Entry) (KV, error) {
	fields := logrus.Fields{"backend": cfg.Backend}

	var (
		kv  KV
		err error
	)
	switch cfg.Backend {
	case "sqlite":
		fields["path"] = cfg.Path
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		kv, err = OpenSQLite(cfg.Path, cfg.Migrations)
	case "file":
		fields["path"] = cfg.Path
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		kv = NewFile(cfg.Path)
	case "memory":
		kv = NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(fields).Info("Use storage")
	return kv, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir storage dir: %w", err)
	}
	return nil
}
