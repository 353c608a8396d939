package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/artgallery/internal/database"
	"github.com/jask/artgallery/internal/database/repository"
)

// SQLite stores values in the kv table.
type SQLite struct {
	db   *sql.DB
	repo *repository.KVRepo
}

// OpenSQLite migrates and opens the database at path.
func OpenSQLite(path, migrations string) (*SQLite, error) {
	if err := database.RunMigrations(path, migrations); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &SQLite{db: db, repo: repository.NewKVRepo(db)}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if e == nil {
		return nil, false, nil
	}
	return []byte(e.Value), true, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	return s.repo.Put(ctx, key, string(value))
}

func (s *SQLite) Close() error { return s.db.Close() }
