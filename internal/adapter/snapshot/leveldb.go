// Package snapshot persists container state in an embedded
// key-value store, one JSON-serialized array per fixed key.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/likmaa/ejs-market/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var _ port.SnapshotStorage = (*LevelDB)(nil)

type LevelDB struct {
	db *leveldb.DB
}

func NewLevelDB(path string) (LevelDB, error) {
	const op = "LevelDB"
	log := slog.With("op", op)

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return LevelDB{}, fmt.Errorf(
			"%s: snapshot storage is unavailable: %w", op, err,
		)
	}
	log.Info("snapshot storage is available", "path", path)
	return LevelDB{db}, nil
}

// NewLevelDBInMemory backs the store with volatile memory, for tests.
func NewLevelDBInMemory() (LevelDB, error) {
	const op = "LevelDBInMemory"

	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return LevelDB{}, fmt.Errorf("%s: %w", op, err)
	}
	return LevelDB{db}, nil
}

// Read returns nil, nil when the key was never written.
func (s LevelDB) Read(ctx context.Context, key string) ([]byte, error) {
	const op = "LevelDB.Read"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func (s LevelDB) Write(ctx context.Context, key string, value []byte) error {
	const op = "LevelDB.Write"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s LevelDB) Close() {
	const op = "LevelDB.Close"
	log := slog.With("op", op)

	log.Info("closing snapshot storage...")

	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("snapshot storage is closed")
}
