package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/likmaa/ejs-market/internal/core/port"
	"github.com/likmaa/ejs-market/pkg/retry"
)

// Fixed snapshot keys, one per container.
const (
	SnapshotKeyCart       = "ejs.cart"
	SnapshotKeyWishlist   = "ejs.wishlist"
	SnapshotKeyComparison = "ejs.comparison"
)

const (
	persistTimeout  = 3 * time.Second
	persistAttempts = 3
	persistDelay    = 50 * time.Millisecond
)

// A mirror is used for composition.
//
// Writing full container snapshots to durable storage and
// loading the last persisted snapshot on rehydration.
type mirror struct {
	opPrefix string
	key      string
	storage  port.SnapshotStorage
	pending  chan []byte
}

func newMirror(opPrefix, key string, storage port.SnapshotStorage) mirror {
	m := mirror{
		opPrefix: opPrefix,
		key:      key,
		storage:  storage,
		pending:  make(chan []byte, 1),
	}
	go m.writeLoop()
	return m
}

// persist marshals v synchronously and hands the snapshot to the
// background writer. Failures are logged, never surfaced: the
// in-memory state stays authoritative for the current session.
// Callers invoke persist under the container lock, so snapshots
// are enqueued in mutation order.
func (m mirror) persist(v any) {
	const op = "persist"
	log := slog.With("op", makeOp(m.opPrefix, op))

	b, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to marshal snapshot", "err", err)
		return
	}
	m.enqueue(b)
}

// enqueue keeps only the newest snapshot, an older one still
// waiting for the writer is superseded.
func (m mirror) enqueue(b []byte) {
	for {
		select {
		case m.pending <- b:
			return
		default:
		}
		select {
		case <-m.pending:
		default:
		}
	}
}

// writeLoop is the single writer for the key, so a retried older
// snapshot can never land after a newer one.
func (m mirror) writeLoop() {
	const op = "writeLoop"
	log := slog.With("op", makeOp(m.opPrefix, op))

	for b := range m.pending {
		if err := m.write(b); err != nil {
			log.Error("failed to mirror snapshot", "err", err)
		}
	}
}

func (m mirror) write(b []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	retryCfg := retry.RetryConfig{
		MaxAttempts: persistAttempts,
		Backoff:     retry.LineareBackoff(persistDelay),
	}
	return retry.Do(ctx, retryCfg, func() error {
		return m.storage.Write(ctx, m.key, b)
	})
}

// load fills v from the last persisted snapshot and reports whether
// it decoded. On false the destination may hold partially decoded
// elements and must be discarded: an absent or unparseable snapshot
// means an empty container.
func (m mirror) load(ctx context.Context, v any) bool {
	const op = "load"
	log := slog.With("op", makeOp(m.opPrefix, op))

	b, err := m.storage.Read(ctx, m.key)
	if err != nil {
		log.Error("failed to read snapshot", "err", err)
		return false
	}
	if len(b) == 0 {
		return false
	}

	if err := json.Unmarshal(b, v); err != nil {
		log.Warn("corrupt snapshot, starting empty", "err", err)
		return false
	}
	return true
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}
