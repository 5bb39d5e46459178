package service_test

import (
	"context"
	"errors"
	"sync"
)

// memSnapshot is an in-memory SnapshotStorage for container tests.
type memSnapshot struct {
	mu         sync.Mutex
	data       map[string][]byte
	failWrites bool
}

func newMemSnapshot() *memSnapshot {
	return &memSnapshot{data: make(map[string][]byte)}
}

func (m *memSnapshot) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memSnapshot) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errors.New("storage is unavailable")
	}
	m.data[key] = value
	return nil
}

func (m *memSnapshot) snapshot(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

func (m *memSnapshot) put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *memSnapshot) empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data) == 0
}

// gateSnapshot blocks every write until the gate is opened,
// for exercising stalled snapshot writes.
type gateSnapshot struct {
	mu   sync.Mutex
	gate chan struct{}
	last []byte
}

func newGateSnapshot() *gateSnapshot {
	return &gateSnapshot{gate: make(chan struct{})}
}

func (g *gateSnapshot) open() {
	close(g.gate)
}

func (g *gateSnapshot) Read(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (g *gateSnapshot) Write(
	ctx context.Context, _ string, value []byte,
) error {
	select {
	case <-g.gate:
	case <-ctx.Done():
		return ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = append([]byte(nil), value...)
	return nil
}

func (g *gateSnapshot) snapshot() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]byte(nil), g.last...)
}
