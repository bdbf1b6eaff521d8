package storage

import "context"

// MemoryStorage is a map-backed key-value store. It is used by tests and by
// dry runs that must not touch the database.
type MemoryStorage struct {
	data     map[string][]byte
	writeErr error
	closed   bool
	writes   int
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (m *MemoryStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if m.closed {
		return nil, false, ErrClosed
	}
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set stores a copy of value under key.
func (m *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if m.closed {
		return ErrClosed
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Close marks the store as closed.
func (m *MemoryStorage) Close() error {
	m.closed = true
	return nil
}

// Prime stores a raw blob without counting it as a write.
func (m *MemoryStorage) Prime(key string, value []byte) {
	m.data[key] = append([]byte(nil), value...)
}

// FailWrites makes every following Set return err. Pass nil to recover.
func (m *MemoryStorage) FailWrites(err error) {
	m.writeErr = err
}

// Writes returns the number of successful Set calls.
func (m *MemoryStorage) Writes() int {
	return m.writes
}
