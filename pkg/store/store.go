// Package store provides blob persistence backends for extendible hash
// buckets: blobs keyed by bucket identity plus a single table-level
// metadata blob. The hash table treats every backend as best-effort; a
// backend error never invalidates the in-memory structure.
package store

import "errors"

// ErrNotFound reports that no blob exists under the requested key.
var ErrNotFound = errors.New("store: blob not found")

// Memory is a map-backed store for tests and for running without a data
// directory.
type Memory struct {
	buckets map[uint64][]byte
	meta    []byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{buckets: make(map[uint64][]byte)}
}

func (m *Memory) PutBucket(id uint64, data []byte) error {
	blob := make([]byte, len(data))
	copy(blob, data)
	m.buckets[id] = blob
	return nil
}

func (m *Memory) GetBucket(id uint64) ([]byte, error) {
	data, ok := m.buckets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *Memory) PutMeta(data []byte) error {
	m.meta = make([]byte, len(data))
	copy(m.meta, data)
	return nil
}

func (m *Memory) GetMeta() ([]byte, error) {
	if m.meta == nil {
		return nil, ErrNotFound
	}
	return m.meta, nil
}
