package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "buckets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteBucketRoundTrip(t *testing.T) {
	s := openTestStore(t)

	blob := []byte{0x01, 0x02, 0x03, 0xFF}
	require.NoError(t, s.PutBucket(3, blob))

	got, err := s.GetBucket(3)
	require.NoError(t, err)
	require.Equal(t, blob, got)
}

func TestSQLiteBucketOverwrite(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutBucket(1, []byte("old")))
	require.NoError(t, s.PutBucket(1, []byte("new")))

	got, err := s.GetBucket(1)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}

func TestSQLiteMissingBucket(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetBucket(99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteMetaRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetMeta()
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.PutMeta([]byte("meta-blob")))
	got, err := s.GetMeta()
	require.NoError(t, err)
	require.Equal(t, []byte("meta-blob"), got)

	require.NoError(t, s.PutMeta([]byte("meta-blob-2")))
	got, err = s.GetMeta()
	require.NoError(t, err)
	require.Equal(t, []byte("meta-blob-2"), got)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()

	_, err := m.GetBucket(0)
	require.ErrorIs(t, err, ErrNotFound)

	blob := []byte{9, 8, 7}
	require.NoError(t, m.PutBucket(0, blob))

	got, err := m.GetBucket(0)
	require.NoError(t, err)
	require.Equal(t, blob, got)

	// The store keeps its own copy; callers may reuse their buffer.
	blob[0] = 0
	got, err = m.GetBucket(0)
	require.NoError(t, err)
	require.Equal(t, byte(9), got[0])
}
