package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 4, cfg.BTree.Order)
	require.Equal(t, 2, cfg.Hash.BucketCapacity)
	require.Equal(t, 1, cfg.Hash.GlobalDepth)
	require.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keydex.yaml")
	content := `
btree:
  order: 8
hash:
  bucket_capacity: 16
  global_depth: 4
storage:
  path: /tmp/buckets.db
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 8, cfg.BTree.Order)
	require.Equal(t, 16, cfg.Hash.BucketCapacity)
	require.Equal(t, 4, cfg.Hash.GlobalDepth)
	require.Equal(t, "/tmp/buckets.db", cfg.Storage.Path)
	require.Equal(t, "DEBUG", cfg.Logging.Level)
	// Unset fields keep their defaults.
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadClampsNonsense(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keydex.yaml")
	content := `
btree:
  order: 1
hash:
  bucket_capacity: -3
  global_depth: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 4, cfg.BTree.Order)
	require.Equal(t, 2, cfg.Hash.BucketCapacity)
	require.Equal(t, 1, cfg.Hash.GlobalDepth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
