package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level keydex configuration, loaded from a YAML file.
type Config struct {
	BTree   BTreeConfig   `yaml:"btree"`
	Hash    HashConfig    `yaml:"hash"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

type BTreeConfig struct {
	Order int `yaml:"order"` // max keys per node before a split
}

type HashConfig struct {
	BucketCapacity int `yaml:"bucket_capacity"`
	GlobalDepth    int `yaml:"global_depth"` // initial directory depth
}

type StorageConfig struct {
	Path string `yaml:"path"` // SQLite bucket store path; empty = in-memory only
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from configPath, falling back to defaults for
// anything the file does not set. An empty configPath probes the usual
// locations and silently uses defaults when no file exists.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		BTree: BTreeConfig{
			Order: 4,
		},
		Hash: HashConfig{
			BucketCapacity: 2,
			GlobalDepth:    1,
		},
		Storage: StorageConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
	}

	if configPath == "" {
		for _, p := range []string{"configs/keydex.yaml", "keydex.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyDefaults(cfg)
				return cfg, nil
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults clamps nonsense values back to usable defaults.
func applyDefaults(cfg *Config) {
	if cfg.BTree.Order < 3 {
		cfg.BTree.Order = 4
	}
	if cfg.Hash.BucketCapacity <= 0 {
		cfg.Hash.BucketCapacity = 2
	}
	if cfg.Hash.GlobalDepth < 1 {
		cfg.Hash.GlobalDepth = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
