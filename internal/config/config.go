package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the server binary. Values come
// from an optional YAML file layered over defaults, with environment
// overrides applied last.
type Config struct {
	HTTPAddr string  `yaml:"http_addr"`
	DataDir  string  `yaml:"data_dir"`
	Journal  Journal `yaml:"journal"`
}

// Journal carries the commit log knobs. Durations are expressed in
// milliseconds so the YAML stays plain integers.
type Journal struct {
	FlushIntervalMs  int `yaml:"flush_interval_ms"`
	EnqueueTimeoutMs int `yaml:"enqueue_timeout_ms"`
	MaxPending       int `yaml:"max_pending"`
	BufferBytes      int `yaml:"buffer_bytes"`
}

func (j Journal) FlushInterval() time.Duration {
	return time.Duration(j.FlushIntervalMs) * time.Millisecond
}

func (j Journal) EnqueueTimeout() time.Duration {
	return time.Duration(j.EnqueueTimeoutMs) * time.Millisecond
}

// Default returns the built-in settings used when no file is given.
func Default() Config {
	return Config{
		HTTPAddr: "127.0.0.1:8080",
		DataDir:  "data",
		Journal: Journal{
			FlushIntervalMs:  500,
			EnqueueTimeoutMs: 2000,
			MaxPending:       1024,
			BufferBytes:      4 * 1024 * 1024,
		},
	}
}

// Load reads path (when non-empty) over the defaults, then applies the
// KV_HTTP_ADDR and KV_DATA_DIR environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if v := os.Getenv("KV_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("KV_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	return cfg, nil
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}
