package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileNames are the config file names looked up in a directory, in order.
var FileNames = []string{"topq.yml", "topq.yaml"}

// Config holds defaults for the command line tool, loaded from topq.yml.
// Zero fields mean "not set" and leave the flag default in place.
type Config struct {
	BufSize  int    `yaml:"bufSize,omitempty"`
	OutCount int    `yaml:"outCount,omitempty"`
	Kind     string `yaml:"kind,omitempty"`
	Format   string `yaml:"format,omitempty"`
	LogLevel string `yaml:"logLevel,omitempty"`
	Store    string `yaml:"store,omitempty"`
	Verify   bool   `yaml:"verify,omitempty"`
}

// Load reads the config file at path. A path naming a directory is searched
// for one of FileNames. Returns a zero-value config (not an error) if no
// config file exists.
func Load(path string) (*Config, error) {
	candidates := []string{path}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		candidates = candidates[:0]
		for _, name := range FileNames {
			candidates = append(candidates, filepath.Join(path, name))
		}
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", p)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", p)
		}
		return &cfg, nil
	}
	return &Config{}, nil
}
