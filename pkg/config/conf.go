package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/ncapsim/pkg/task"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the config file inside the app directory.
	FileName = "config.yaml"

	defaultLogLevel = "info"
	defaultSeed     = 42

	dirMode  = 0700
	fileMode = 0600
)

// Config represents the app config file.
type Config struct {
	LogLevel string      `json:"log_level" yaml:"log_level"`
	Seed     uint64      `json:"seed" yaml:"seed"`
	Task     task.Config `json:"task" yaml:"task"`
}

// Default returns the config of the full overall rating.
func Default() (*Config, error) {
	return defaultFor(task.Overall)
}

func defaultFor(v task.Variant) (*Config, error) {
	tc, err := task.DefaultConfig(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build default task config")
	}
	return &Config{
		LogLevel: defaultLogLevel,
		Seed:     defaultSeed,
		Task:     tc,
	}, nil
}

// Save writes the config to path.
func Save(path string, c *Config) error {
	if path == "" {
		return errors.New("config path required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", path)
	}
	return nil
}

// Load reads the config at path. Fields missing from the file keep the
// defaults of the configured variant.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var probe struct {
		Task struct {
			Variant string `yaml:"variant"`
		} `yaml:"task"`
	}
	if err := yaml.Unmarshal(b, &probe); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}

	v := task.Overall
	if probe.Task.Variant != "" {
		if v, err = task.ParseVariant(probe.Task.Variant); err != nil {
			return nil, errors.Wrapf(err, "invalid config file: %s", path)
		}
	}

	c, err := defaultFor(v)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}
	c.Task.Variant = v

	if err := c.Task.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file: %s", path)
	}
	slog.Debug("config loaded", "path", path, "variant", v)
	return c, nil
}

// ReadOrCreate reads the config from the directory or creates a default one.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, FileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		c, err := Default()
		if err != nil {
			return nil, err
		}
		if err := Save(path, c); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
		slog.Debug("created default config", "path", path)
	}

	return Load(path)
}

// GetOrCreateHomeDir returns the app directory in the user home.
// The created flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, errors.Wrapf(err, "failed to create dir: %s", dir)
		}
		created = true
	}
	return dir, created, nil
}
