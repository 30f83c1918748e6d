package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DefaultConfigPath is read when no --config flag is given; its absence is not an error.
const DefaultConfigPath = "config.yml"

type Config struct {
	Logger Logger `yaml:"logger"`
	Report Report `yaml:"report"`
}

type Logger struct {
	Level string `yaml:"level"`
}

type Report struct {
	Input          string `yaml:"input"`
	Output         string `yaml:"output"`
	Format         string `yaml:"format"`
	Source         string `yaml:"source"`
	StrictCounters bool   `yaml:"strict_counters"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig reads configPath. An empty path falls back to DefaultConfigPath,
// and a missing default file yields an empty configuration.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		if _, err := os.Stat(DefaultConfigPath); os.IsNotExist(err) {
			return &Config{}, nil
		}
		configPath = DefaultConfigPath
	}

	cfg, err := NewConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	return cfg, nil
}
