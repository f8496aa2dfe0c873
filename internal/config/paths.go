package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed default-config.yml
var defaultConfigYAML []byte

// EnvConfigPath overrides the resolved config file location when set.
const EnvConfigPath = "BRB_CONFIG"

// Path returns the absolute path of the config file: the BRB_CONFIG override
// when set, otherwise <user config dir>/brb/config.yml.
func Path() (string, error) {
	if override := os.Getenv(EnvConfigPath); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine user config directory: %w", err)
	}
	return filepath.Join(dir, "brb", "config.yml"), nil
}

// LoadDefault loads the config from the resolved platform path.
func LoadDefault() (*LoadedConfig, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// InitResult reports what `brb init` did.
type InitResult struct {
	Path    string
	Created bool
}

// Init writes the embedded starter config to the resolved path unless a
// config file already exists there.
func Init() (InitResult, error) {
	path, err := Path()
	if err != nil {
		return InitResult{}, err
	}
	if _, err := os.Stat(path); err == nil {
		return InitResult{Path: path}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return InitResult{}, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, defaultConfigYAML, 0o644); err != nil {
		return InitResult{}, fmt.Errorf("failed to write config file: %w", err)
	}
	return InitResult{Path: path, Created: true}, nil
}
