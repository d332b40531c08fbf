package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveConfig writes single keys back to the config files, the way the
// settings dialog persists each field.
type SaveConfig struct {
	// GlobalConfigDir is the directory under ~/.config/ for global config.
	GlobalConfigDir string

	// GlobalConfigFile is the filename. Defaults to "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the filename for local config.
	LocalConfigName string

	// ValidKeys lists keys that can be saved. If nil, all keys are valid.
	ValidKeys []string
}

func (c SaveConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// GlobalPath returns the global config path.
func (c SaveConfig) GlobalPath() (string, error) {
	if c.GlobalConfigDir == "" {
		return "", fmt.Errorf("global config directory not configured")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, c.globalConfigFile()), nil
}

// SaveGlobal saves a key-value pair to the global config file. The file
// may hold credentials, so it is only readable by the owner.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if err := c.validate(key); err != nil {
		return err
	}
	configPath, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return err
	}
	return update(configPath, 0o600, func(doc map[string]any) {
		setNested(doc, key, parseValue(value))
	})
}

// SaveLocal saves a key-value pair to the local config file in dir.
func (c SaveConfig) SaveLocal(dir, key, value string) error {
	if dir == "" {
		return fmt.Errorf("local config directory not given")
	}
	if c.LocalConfigName == "" {
		return fmt.Errorf("local config name not configured")
	}
	if err := c.validate(key); err != nil {
		return err
	}
	if IsSecret(key) {
		return fmt.Errorf("%s holds a credential; save it globally instead", key)
	}
	return update(filepath.Join(dir, c.LocalConfigName), 0o644, func(doc map[string]any) {
		setNested(doc, key, parseValue(value))
	})
}

// DeleteGlobalKey removes a key from the global config.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	configPath, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil // Nothing to delete
	}
	return update(configPath, 0o600, func(doc map[string]any) {
		deleteNested(doc, key)
	})
}

func (c SaveConfig) validate(key string) error {
	if len(c.ValidKeys) > 0 && !contains(c.ValidKeys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(c.ValidKeys, ", "))
	}
	return nil
}

func update(path string, perm os.FileMode, mutate func(map[string]any)) error {
	var doc map[string]any
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if doc == nil {
		doc = make(map[string]any)
	}

	mutate(doc)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// setNested stores value under a dotted key, creating maps as needed. A
// scalar in the way is replaced by a map.
func setNested(doc map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	m := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// deleteNested removes a dotted key and prunes maps left empty.
func deleteNested(doc map[string]any, key string) {
	parts := strings.Split(key, ".")
	if len(parts) == 1 {
		delete(doc, key)
		return
	}
	child, ok := doc[parts[0]].(map[string]any)
	if !ok {
		return
	}
	deleteNested(child, strings.Join(parts[1:], "."))
	if len(child) == 0 {
		delete(doc, parts[0])
	}
}

// parseValue converts string values to appropriate types for YAML.
// Comma-separated values become lists.
func parseValue(value string) any {
	lower := strings.ToLower(value)
	if lower == "true" {
		return true
	}
	if lower == "false" {
		return false
	}
	if n, err := strconv.Atoi(value); err == nil && strconv.Itoa(n) == value {
		return n
	}
	if strings.Contains(value, ",") {
		return splitList(value)
	}
	return value
}
