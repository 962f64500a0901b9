// Package config persists application settings between runs.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Settings is the persistent application configuration. Zero values
// mean "use the built-in default".
type Settings struct {
	DBPath         string `json:"db_path,omitempty"`
	DurationMs     int    `json:"duration_ms,omitempty"`
	MaxPending     int    `json:"max_pending,omitempty"`
	Easing         string `json:"easing,omitempty"`
	LastDeviceID   string `json:"last_device_id,omitempty"`
	LastDeviceName string `json:"last_device_name,omitempty"`
}

// Duration returns the configured turn duration, or def if unset.
func (s Settings) Duration(def time.Duration) time.Duration {
	if s.DurationMs <= 0 {
		return def
	}
	return time.Duration(s.DurationMs) * time.Millisecond
}

// File manages the settings file.
type File struct {
	path     string
	settings Settings
}

// Dir returns the application directory, ~/.cube3d.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cube3d"), nil
}

// DefaultPath returns the default settings file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the settings file at path. A missing file yields empty
// settings.
func Load(path string) (*File, error) {
	f := &File{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, &f.settings); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return f, nil
}

// LoadDefault reads the settings file at the default path.
func LoadDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Save writes the settings to disk.
func (f *File) Save() error {
	data, err := json.MarshalIndent(f.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the settings file path.
func (f *File) Path() string {
	return f.path
}

// Settings returns the current settings.
func (f *File) Settings() Settings {
	return f.settings
}

// SetLastDevice remembers the last connected device and saves.
func (f *File) SetLastDevice(id, name string) error {
	f.settings.LastDeviceID = id
	f.settings.LastDeviceName = name
	return f.Save()
}

// SetDBPath sets the database path and saves.
func (f *File) SetDBPath(path string) error {
	f.settings.DBPath = path
	return f.Save()
}
