package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// GlobalConfig is ~/.mindit/config.json.
type GlobalConfig struct {
	// CurrentMap is the map id used when --map is not given.
	CurrentMap string `json:"currentMap,omitempty"`

	// Stylesheet is an optional CSS file used for HTML export and clipboard styling.
	Stylesheet string `json:"stylesheet,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "mono").
	Profile string `json:"profile,omitempty"`
	ShowIDs bool   `json:"showIds,omitempty"`
}

// ConfigDir is MINDIT_CONFIG_DIR when set, else ~/.mindit.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("MINDIT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mindit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig returns an empty config when the file does not exist yet.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := &GlobalConfig{}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig replaces config.json through a temp file and rename, so a reader never sees a
// half-written file even while the CLI and an open editor both write.
func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "config.json.*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()
	if _, err := f.Write(append(b, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// UpdateConfig loads the config, applies fn and saves the result.
func UpdateConfig(fn func(cfg *GlobalConfig)) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	fn(cfg)
	return SaveConfig(cfg)
}
