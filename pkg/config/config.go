// Package config handles loading ptour configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/ptour/config.yaml (read only) and the run-once marker
//   - State:   ~/.local/state/ptour/ (log file)
//
// Values are layered: built-in defaults, then config.yaml, then PTOUR_*
// environment variables. Command line flags are applied last by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/ptour/pkg/devicetree"
)

// AppName names the per-user config and state directories.
const AppName = "ptour"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PTOUR_"

// CompatibleList is a list of device tree compatibles. From the environment
// it is parsed with devicetree.ParseList.
type CompatibleList []string

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompatibleList) UnmarshalText(text []byte) error {
	*c = devicetree.ParseList(string(text))
	return nil
}

// TourConfig holds what the tour shows.
type TourConfig struct {
	Brand     string `yaml:"brand,omitempty" env:"BRAND"`
	Vendor    string `yaml:"vendor,omitempty" env:"VENDOR"`
	PagesFile string `yaml:"pages_file,omitempty" env:"PAGES_FILE"`

	// Compatibles overrides the device's compatibles when non-empty.
	Compatibles CompatibleList `yaml:"compatibles,omitempty" env:"COMPATIBLES"`
	// DeviceTreeRoot is the filesystem root the device tree is read from.
	DeviceTreeRoot string `yaml:"device_tree_root,omitempty" env:"DEVICE_TREE_ROOT"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	ScrollMS  int   `yaml:"scroll_ms,omitempty" env:"SCROLL_MS"`   // Page scroll animation, 0 jumps
	ImageRows int   `yaml:"image_rows,omitempty" env:"IMAGE_ROWS"` // Max terminal rows per page image
	AltScreen *bool `yaml:"alt_screen,omitempty" env:"ALT_SCREEN"`
}

// Config is the top-level configuration for ptour.
type Config struct {
	Tour TourConfig `yaml:"tour,omitempty"`
	UI   UIConfig   `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Tour: TourConfig{
			Brand:  "Phosh",
			Vendor: "the Phosh developers",
		},
		UI: UIConfig{
			ScrollMS:  250,
			ImageRows: 10,
		},
	}
}

// ScrollDuration returns the page scroll animation length.
func (c Config) ScrollDuration() time.Duration {
	if c.UI.ScrollMS <= 0 {
		return 0
	}
	return time.Duration(c.UI.ScrollMS) * time.Millisecond
}

// UseAltScreen reports whether the TUI takes over the whole terminal.
func (c Config) UseAltScreen() bool {
	return c.UI.AltScreen == nil || *c.UI.AltScreen
}

// ConfigDir returns the XDG config directory for ptour.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// StateDir returns the XDG state directory for ptour.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LogPath returns the log file the TUI writes warnings to.
func LogPath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, AppName+".log")
}

// Load reads config.yaml from the XDG config directory and applies
// environment overrides. A missing file yields the defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if path := ConfigPath(); path != "" {
		var err error
		if cfg, err = LoadFrom(path); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Tour.PagesFile = expandHome(cfg.Tour.PagesFile)
	cfg.Tour.Compatibles = CompatibleList(normalize(cfg.Tour.Compatibles))
	return cfg, nil
}

// ApplyEnv overrides cfg with PTOUR_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	cfg.Tour.PagesFile = expandHome(cfg.Tour.PagesFile)
	return nil
}

func normalize(list []string) []string {
	out := list[:0]
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
