package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "tytimer"

type Config struct {
	Sound  SoundConfig  `koanf:"sound"`
	Tray   TrayConfig   `koanf:"tray"`
	Notify NotifyConfig `koanf:"notify"`
	MPRIS  MPRISConfig  `koanf:"mpris"`
	MQTT   MQTTConfig   `koanf:"mqtt"`
	Log    LogConfig    `koanf:"log"`
	UI     UIConfig     `koanf:"ui"`
}

// SoundConfig controls the alarm sound.
type SoundConfig struct {
	Enabled *bool    `koanf:"enabled"` // default: true
	File    string   `koanf:"file"`    // default: $XDG_DATA_HOME/tytimer/alarm.mp3
	Volume  *float64 `koanf:"volume"`  // 0.0-1.0 (default: 1.0)
}

type TrayConfig struct {
	Enabled *bool `koanf:"enabled"`
}

// NotifyConfig controls the alarm notification.
type NotifyConfig struct {
	Enabled   *bool `koanf:"enabled"`
	TimeoutMS int   `koanf:"timeout_ms"` // 0 = never expire
}

type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"`
}

// MQTTConfig enables status publishing when Broker is set.
type MQTTConfig struct {
	Broker   string `koanf:"broker"` // e.g., "tcp://localhost:1883"
	Topic    string `koanf:"topic"`
	ClientID string `koanf:"client_id"`
}

type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error"
	File  string `koanf:"file"`
}

type UIConfig struct {
	Icons              string `koanf:"icons"` // "nerd", "unicode", or "none"
	RestartPercentages []int  `koanf:"restart_percentages"`
}

var (
	validLevels = []string{"debug", "info", "warn", "error"}
	validIcons  = []string{"nerd", "unicode", "none"}
)

// Load reads the configuration. When explicit is non-empty only that file is
// read and it must exist; otherwise the default locations are tried in order.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else {
		// Try config files in order of priority (last wins)
		for _, path := range getConfigPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("read %s: %w", path, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Sound.File = expandPath(cfg.Sound.File)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.MQTT.Broker = strings.TrimSuffix(cfg.MQTT.Broker, "/")
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tytimer/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./tytimer.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate rejects values the getters cannot repair.
func (c *Config) Validate() error {
	var errs []error
	if v := c.Sound.Volume; v != nil && (*v < 0 || *v > 1) {
		errs = append(errs, fmt.Errorf("sound.volume %.2f out of range [0, 1]", *v))
	}
	if c.Log.Level != "" && !contains(validLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q: want one of %s", c.Log.Level, strings.Join(validLevels, ", ")))
	}
	if c.UI.Icons != "" && !contains(validIcons, c.UI.Icons) {
		errs = append(errs, fmt.Errorf("ui.icons %q: want one of %s", c.UI.Icons, strings.Join(validIcons, ", ")))
	}
	for _, p := range c.UI.RestartPercentages {
		if p <= 0 {
			errs = append(errs, fmt.Errorf("ui.restart_percentages: %d is not positive", p))
		}
	}
	if c.Notify.TimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("notify.timeout_ms %d is negative", c.Notify.TimeoutMS))
	}
	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func enabled(b *bool) bool {
	return b == nil || *b
}

// SoundEnabled reports whether the playback engine should be started.
func (c *Config) SoundEnabled() bool { return enabled(c.Sound.Enabled) }

// TrayEnabled reports whether the tray icon should be registered.
func (c *Config) TrayEnabled() bool { return enabled(c.Tray.Enabled) }

// NotifyEnabled reports whether the alarm notification is used.
func (c *Config) NotifyEnabled() bool { return enabled(c.Notify.Enabled) }

// MPRISEnabled reports whether the MPRIS server should be started.
func (c *Config) MPRISEnabled() bool { return enabled(c.MPRIS.Enabled) }

// HasMQTTConfig returns true if status publishing is configured.
func (c *Config) HasMQTTConfig() bool { return c.MQTT.Broker != "" }

// GetSoundFile returns the alarm sound path with the default applied.
func (c *Config) GetSoundFile() string {
	if c.Sound.File != "" {
		return c.Sound.File
	}
	return filepath.Join(xdg.DataHome, appName, "alarm.mp3")
}

// GetVolume returns the playback volume in [0, 1].
func (c *Config) GetVolume() float64 {
	if c.Sound.Volume == nil {
		return 1.0
	}
	return min(max(*c.Sound.Volume, 0), 1)
}

// GetMQTTConfig returns the MQTT configuration with defaults applied.
func (c *Config) GetMQTTConfig() MQTTConfig {
	cfg := c.MQTT
	if cfg.Topic == "" {
		cfg.Topic = appName
	}
	if cfg.ClientID == "" {
		cfg.ClientID = fmt.Sprintf("%s-%d", appName, os.Getpid())
	}
	return cfg
}

// GetLogLevel returns the configured level name, "info" by default.
func (c *Config) GetLogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

// GetLogFile returns the log file path with the default applied.
func (c *Config) GetLogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// GetIcons returns the icon style for the terminal view.
func (c *Config) GetIcons() string {
	if c.UI.Icons == "" {
		return "unicode"
	}
	return c.UI.Icons
}

// GetRestartPercentages returns the restart shortcuts offered to the user.
func (c *Config) GetRestartPercentages() []int {
	if len(c.UI.RestartPercentages) == 0 {
		return []int{1, 5, 10}
	}
	return c.UI.RestartPercentages
}
