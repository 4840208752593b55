package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"gamifylife/internal/engine"
	"gamifylife/internal/storage"
)

const (
	// ConfigPathEnv points at an explicit config file.
	ConfigPathEnv = "GL_CONFIG"

	LogLevelEnv     = "GL_LOG_LEVEL"
	PollIntervalEnv = "GL_POLL_INTERVAL"
	TimezoneEnv     = "GL_TIMEZONE"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Game    GameConfig    `toml:"game"`
	Sweep   SweepConfig   `toml:"sweep"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

type StorageConfig struct {
	Path string `toml:"path"` // empty means storage.ResolveDBPath
	Key  string `toml:"key"`
}

type GameConfig struct {
	LevelThreshold int `toml:"level_threshold"`
}

type SweepConfig struct {
	PollInterval string `toml:"poll_interval"`
	Timezone     string `toml:"timezone"` // IANA name; empty means the system zone
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console | json
}

type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Key: storage.DefaultStateKey},
		Game:    GameConfig{LevelThreshold: engine.DefaultLevelThreshold},
		Sweep:   SweepConfig{PollInterval: "10s"},
		Log:     LogConfig{Level: "info", Format: "console"},
	}
}

// ValidationError names the offending key.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// DefaultPath returns ~/.gamifylife/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".gamifylife", "config.toml"), nil
}

// Load reads .env (if present), then the TOML file at path (or $GL_CONFIG,
// or DefaultPath), then applies env overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(storage.DBPathEnv); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(LogLevelEnv); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(PollIntervalEnv); v != "" {
		c.Sweep.PollInterval = v
	}
	if v := os.Getenv(TimezoneEnv); v != "" {
		c.Sweep.Timezone = v
	}
}

func (c Config) Validate() error {
	if c.Game.LevelThreshold <= 0 {
		return ValidationError{Field: "game.level_threshold", Reason: "must be positive, got " + strconv.Itoa(c.Game.LevelThreshold)}
	}
	d, err := time.ParseDuration(c.Sweep.PollInterval)
	if err != nil {
		return ValidationError{Field: "sweep.poll_interval", Reason: err.Error()}
	}
	if d < time.Second {
		return ValidationError{Field: "sweep.poll_interval", Reason: "must be at least 1s"}
	}
	if _, err := c.Location(); err != nil {
		return ValidationError{Field: "sweep.timezone", Reason: err.Error()}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ValidationError{Field: "log.level", Reason: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return ValidationError{Field: "log.format", Reason: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	return nil
}

// PollInterval returns the parsed expiration sweep interval.
func (c Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Sweep.PollInterval)
	if err != nil || d < time.Second {
		return 10 * time.Second
	}
	return d
}

// Location resolves the civil-day timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Sweep.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Sweep.Timezone)
}

// DBPath returns the configured path or the default resolution.
func (c Config) DBPath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	return storage.ResolveDBPath()
}
