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
	"github.com/sandeepkv93/animtodo/internal/storage"
	"github.com/sandeepkv93/animtodo/internal/theme"
)

const EnvConfigPath = "ANIMTODO_CONFIG"

type RuntimeConfig struct {
	Backend              storage.Backend `toml:"backend"`
	DataDir              string          `toml:"data_dir"`
	TasksKey             string          `toml:"tasks_key"`
	ThemeKey             string          `toml:"theme_key"`
	DefaultTheme         theme.Name      `toml:"default_theme"`
	ToastSeconds         int             `toml:"toast_seconds"`
	DesktopNotifications bool            `toml:"desktop_notifications"`
	LogLevel             string          `toml:"log_level"`
	LogFile              string          `toml:"log_file"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:              storage.BackendFile,
		DataDir:              ".animtodo",
		TasksKey:             "animatedTasks",
		ThemeKey:             "theme",
		DefaultTheme:         theme.System,
		ToastSeconds:         3,
		DesktopNotifications: false,
		LogLevel:             "info",
	}
}

func (c RuntimeConfig) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// LogPath is LogFile, or animtodo.log inside DataDir when unset.
func (c RuntimeConfig) LogPath() string {
	if strings.TrimSpace(c.LogFile) != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "animtodo.log")
}

func (c RuntimeConfig) Validate() error {
	if !c.Backend.IsValid() {
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is required")
	}
	if strings.TrimSpace(c.TasksKey) == "" || strings.TrimSpace(c.ThemeKey) == "" {
		return errors.New("config: slot keys are required")
	}
	if c.TasksKey == c.ThemeKey {
		return errors.New("config: tasks_key and theme_key must differ")
	}
	if !c.DefaultTheme.IsValid() {
		return fmt.Errorf("config: unknown default_theme %q", c.DefaultTheme)
	}
	if c.ToastSeconds <= 0 {
		return errors.New("config: toast_seconds must be positive")
	}
	return nil
}

// LoadFile overlays a TOML file on base. A missing file is not an error.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	if _, err := os.Stat(trimmed); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return base, fmt.Errorf("config: stat %s: %w", trimmed, err)
	}
	if _, err := toml.DecodeFile(trimmed, &cfg); err != nil {
		return base, fmt.Errorf("config: decode %s: %w", trimmed, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("config: %s: %w", trimmed, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := getEnvString("ANIMTODO_BACKEND"); v != "" {
		if b := storage.Backend(strings.ToLower(v)); b.IsValid() {
			cfg.Backend = b
		}
	}
	if v := getEnvString("ANIMTODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := getEnvString("ANIMTODO_TASKS_KEY"); v != "" {
		cfg.TasksKey = v
	}
	if v := getEnvString("ANIMTODO_THEME_KEY"); v != "" {
		cfg.ThemeKey = v
	}
	if v := getEnvString("ANIMTODO_THEME"); v != "" {
		if n, err := theme.Parse(v); err == nil {
			cfg.DefaultTheme = n
		}
	}
	if v, ok := getEnvInt("ANIMTODO_TOAST_SECONDS"); ok && v > 0 {
		cfg.ToastSeconds = v
	}
	if v, ok := getEnvBool("ANIMTODO_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := getEnvString("ANIMTODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := getEnvString("ANIMTODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// Load applies defaults, then the TOML file at path (or $ANIMTODO_CONFIG),
// then environment overrides.
func Load(path string) (RuntimeConfig, error) {
	if strings.TrimSpace(path) == "" {
		path = getEnvString(EnvConfigPath)
	}
	cfg, err := LoadFile(path, DefaultRuntimeConfig())
	if err != nil {
		return DefaultRuntimeConfig(), err
	}
	cfg = RuntimeConfigFromEnv(cfg)
	return cfg, cfg.Validate()
}

func getEnvString(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func getEnvInt(name string) (int, bool) {
	raw := getEnvString(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.ToLower(getEnvString(name))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
