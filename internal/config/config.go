// Package config resolves devconsole settings from flags, environment,
// .env files and an optional devconsole.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. DEVCONSOLE_PROMPT.
const EnvPrefix = "DEVCONSOLE"

// Keys understood by Load. Flag names match them.
const (
	KeyLogLevel  = "log-level"
	KeyLogFile   = "log-file"
	KeyTestMode  = "test-mode"
	KeyBindsFile = "binds-file"
	KeyTheme     = "theme"
	KeyPrompt    = "prompt"
	KeyWidth     = "width"
)

// Config is the resolved configuration.
type Config struct {
	LogLevel  string
	LogFile   string
	TestMode  bool
	BindsFile string
	Theme     string
	Prompt    string
	Width     int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyBindsFile, "")
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyPrompt, "] ")
	v.SetDefault(KeyWidth, 0)
}

// Load resolves the configuration. configFile may name an explicit file;
// otherwise devconsole.yaml is looked up in the working directory and the
// user config directory. A missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if !v.GetBool(KeyTestMode) {
		if err := LoadDotEnv(dotEnvDirs()...); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("devconsole")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := UserConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:  v.GetString(KeyLogLevel),
		LogFile:   v.GetString(KeyLogFile),
		TestMode:  v.GetBool(KeyTestMode),
		BindsFile: v.GetString(KeyBindsFile),
		Theme:     v.GetString(KeyTheme),
		Prompt:    v.GetString(KeyPrompt),
		Width:     v.GetInt(KeyWidth),
	}

	// Test mode never touches the user's bind file.
	if cfg.BindsFile == "" && !cfg.TestMode {
		if dir, err := UserConfigDir(); err == nil {
			cfg.BindsFile = filepath.Join(dir, "binds.yaml")
		}
	}
	if cfg.Width < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", KeyWidth, cfg.Width)
	}
	return cfg, nil
}

// LoadDotEnv reads .env from each directory and exports variables that are
// not already set. Missing files are skipped.
func LoadDotEnv(dirs ...string) error {
	for _, dir := range dirs {
		envPath := filepath.Join(dir, ".env")
		data, err := os.ReadFile(envPath)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read .env file %s: %w", envPath, err)
		}

		envMap, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return fmt.Errorf("failed to parse .env file %s: %w", envPath, err)
		}
		for key, value := range envMap {
			if _, set := os.LookupEnv(key); set {
				continue
			}
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("export %s: %w", key, err)
			}
		}
	}
	return nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/devconsole, falling back to ~/.config/devconsole.
func UserConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "devconsole"), nil
}

// dotEnvDirs lists the working directory before the user config directory so
// local values win.
func dotEnvDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	return dirs
}
