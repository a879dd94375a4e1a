package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"variant":       "variant",
	"brand":         "brand",
	"trigger_key":   "trigger-key",
	"color_profile": "color-profile",
	"no_color":      "no-color",
	"log_level":     "log-level",
}

// Load reads the YAML file at path, then environment variables, then any
// changed flags in fs, on top of Default. An empty path falls back to
// DefaultPath, which may be missing.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	def := Default()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("variant", def.Variant)
	v.SetDefault("brand", def.Brand)
	v.SetDefault("show_counter", def.ShowCounter)
	v.SetDefault("show_actions", def.ShowActions)
	v.SetDefault("trigger_key", def.TriggerKey)
	v.SetDefault("command", def.Command)
	v.SetDefault("color_profile", def.ColorProfile)
	v.SetDefault("no_color", def.NoColor)
	v.SetDefault("palette", map[string]string{})
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		case errors.Is(statErr, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, statErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Variant = strings.ToLower(strings.TrimSpace(c.Variant))
	c.ColorProfile = strings.ToLower(strings.TrimSpace(c.ColorProfile))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.ColorProfile == "" {
		c.ColorProfile = "truecolor"
	}
}

// WriteDefault writes the default config to path, refusing to replace an
// existing file unless overwrite is set. It returns the path written.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
