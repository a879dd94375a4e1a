package config

import (
	"os"
	"path/filepath"

	"github.com/muesli/termenv"

	"zj-status/internal/plugin"
	"zj-status/internal/tui/state"
	"zj-status/internal/tui/util"
	"zj-status/internal/tui/widgets/statusbar"
)

// EnvPrefix namespaces environment overrides, e.g. ZJ_STATUS_VARIANT.
const EnvPrefix = "ZJ_STATUS"

// Config holds the options a host needs to build the status line.
type Config struct {
	Variant      string            `mapstructure:"variant" yaml:"variant" validate:"oneof=full compact"`
	Brand        string            `mapstructure:"brand" yaml:"brand" validate:"max=32"`
	ShowCounter  bool              `mapstructure:"show_counter" yaml:"show_counter"`
	ShowActions  bool              `mapstructure:"show_actions" yaml:"show_actions"`
	TriggerKey   string            `mapstructure:"trigger_key" yaml:"trigger_key" validate:"required"`
	Command      []string          `mapstructure:"command" yaml:"command"`
	ColorProfile string            `mapstructure:"color_profile" yaml:"color_profile" validate:"oneof=truecolor ansi256 ansi ascii"`
	NoColor      bool              `mapstructure:"no_color" yaml:"no_color"`
	Palette      map[string]string `mapstructure:"palette" yaml:"palette,omitempty" validate:"dive,keys,role,endkeys,color"`
	LogLevel     string            `mapstructure:"log_level" yaml:"log_level" validate:"oneof=trace debug info warn error disabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Variant:      string(statusbar.Full),
		Brand:        statusbar.DefaultBrand,
		ShowCounter:  true,
		ShowActions:  false,
		TriggerKey:   plugin.DefaultTriggerKey,
		Command:      []string{},
		ColorProfile: "truecolor",
		LogLevel:     "info",
	}
}

// DefaultPath returns the per-user config location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "zj-status", "config.yaml"), nil
}

// StatusBarOptions maps the config onto bar options. NO_COLOR in the
// environment forces the plain profile just like no_color does.
func (c Config) StatusBarOptions() (statusbar.Options, error) {
	profile, err := util.ParseProfile(c.ColorProfile)
	if err != nil {
		return statusbar.Options{}, err
	}
	if util.NoColor(c.NoColor) {
		profile = termenv.Ascii
	}
	return statusbar.Options{
		Variant:     statusbar.Variant(c.Variant),
		Brand:       c.Brand,
		ShowCounter: c.ShowCounter,
		ShowActions: c.ShowActions,
		Profile:     profile,
	}, nil
}

// PluginOptions maps the config onto controller options.
func (c Config) PluginOptions() (plugin.Options, error) {
	pal, err := c.InitialPalette()
	if err != nil {
		return plugin.Options{}, err
	}
	return plugin.Options{
		TriggerKey:  c.TriggerKey,
		Command:     append([]string(nil), c.Command...),
		ShowActions: c.ShowActions,
		Palette:     pal,
	}, nil
}

// InitialPalette is the default palette with the configured overrides on
// top. Hosts use it until they supply their own.
func (c Config) InitialPalette() (state.Palette, error) {
	over, err := state.ParsePalette(c.Palette)
	if err != nil {
		return nil, err
	}
	return state.DefaultPalette().Merge(over), nil
}
