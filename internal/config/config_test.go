package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zj-status/internal/tui/state"
	"zj-status/internal/tui/widgets/statusbar"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadReadsYAML(t *testing.T) {
	path := writeFile(t, `
variant: compact
brand: Term
show_counter: false
show_actions: true
trigger_key: ctrl+r
command: ["make", "test"]
color_profile: ansi256
palette:
  green: "#00ff00"
  orange: "214"
log_level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "compact", cfg.Variant)
	assert.Equal(t, "Term", cfg.Brand)
	assert.False(t, cfg.ShowCounter)
	assert.True(t, cfg.ShowActions)
	assert.Equal(t, "ctrl+r", cfg.TriggerKey)
	assert.Equal(t, []string{"make", "test"}, cfg.Command)
	assert.Equal(t, "ansi256", cfg.ColorProfile)
	assert.Equal(t, "debug", cfg.LogLevel)

	pal, err := cfg.InitialPalette()
	require.NoError(t, err)
	assert.Equal(t, state.RGBColor(0, 255, 0), pal[state.RoleGreen])
	assert.Equal(t, state.Fixed(214), pal[state.RoleOrange])
	assert.Equal(t, state.Fixed(1), pal[state.RoleRed])
}

func TestLoadDefaultsWhenFileOmitsKeys(t *testing.T) {
	cfg, err := Load(writeFile(t, "brand: X\n"), nil)
	require.NoError(t, err)

	want := Default()
	want.Brand = "X"
	want.Command = cfg.Command
	want.Palette = cfg.Palette
	assert.Equal(t, want, cfg)
	assert.Empty(t, cfg.Command)
	assert.Empty(t, cfg.Palette)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("ZJ_STATUS_VARIANT", "compact")
	cfg, err := Load(writeFile(t, "variant: full\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "compact", cfg.Variant)
}

func TestLoadChangedFlagWins(t *testing.T) {
	t.Setenv("ZJ_STATUS_VARIANT", "full")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("variant", "full", "")
	fs.String("trigger-key", "t", "")
	require.NoError(t, fs.Parse([]string{"--variant", "compact"}))

	cfg, err := Load(writeFile(t, "trigger_key: x\n"), fs)
	require.NoError(t, err)
	assert.Equal(t, "compact", cfg.Variant)
	assert.Equal(t, "x", cfg.TriggerKey, "unchanged flag must not shadow the file")
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{name: "variant", body: "variant: wide\n", field: "variant"},
		{name: "profile", body: "color_profile: sixteen\n", field: "color_profile"},
		{name: "trigger", body: "trigger_key: \"\"\n", field: "trigger_key"},
		{name: "palette color", body: "palette:\n  green: \"#zzzzzz\"\n", field: "palette[green]"},
		{name: "palette role", body: "palette:\n  purple: \"1\"\n", field: "palette[purple]"},
		{name: "log level", body: "log_level: loud\n", field: "log_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.body), nil)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Contains(t, ve.Error(), "validation error: ")
		})
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	written, err := WriteDefault(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	_, err = WriteDefault(path, false)
	assert.ErrorContains(t, err, "already exists")
	_, err = WriteDefault(path, true)
	require.NoError(t, err)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Variant, cfg.Variant)
	assert.Equal(t, Default().TriggerKey, cfg.TriggerKey)
	assert.Empty(t, cfg.Command)
}

func TestStatusBarOptions(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	cfg := Default()
	cfg.Variant = "compact"
	cfg.ColorProfile = "ansi"

	opts, err := cfg.StatusBarOptions()
	require.NoError(t, err)
	assert.Equal(t, statusbar.Compact, opts.Variant)
	assert.Equal(t, termenv.ANSI, opts.Profile)

	cfg.NoColor = true
	opts, err = cfg.StatusBarOptions()
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, opts.Profile)
}

func TestStatusBarOptionsHonoursNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	opts, err := Default().StatusBarOptions()
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, opts.Profile)
}

func TestPluginOptionsCopiesCommand(t *testing.T) {
	cfg := Default()
	cfg.Command = []string{"echo", "hi"}
	cfg.Palette = map[string]string{"green": "#00ff00"}
	opts, err := cfg.PluginOptions()
	require.NoError(t, err)
	opts.Command[0] = "rm"
	assert.Equal(t, "echo", cfg.Command[0])
	assert.Equal(t, state.RGBColor(0, 255, 0), opts.Palette[state.RoleGreen])
	assert.Equal(t, state.Fixed(1), opts.Palette[state.RoleRed])
}
