package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"richtext/pkg/rtdoc"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvMinFontSize, EnvMaxFontSize, EnvPlaceholder, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Defaults(), cfg)
	lo, hi := cfg.Editor.Limits()
	require.Equal(t, 8.0, lo)
	require.Equal(t, 80.0, hi)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Defaults()
	cfg.Editor.MinFontSize = 10
	cfg.Editor.MaxFontSize = 60
	cfg.Editor.Placeholder = "Notes"
	cfg.Logging.Level = "debug"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestPartialFileMergesOverDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  max_font_size: 40\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 40.0, cfg.Editor.MaxFontSize)
	require.Equal(t, 8.0, cfg.Editor.MinFontSize)
	require.Equal(t, Defaults().Editor.Placeholder, cfg.Editor.Placeholder)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMinFontSize, "12")
	t.Setenv(EnvMaxFontSize, "48")
	t.Setenv(EnvPlaceholder, "Write here")
	t.Setenv(EnvLogSource, "yes")
	t.Setenv(EnvLogFormat, "JSON")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 12.0, cfg.Editor.MinFontSize)
	require.Equal(t, 48.0, cfg.Editor.MaxFontSize)
	require.Equal(t, "Write here", cfg.Editor.Placeholder)
	require.True(t, cfg.Logging.Source)
	require.Equal(t, "json", cfg.Logging.Format)

	opts := cfg.Editor.SessionOptions()
	require.Equal(t, 12.0, opts.MinFontSize)
	require.Equal(t, 48.0, opts.MaxFontSize)
	require.Equal(t, "Write here", opts.Placeholder)
}

func TestMalformedYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: [unclosed"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Editor.MinFontSize = 90
	require.ErrorIs(t, bad.Validate(), ErrFontLimits)

	bad = cfg
	bad.Editor.HeaderStyles = []string{"body", "poster"}
	require.ErrorIs(t, bad.Validate(), ErrHeaderStyle)

	bad = cfg
	bad.Editor.Palette = []string{"#zzzzzz"}
	require.Error(t, bad.Validate())

	bad = cfg
	bad.Editor.DefaultFontSize = 4
	require.Error(t, bad.Validate())
}

func TestEditorDerivedOptions(t *testing.T) {
	e := Defaults().Editor
	e.HeaderStyles = []string{"body", "title3"}
	e.Palette = []string{"#ff0000", "00ff00"}
	e.DefaultFontSize = 20

	md := e.MarkdownOptions()
	require.Equal(t, rtdoc.TextStyleTitle3, md.HeaderStyles[1])
	require.Equal(t, rtdoc.TextStyleTitle, md.HeaderStyles[2])

	require.Equal(t, []rtdoc.Color{0xFF0000FF, 0x00FF00FF}, e.Colors())
	require.Equal(t, 20.0, e.TypingAttributes().Font.Size)

	e.Palette = nil
	require.Equal(t, rtdoc.Palette, e.Colors())
}
