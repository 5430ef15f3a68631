// Package config loads the editor's YAML settings and merges environment
// overrides on top of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"richtext/internal/editor"
	applog "richtext/internal/log"
	"richtext/internal/markdown"
	"richtext/pkg/rtdoc"
)

const CurrentVersion = 1

// Env var names
const (
	EnvMinFontSize = "RTE_MIN_FONT_SIZE"
	EnvMaxFontSize = "RTE_MAX_FONT_SIZE"
	EnvPlaceholder = "RTE_PLACEHOLDER"
	EnvLogLevel    = "RTE_LOG_LEVEL"
	EnvLogFormat   = "RTE_LOG_FORMAT"
	EnvLogSource   = "RTE_LOG_SOURCE"
	EnvLogFile     = "RTE_LOG_FILE"
)

var (
	ErrFontLimits  = errors.New("config: min_font_size must be positive and not above max_font_size")
	ErrHeaderStyle = errors.New("config: unknown header style")
)

type Config struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Logging       LoggingConfig `yaml:"logging"`
}

type EditorConfig struct {
	DefaultFontSize float64 `yaml:"default_font_size"`
	MinFontSize     float64 `yaml:"min_font_size"`
	MaxFontSize     float64 `yaml:"max_font_size"`
	Placeholder     string  `yaml:"placeholder"`
	// HeaderStyles lists text style names for body and heading levels 1-6.
	HeaderStyles []string `yaml:"header_styles"`
	// Palette holds hex colors offered by the color pickers.
	Palette []string `yaml:"palette"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

func Defaults() Config {
	styles := make([]string, len(markdown.DefaultHeaderStyles))
	for i, s := range markdown.DefaultHeaderStyles {
		styles[i] = s.String()
	}
	palette := make([]string, len(rtdoc.Palette))
	for i, c := range rtdoc.Palette {
		palette[i] = c.Hex()
	}
	return Config{
		ConfigVersion: CurrentVersion,
		Editor: EditorConfig{
			DefaultFontSize: rtdoc.DefaultBodySize,
			MinFontSize:     editor.DefaultMinFontSize,
			MaxFontSize:     editor.DefaultMaxFontSize,
			Placeholder:     "Start typing...",
			HeaderStyles:    styles,
			Palette:         palette,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// DefaultPath returns the per-user config file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve config directory: %w", err)
	}
	return filepath.Join(dir, "richtext", "config.yaml"), nil
}

// Load reads path (if present), merges it over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (c Config) Validate() error {
	e := c.Editor
	if e.MinFontSize <= 0 || e.MaxFontSize < e.MinFontSize {
		return fmt.Errorf("%w (min %g, max %g)", ErrFontLimits, e.MinFontSize, e.MaxFontSize)
	}
	if e.DefaultFontSize < e.MinFontSize || e.DefaultFontSize > e.MaxFontSize {
		return fmt.Errorf("config: default_font_size %g outside [%g, %g]", e.DefaultFontSize, e.MinFontSize, e.MaxFontSize)
	}
	if len(e.HeaderStyles) > len(markdown.DefaultHeaderStyles) {
		return fmt.Errorf("config: %d header styles, at most %d", len(e.HeaderStyles), len(markdown.DefaultHeaderStyles))
	}
	for _, name := range e.HeaderStyles {
		if _, ok := rtdoc.ParseTextStyle(name); !ok {
			return fmt.Errorf("%w %q", ErrHeaderStyle, name)
		}
	}
	for _, hex := range e.Palette {
		if _, err := rtdoc.ParseHex(hex, 1); err != nil {
			return fmt.Errorf("config: palette: %w", err)
		}
	}
	return nil
}

// Limits returns the font size bounds.
func (e EditorConfig) Limits() (lo, hi float64) {
	return e.MinFontSize, e.MaxFontSize
}

// SessionOptions maps the editor settings onto session options.
func (e EditorConfig) SessionOptions() editor.Options {
	lo, hi := e.Limits()
	return editor.Options{MinFontSize: lo, MaxFontSize: hi, DefaultFontSize: e.DefaultFontSize, Placeholder: e.Placeholder}
}

// TypingAttributes is the body style at the configured default size.
func (e EditorConfig) TypingAttributes() rtdoc.StyleAttributes {
	a := rtdoc.DefaultAttributes()
	if e.DefaultFontSize > 0 {
		a.Font = a.Font.WithSize(e.DefaultFontSize)
	}
	return a
}

// MarkdownOptions applies the configured header styles over the defaults.
// Unknown names keep the default for their level.
func (e EditorConfig) MarkdownOptions() markdown.Options {
	opts := markdown.DefaultOptions()
	for i, name := range e.HeaderStyles {
		if i >= len(opts.HeaderStyles) {
			break
		}
		if s, ok := rtdoc.ParseTextStyle(name); ok {
			opts.HeaderStyles[i] = s
		}
	}
	return opts
}

// Colors parses the palette, skipping invalid entries.
func (e EditorConfig) Colors() []rtdoc.Color {
	out := make([]rtdoc.Color, 0, len(e.Palette))
	for _, hex := range e.Palette {
		if c, err := rtdoc.ParseHex(hex, 1); err == nil {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append(out, rtdoc.Palette...)
	}
	return out
}

func (l LoggingConfig) Options() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}

func mergeInto(dst *Config, src *Config) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Editor.DefaultFontSize != 0 {
		dst.Editor.DefaultFontSize = src.Editor.DefaultFontSize
	}
	if src.Editor.MinFontSize != 0 {
		dst.Editor.MinFontSize = src.Editor.MinFontSize
	}
	if src.Editor.MaxFontSize != 0 {
		dst.Editor.MaxFontSize = src.Editor.MaxFontSize
	}
	if strings.TrimSpace(src.Editor.Placeholder) != "" {
		dst.Editor.Placeholder = src.Editor.Placeholder
	}
	if len(src.Editor.HeaderStyles) > 0 {
		dst.Editor.HeaderStyles = append([]string(nil), src.Editor.HeaderStyles...)
	}
	if len(src.Editor.Palette) > 0 {
		dst.Editor.Palette = append([]string(nil), src.Editor.Palette...)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvMinFontSize)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Editor.MinFontSize = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxFontSize)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Editor.MaxFontSize = f
		}
	}
	if v := os.Getenv(EnvPlaceholder); v != "" {
		cfg.Editor.Placeholder = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
