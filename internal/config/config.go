/*
Package config manages the TOML configuration of the hashmark binary.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/iw2rmb/hashmark/document"
)

// Config holds the entire config structure.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Popup  PopupConfig  `toml:"popup"`
	Log    LogConfig    `toml:"log"`
}

// EditorConfig holds editing options.
type EditorConfig struct {
	Trigger    string `toml:"trigger"`
	EntityType string `toml:"entity_type"`
	// AutoTagOnSpace tags a typed "#word" when a space follows it.
	AutoTagOnSpace bool `toml:"auto_tag_on_space"`
	ShowLineNums   bool `toml:"show_line_nums"`
	TabWidth       int  `toml:"tab_width"`
	HistoryLimit   int  `toml:"history_limit"`
	// HighlightTyped also decorates untagged "#word" runs.
	HighlightTyped bool `toml:"highlight_typed"`
}

// PopupConfig holds suggestion popup options.
type PopupConfig struct {
	MaxVisibleRows int  `toml:"max_visible_rows"`
	MaxWidth       int  `toml:"max_width"`
	AcceptTab      bool `toml:"accept_tab"`
}

// LogConfig holds logging options. An empty File logs to stderr.
type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	Timestamp bool   `toml:"timestamp"`
	Caller    bool   `toml:"caller"`
}

// ErrInvalid reports a config value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			Trigger:        "#",
			EntityType:     document.EntityHashtag,
			AutoTagOnSpace: true,
			ShowLineNums:   true,
			TabWidth:       4,
			HistoryLimit:   1000,
		},
		Popup: PopupConfig{
			MaxVisibleRows: 8,
			MaxWidth:       40,
			AcceptTab:      true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load decodes a TOML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		log.Warnf("Ignoring unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns [UserConfigDir]/hashmark/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hashmark", "config.toml"), nil
}

// LoadWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/hashmark/config.toml
// 3. Builtin defaults
//
// It never fails; problems are logged and the next source is tried. The
// returned path is empty when the builtin defaults are used.
func LoadWithPriority(customPath string) (*Config, string) {
	if customPath != "" {
		if _, statErr := os.Stat(customPath); statErr == nil {
			cfg, err := Load(customPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return cfg, customPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customPath, statErr)
		}
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}
	if _, statErr := os.Stat(defaultPath); statErr != nil {
		log.Debugf("No config at %s, using built-in defaults", defaultPath)
		return DefaultConfig(), ""
	}
	cfg, err := Load(defaultPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.Trigger == "" || utf8.RuneCountInString(c.Editor.Trigger) != 1 {
		errs = append(errs, fmt.Errorf("%w: editor.trigger must be a single character, got %q", ErrInvalid, c.Editor.Trigger))
	} else if strings.TrimSpace(c.Editor.Trigger) == "" {
		errs = append(errs, fmt.Errorf("%w: editor.trigger must not be whitespace", ErrInvalid))
	}
	switch c.Editor.EntityType {
	case document.EntityHashtag, document.EntitySuggestion:
	default:
		errs = append(errs, fmt.Errorf("%w: editor.entity_type %q", ErrInvalid, c.Editor.EntityType))
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("%w: editor.tab_width %d not in [1,16]", ErrInvalid, c.Editor.TabWidth))
	}
	if c.Editor.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: editor.history_limit %d", ErrInvalid, c.Editor.HistoryLimit))
	}
	if c.Popup.MaxVisibleRows < 1 {
		errs = append(errs, fmt.Errorf("%w: popup.max_visible_rows %d", ErrInvalid, c.Popup.MaxVisibleRows))
	}
	if c.Popup.MaxWidth < 4 {
		errs = append(errs, fmt.Errorf("%w: popup.max_width %d", ErrInvalid, c.Popup.MaxWidth))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level))
	}
	return errors.Join(errs...)
}
