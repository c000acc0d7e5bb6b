// Package config loads morph.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"morph/internal/manip"
	"morph/internal/trace"
)

// FileName is the name Find looks for.
const FileName = "morph.toml"

// Config is the decoded morph.toml together with where it was found.
type Config struct {
	Path string // empty when no file was found
	Root string

	Manipulation Manipulation `toml:"manipulation"`
	Trace        Trace        `toml:"trace"`
	Project      Project      `toml:"project"`
}

type Manipulation struct {
	Indent  string `toml:"indent"`
	Newline string `toml:"newline"` // "lf" or "crlf"
	Quote   string `toml:"quote"`   // "double" or "single"
}

type Trace struct {
	Level string `toml:"level"`
	Mode  string `toml:"mode"`
}

type Project struct {
	Include []string `toml:"include"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Manipulation: Manipulation{Indent: "    ", Quote: "double"},
		Trace:        Trace{Level: "off", Mode: "stream"},
		Project:      Project{Include: []string{"**/*.ts"}},
	}
}

// Find walks up from startDir looking for morph.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the nearest morph.toml. Without one it returns
// Default.
func Load(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile decodes path. Keys the file leaves out keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("project", "include") && len(cfg.Project.Include) == 0 {
		return nil, fmt.Errorf("%s: [project].include is empty", path)
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Manipulation.Newline) {
	case "", "lf", "crlf":
	default:
		return fmt.Errorf("[manipulation].newline: %q (expected: lf|crlf)", c.Manipulation.Newline)
	}
	switch strings.ToLower(c.Manipulation.Quote) {
	case "", "double", "single":
	default:
		return fmt.Errorf("[manipulation].quote: %q (expected: double|single)", c.Manipulation.Quote)
	}
	if strings.Trim(c.Manipulation.Indent, " \t") != "" {
		return fmt.Errorf("[manipulation].indent must be spaces or tabs")
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	return nil
}

// Settings converts the manipulation section for manip.
func (c *Config) Settings() manip.Settings {
	s := manip.DefaultSettings()
	if c.Manipulation.Indent != "" {
		s.Indent = c.Manipulation.Indent
	}
	switch strings.ToLower(c.Manipulation.Newline) {
	case "lf":
		s.Newline = "\n"
	case "crlf":
		s.Newline = "\r\n"
	}
	s.Quote = c.QuoteChar()
	return s
}

// QuoteChar is the quote used for string literals morph writes.
func (c *Config) QuoteChar() byte {
	if strings.EqualFold(c.Manipulation.Quote, "single") {
		return '\''
	}
	return '"'
}
