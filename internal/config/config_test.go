package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[manipulation]\nindent = \"  \"\n")
	deep := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := Find(deep)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", path, ok, err)
	}
	if path != filepath.Join(root, FileName) {
		t.Errorf("path = %q", path)
	}

	cfg, err := Load(deep)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != root {
		t.Errorf("root = %q, want %q", cfg.Root, root)
	}
	if got := cfg.Settings().Indent; got != "  " {
		t.Errorf("indent = %q", got)
	}
	// Keys the file leaves out keep their defaults.
	if cfg.Trace.Mode != "stream" || len(cfg.Project.Include) != 1 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Errorf("path = %q, want none", cfg.Path)
	}
	if s := cfg.Settings(); s.Indent != "    " || s.Newline != "" {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"full", "[manipulation]\nindent = \"\\t\"\nnewline = \"crlf\"\nquote = \"single\"\n[trace]\nlevel = \"detail\"\nmode = \"ring\"\n[project]\ninclude = [\"src/**/*.ts\"]\n", ""},
		{"bad toml", "[manipulation\n", "failed to parse TOML"},
		{"unknown key", "[manipulation]\ntabs = 2\n", "unknown key"},
		{"bad newline", "[manipulation]\nnewline = \"cr\"\n", "newline"},
		{"bad indent", "[manipulation]\nindent = \"xx\"\n", "indent"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
		{"empty include", "[project]\ninclude = []\n", "include is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.text)
			cfg, err := LoadFile(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			s := cfg.Settings()
			if s.Indent != "\t" || s.Newline != "\r\n" {
				t.Errorf("settings = %+v", s)
			}
			if cfg.QuoteChar() != '\'' {
				t.Errorf("quote = %q", cfg.QuoteChar())
			}
			if cfg.Project.Include[0] != "src/**/*.ts" {
				t.Errorf("include = %v", cfg.Project.Include)
			}
		})
	}
}
