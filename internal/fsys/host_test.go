package fsys

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern, name string
		want          bool
	}{
		{"*.ts", "a.ts", true},
		{"*.ts", "src/a.ts", false},
		{"src/*.ts", "src/a.ts", true},
		{"**/*.ts", "a.ts", true},
		{"**/*.ts", "src/deep/a.ts", true},
		{"src/**", "src/deep/a.ts", true},
		{"src/**/a.ts", "src/a.ts", true},
		{"src/**/a.ts", "lib/a.ts", false},
		{"*.ts", "a.tsx", false},
	}
	for _, tt := range tests {
		if got := Match(tt.pattern, tt.name); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestMemoryHost(t *testing.T) {
	ctx := context.Background()
	h := NewMemoryHost()
	if err := h.WriteFile(ctx, "src/a.ts", []byte("let a;")); err != nil {
		t.Fatal(err)
	}
	if err := h.WriteFile(ctx, "/src/lib/b.ts", []byte("let b;")); err != nil {
		t.Fatal(err)
	}
	if err := h.WriteFile(ctx, "notes.md", []byte("#")); err != nil {
		t.Fatal(err)
	}
	if !h.DirectoryExists(ctx, "src/lib") || !h.FileExists(ctx, "/src/a.ts") {
		t.Fatalf("written paths are missing")
	}
	data, err := h.ReadFile(ctx, "/src/a.ts")
	if err != nil || string(data) != "let a;" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	if _, err := h.ReadFile(ctx, "missing.ts"); !IsNotExist(err) {
		t.Fatalf("missing file error = %v", err)
	}
	got, err := h.Glob(ctx, "**/*.ts")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/src/a.ts", "/src/lib/b.ts"}
	if !slices.Equal(got, want) {
		t.Fatalf("Glob = %v, want %v", got, want)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := NewMemoryHost()
	if err := h.WriteFile(ctx, "a.ts", nil); err == nil {
		t.Fatalf("write with a canceled context succeeded")
	}
}

func TestOSHostRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	h, err := NewOSHost(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.WriteFile(ctx, "src/a.ts", []byte("let a;")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "src", "a.ts"))
	if err != nil || string(data) != "let a;" {
		t.Fatalf("file on disk = %q, %v", data, err)
	}
	got, err := h.Glob(ctx, "src/*.ts")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != filepath.Join(dir, "src", "a.ts") {
		t.Fatalf("Glob = %v", got)
	}
	entries, _ := os.ReadDir(filepath.Join(dir, "src"))
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}
