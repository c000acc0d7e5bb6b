package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "  "
	if got := String(); got != "dev" {
		t.Errorf("String() = %q, want dev", got)
	}
	Version = "1.2.3"
	if got := String(); got != "1.2.3" {
		t.Errorf("String() = %q", got)
	}
}

func TestColored(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	tests := []struct{ in, want string }{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1", "1.2.3-rc.1"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		Version = tt.in
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.in, got, tt.want)
		}
	}

	color.NoColor = false
	Version = "1.2.3"
	if got := Colored(); got == "1.2.3" {
		t.Errorf("Colored() ignored colour: %q", got)
	}
}
