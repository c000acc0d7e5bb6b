package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"morph/internal/compiler"
	"morph/internal/config"
	"morph/internal/fsys"
	"morph/internal/trace"
	"morph/internal/ui"
)

// cleanups run once after the command, whether it failed or not.
var cleanups []func()

func runCleanup() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// loadedConfig is filled by setupRun.
var loadedConfig *config.Config

// setupRun loads morph.toml, picks the colour mode and starts tracing.
func setupRun(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	path, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		loadedConfig, err = config.LoadFile(path)
	} else {
		loadedConfig, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	mode, err := root.PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	on, err := colorEnabled(mode, os.Stdout)
	if err != nil {
		return err
	}
	color.NoColor = !on

	cleanup, err := setupTracing(cmd, loadedConfig)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)
	return nil
}

func colorEnabled(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(mode) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color %q (expected: auto|on|off)", mode)
	}
}

func styles() ui.Styles {
	return ui.NewStyles(!color.NoColor)
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil || n < 0 {
		return 20
	}
	return n
}

// newProject opens a project on the real file system rooted at dir. The
// manipulation settings come from morph.toml.
func newProject(cmd *cobra.Command, dir string, opts compiler.Options) (*compiler.Project, error) {
	host, err := fsys.NewOSHost(dir)
	if err != nil {
		return nil, err
	}
	opts.Host = host
	opts.Settings = loadedConfig.Settings()
	opts.Tracer = trace.FromContext(cmd.Context())
	return compiler.NewProject(opts), nil
}
