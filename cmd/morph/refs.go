package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"morph/internal/ast"
	"morph/internal/compiler"
	"morph/internal/ui"
)

var refsCmd = &cobra.Command{
	Use:   "refs [flags] file.ts name",
	Short: "List the references of a declaration",
	Long: `refs finds the first declaration called name in file.ts and lists every
reference to it. The other files of the project, as given by [project].include
in morph.toml or --include, are searched too.`,
	Args: cobra.ExactArgs(2),
	RunE: runRefs,
}

func init() {
	refsCmd.Flags().StringSlice("include", nil, "globs of the files to search (default: [project].include when morph.toml exists)")
}

func runRefs(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]
	ctx := cmd.Context()
	include, err := cmd.Flags().GetStringSlice("include")
	if err != nil {
		return fmt.Errorf("failed to get include flag: %w", err)
	}

	p, err := newProject(cmd, "", compiler.Options{})
	if err != nil {
		return err
	}
	sf, err := p.AddSourceFile(ctx, path)
	if err != nil {
		return err
	}
	if len(include) == 0 && loadedConfig.Path != "" {
		for _, g := range loadedConfig.Project.Include {
			include = append(include, filepath.Join(loadedConfig.Root, g))
		}
	}
	if len(include) > 0 {
		if _, err := p.AddSourceFiles(ctx, include...); err != nil {
			return err
		}
	}

	ls := p.LanguageService()
	decl, err := findDeclaration(ctx, ls, sf, name)
	if err != nil {
		return err
	}
	found, err := ls.FindReferences(ctx, decl)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("%s: %s does not resolve to a symbol", path, name)
	}

	out := cmd.OutOrStdout()
	wd, _ := os.Getwd()
	for _, rs := range found {
		def := rs.Definition()
		fmt.Fprintln(out, infoColor.Sprint(def.Display))
		tb := ui.Table{Headers: []string{"location", "access", "code"}}
		for _, r := range rs.References() {
			if r.SourceFile == nil {
				continue
			}
			lc := r.SourceFile.Position(r.TextSpan.Start)
			loc := r.SourceFile.FilePath()
			if rel, err := filepath.Rel(wd, loc); err == nil && !strings.HasPrefix(rel, "..") {
				loc = rel
			}
			access := "read"
			switch {
			case r.IsDefinition:
				access = "definition"
			case r.IsWriteAccess:
				access = "write"
			}
			tb.Append(fmt.Sprintf("%s:%d:%d", loc, lc.Line, lc.Col), access, lineAt(r.SourceFile, r.TextSpan.Start))
		}
		if err := tb.Render(out, styles()); err != nil {
			return err
		}
	}
	return nil
}

// findDeclaration returns the first identifier named name that declares
// its symbol.
func findDeclaration(ctx context.Context, ls *compiler.LanguageService, sf *compiler.SourceFile, name string) (compiler.Wrapper, error) {
	ids, err := sf.DescendantsOfKind(ast.KindIdentifier)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		text, err := id.Base().Text()
		if err != nil {
			return nil, err
		}
		if text != name {
			continue
		}
		defs, err := ls.Definitions(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, d := range defs {
			if d.Node == id {
				return id, nil
			}
		}
	}
	return nil, fmt.Errorf("%s: no declaration named %s", sf.FilePath(), name)
}

// lineAt returns the trimmed source line holding off, cut to 60 columns.
func lineAt(sf *compiler.SourceFile, off uint32) string {
	text := sf.Document().Text()
	o := min(int(off), len(text))
	start := strings.LastIndexByte(text[:o], '\n') + 1
	end := strings.IndexByte(text[o:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += o
	}
	return runewidth.Truncate(strings.TrimSpace(text[start:end]), 60, "…")
}
