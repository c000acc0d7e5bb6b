package main

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"

	"morph/internal/compiler"
)

var docsCmd = &cobra.Command{
	Use:   "docs [flags] file.ts",
	Short: "Render the doc comments of top-level declarations as HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocs,
}

func init() {
	docsCmd.Flags().StringP("output", "o", "", "write the HTML to this file instead of stdout")
	docsCmd.Flags().Bool("all", false, "include declarations without a doc comment")
}

type documented interface {
	compiler.Wrapper
	DocumentationComment() (string, error)
	Name() (string, error)
}

func runDocs(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	p, err := newProject(cmd, "", compiler.Options{})
	if err != nil {
		return err
	}
	sf, err := p.AddSourceFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderDocs(&buf, sf, all); err != nil {
		return err
	}
	if output == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	return os.WriteFile(output, buf.Bytes(), 0o644)
}

func renderDocs(w io.Writer, sf *compiler.SourceFile, all bool) error {
	stmts, err := sf.Statements()
	if err != nil {
		return err
	}
	md := goldmark.New()
	fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(sf.BaseName()))
	for _, st := range stmts {
		d, ok := st.(documented)
		if !ok {
			continue
		}
		comment, err := d.DocumentationComment()
		if err != nil {
			return err
		}
		if comment == "" && !all {
			continue
		}
		name, err := d.Name()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "<h2><code>%s</code> %s</h2>\n", html.EscapeString(kindLabel(st)), html.EscapeString(name))
		if comment == "" {
			continue
		}
		if err := md.Convert([]byte(comment), w); err != nil {
			return fmt.Errorf("render doc of %s: %w", name, err)
		}
	}
	return nil
}

func kindLabel(w compiler.Wrapper) string {
	switch w.(type) {
	case *compiler.ClassDeclaration:
		return "class"
	case *compiler.InterfaceDeclaration:
		return "interface"
	case *compiler.FunctionDeclaration:
		return "function"
	case *compiler.EnumDeclaration:
		return "enum"
	case *compiler.NamespaceDeclaration:
		return "namespace"
	case *compiler.TypeAliasDeclaration:
		return "type"
	}
	return w.Base().Kind().String()
}
