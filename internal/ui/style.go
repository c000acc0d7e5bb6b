// Package ui renders syntax trees and tables for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles colours the parts of rendered output. The zero value prints plain
// text.
type Styles struct {
	color  bool
	Kind   lipgloss.Style
	Token  lipgloss.Style
	Span   lipgloss.Style
	Header lipgloss.Style
	Guide  lipgloss.Style
	Error  lipgloss.Style
}

func NewStyles(color bool) Styles {
	return Styles{
		color:  color,
		Kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Token:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Span:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Header: lipgloss.NewStyle().Bold(true).Underline(true),
		Guide:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// paint applies st to s when colour is on. Plain output bypasses lipgloss
// so tabs and spacing in s are left alone.
func (s Styles) paint(st lipgloss.Style, text string) string {
	if !s.color || text == "" {
		return text
	}
	return st.Render(text)
}
