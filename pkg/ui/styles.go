package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styleSubtitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	styleWarn      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleSuccess   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// Title prints a bold heading.
func Title(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf(format, args...)))
}

// Info prints a dimmed informational line.
func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSubtitle.Render(fmt.Sprintf(format, args...)))
}

// Step prints a progress line.
func Step(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "⏳ "+fmt.Sprintf(format, args...))
}

// Success prints a completed step.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render("✅ "+fmt.Sprintf(format, args...)))
}

// Warn prints a non-fatal problem. Verbs use it for unmet preconditions.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleWarn.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

// Error prints a failure.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleError.Render(fmt.Sprintf(format, args...)))
}

// Highlight renders s in the accent color.
func Highlight(s string) string {
	return styleHighlight.Render(s)
}
