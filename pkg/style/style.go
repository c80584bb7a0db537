// Package style renders the short operator-facing status lines. Styling
// is dropped when stdout is not a terminal.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headerStyle  = lipgloss.NewStyle().Bold(true)

	stdoutIsTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
)

// Warning renders an operator warning line.
func Warning(msg string) string {
	if !stdoutIsTTY {
		return msg
	}
	return warningStyle.Render(msg)
}

// Success renders a success line.
func Success(msg string) string {
	if !stdoutIsTTY {
		return msg
	}
	return successStyle.Render(msg)
}

// Header renders a section header.
func Header(msg string) string {
	if !stdoutIsTTY {
		return msg
	}
	return headerStyle.Render(msg)
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return stdoutIsTTY
}
