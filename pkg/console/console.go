// Package console prints user-facing sugar messages to the terminal.
package console

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Error prints an error message to stderr.
func Error(message string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("[EE] "+message))
}

// Info prints an informational message to stdout.
func Info(message string) {
	fmt.Println(infoStyle.Render(message))
}

// Warning prints a warning message to stdout.
func Warning(message string) {
	fmt.Println(warnStyle.Render(message))
}
