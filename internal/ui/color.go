package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI256 codes used by the table renderers. Accent marks the active
// record in a list, muted de-emphasizes inactive and draft ones.
const (
	codeAccent = 74  // blue
	codeMuted  = 245 // medium gray
)

var noColor bool

// ForceNoColor disables all styling for the rest of the process.
func ForceNoColor() {
	noColor = true
}

// RenderAccent styles s in the accent color.
func RenderAccent(s string) string {
	return render(codeAccent, s)
}

// RenderMuted styles s in the muted color.
func RenderMuted(s string) string {
	return render(codeMuted, s)
}

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// ShouldUseColor reports whether stdout should receive ANSI styling.
// NO_COLOR (any value) wins, then CLICOLOR_FORCE=1, then CLICOLOR=0,
// then TTY detection.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch {
	case strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1":
		return true
	case strings.TrimSpace(os.Getenv("CLICOLOR")) == "0":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
