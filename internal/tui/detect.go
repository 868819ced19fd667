package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how human-facing output is rendered.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, scripts, and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is reading the terminal.
	ModeStyled
)

// DetectMode determines whether cadpost should colour its output.
//
// Returns ModePlain if:
//   - CADPOST_NO_COLOR=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdout is not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode() Mode {
	if os.Getenv("CADPOST_NO_COLOR") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

// IsStyled is a convenience function that returns true if output should be coloured.
func IsStyled() bool {
	return DetectMode() == ModeStyled
}
