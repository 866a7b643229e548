// Package ui provides the small set of colored-terminal helpers the run
// driver and summary formatter print with, built on fatih/color.
package ui

import "github.com/fatih/color"

var (
	boldColor  = color.New(color.Bold)
	dimColor   = color.New(color.FgHiBlack)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
	okColor    = color.New(color.FgGreen)
)

// Bold renders s in bold.
func Bold(s string) string { return boldColor.Sprint(s) }

// Dim renders s dimmed (used for secondary/contextual text).
func Dim(s string) string { return dimColor.Sprint(s) }

// Warn renders s as a warning.
func Warn(s string) string { return warnColor.Sprint(s) }

// Err renders s as an error.
func Err(s string) string { return errorColor.Sprint(s) }

// OK renders s as a success message.
func OK(s string) string { return okColor.Sprint(s) }

// NoColor disables all color output process-wide, wired to the --no-color
// persistent flag.
func NoColor(disable bool) {
	color.NoColor = disable
}
