// Package logger wraps hashicorp/go-hclog the way the run driver and every
// other component expect to receive a logger: leveled, colorable, and
// countable via a repeated -l/--level flag the way turbo's root command
// counts -l.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger is the orchestrator-wide structured logger.
type Logger struct {
	hclog.Logger
}

// New builds a Logger writing to stderr at Info level with color enabled.
func New() *Logger {
	return &Logger{
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "maa",
			Output: os.Stderr,
			Level:  hclog.Info,
			Color:  hclog.AutoColor,
		}),
	}
}

// NewWithOutput builds a Logger writing to an arbitrary writer.
func NewWithOutput(w io.Writer, noColor bool) *Logger {
	color := hclog.AutoColor
	if noColor {
		color = hclog.ColorOff
	}
	return &Logger{
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "maa",
			Output: w,
			Level:  hclog.Info,
			Color:  color,
		}),
	}
}

// SetLevelFromCount maps a repeated-flag count (-l, -ll, -lll, ...) onto
// hclog levels, most verbose last, mirroring cmd/root.go's CountVarP usage
// for the --level flag.
func (l *Logger) SetLevelFromCount(count int) {
	switch {
	case count <= 0:
		l.Logger.SetLevel(hclog.Warn)
	case count == 1:
		l.Logger.SetLevel(hclog.Info)
	case count == 2:
		l.Logger.SetLevel(hclog.Debug)
	default:
		l.Logger.SetLevel(hclog.Trace)
	}
}

// Printf formats and logs at Info level; kept for call sites that used to
// talk to a bare UI printer (mirrors cmd/root.go's logger.Printf(err.Error())).
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

var def = New()

// Default returns the process-wide Logger used by packages that don't carry
// their own injected logger (e.g. taskconfig's initialization warnings).
func Default() *Logger { return def }

// SetDefault replaces the process-wide Logger, called once by the root
// command's PersistentPreRunE after parsing the --level flags.
func SetDefault(l *Logger) {
	if l != nil {
		def = l
	}
}
