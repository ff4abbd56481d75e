package compiler

import (
	"fmt"
	"io"
	"os"
)

// Logger reports what happens to a pattern on its way to generated code:
// the normalized and postfix forms, automaton size, and which match engine
// was chosen. A disabled Logger writes nothing.
type Logger struct {
	enabled bool
	out     io.Writer
}

// NewLogger returns a logger writing to stderr.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput redirects the log, e.g. to the command's stderr writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints one "[thompson]" line.
func (l *Logger) Log(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(l.out, "[thompson] "+format+"\n", args...)
	}
}

// Section starts a block of related lines, such as "Engine Selection".
func (l *Logger) Section(name string) {
	if l.enabled {
		fmt.Fprintf(l.out, "\n[thompson] === %s ===\n", name)
	}
}

func (l *Logger) Enabled() bool {
	return l.enabled
}
