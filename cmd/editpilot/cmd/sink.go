package cmd

import (
	"fmt"
	"io"

	"github.com/chainlaunch/editcore/pkg/logger"
)

// consoleSink is the one concrete implementation of project.ConsoleSink in
// this module, printing the three status channels to the CLI's
// stdout/stderr rather than routing them through the structured logger.
type consoleSink struct {
	out io.Writer
	err io.Writer
	log *logger.Logger
}

func newConsoleSink(out, errOut io.Writer, log *logger.Logger) *consoleSink {
	return &consoleSink{out: out, err: errOut, log: log}
}

func (s *consoleSink) ToolOutput(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *consoleSink) ToolError(format string, args ...interface{}) {
	fmt.Fprintf(s.err, format+"\n", args...)
}

func (s *consoleSink) SystemOutput(format string, args ...interface{}) {
	fmt.Fprintf(s.out, "system: "+format+"\n", args...)
}

// Observe implements apply.ShellObserver: shell blocks are printed, never
// executed.
func (s *consoleSink) Observe(command string) {
	fmt.Fprintf(s.out, "shell (not executed): %s\n", command)
}
