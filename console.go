package healthcheck

import (
	"io"
	"log"
	"os"
)

// Console is a line-oriented text sink for check reports.
//
// Each call writes exactly one line. The format string is compatible with the fmt library.
// A *log.Logger satisfies Console.
type Console interface {
	Printf(format string, values ...interface{})
}

// nopConsole is a Console that does not write anything.
type nopConsole struct{}

func (c *nopConsole) Printf(format string, values ...interface{}) {}

// StdConsole is a Console that is backed by log.Logger.
type StdConsole struct {
	out *log.Logger
}

// NewStdConsole returns a Console which writes unprefixed lines to out.
func NewStdConsole(out io.Writer) *StdConsole {
	return DefaultConsoleOpts().WithOutput(out).New()
}

func (c *StdConsole) Printf(format string, values ...interface{}) {
	c.out.Printf(format, values...)
}

// StdConsoleOpts represents the tunable knobs for creating a customized StdConsole.
type StdConsoleOpts struct {
	Flags  int
	Prefix string
	Output io.Writer
}

// DefaultConsoleOpts returns options for creating a StdConsole that writes to os.Stdout without flags or prefix.
func DefaultConsoleOpts() *StdConsoleOpts {
	return &StdConsoleOpts{Output: os.Stdout}
}

// WithOutput sets the output of the console.
func (o *StdConsoleOpts) WithOutput(out io.Writer) *StdConsoleOpts {
	o.Output = out
	return o
}

// WithPrefix sets the prefix written at the start of every line.
func (o *StdConsoleOpts) WithPrefix(prefix string) *StdConsoleOpts {
	o.Prefix = prefix
	return o
}

// WithFlags sets the log.Logger flags of the console.
func (o *StdConsoleOpts) WithFlags(flags int) *StdConsoleOpts {
	o.Flags = flags
	return o
}

// New creates a StdConsole from the options.
func (o *StdConsoleOpts) New() *StdConsole {
	return &StdConsole{out: log.New(o.Output, o.Prefix, o.Flags)}
}
