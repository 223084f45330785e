// Package console writes coloured status lines and reads interactive answers.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ANSI escape sequences.
const (
	reset  = "\x1b[0m"
	bold   = "\x1b[1m"
	red    = "\x1b[31m"
	green  = "\x1b[32m"
	yellow = "\x1b[33m"
	cyan   = "\x1b[36m"
)

// Console is the user-facing side of the CLI. Diagnostics go through
// monitoring instead.
type Console struct {
	out   io.Writer
	err   io.Writer
	in    *bufio.Reader
	color bool
}

// New creates a Console on explicit streams.
func New(in io.Reader, out, errOut io.Writer, color bool) *Console {
	return &Console{
		out:   out,
		err:   errOut,
		in:    bufio.NewReader(in),
		color: color,
	}
}

// NewStd creates a Console on the process streams. Colour is enabled only
// when stdout is a terminal.
func NewStd() *Console {
	fd := os.Stdout.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return New(os.Stdin, colorable.NewColorableStdout(), colorable.NewColorableStderr(), color)
}

func (c *Console) paint(code, msg string) string {
	if !c.color {
		return msg
	}
	return code + msg + reset
}

// Out returns the stream status lines are written to.
func (c *Console) Out() io.Writer {
	return c.out
}

// Header prints a blank line then a ">>> " banner.
func (c *Console) Header(format string, a ...interface{}) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.paint(cyan+bold, ">>> "+fmt.Sprintf(format, a...)))
}

// Success prints a green line.
func (c *Console) Success(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.paint(green, fmt.Sprintf(format, a...)))
}

// Warning prints a yellow line.
func (c *Console) Warning(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.paint(yellow, fmt.Sprintf(format, a...)))
}

// Error prints a red line on the error stream.
func (c *Console) Error(format string, a ...interface{}) {
	fmt.Fprintln(c.err, c.paint(red, fmt.Sprintf(format, a...)))
}

// Println prints an uncoloured line.
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// Printf prints uncoloured formatted text.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Prompt shows "label [def]: " and returns the trimmed answer, or def when
// the answer is empty. End of input counts as an empty answer.
func (c *Console) Prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(c.out, "%s: ", label)
	}
	line, err := c.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes/no question defaulting to yes.
func (c *Console) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [Y/n]: ", question)
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	return IsYes(line), nil
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) {
		// Keep the cursor tidy when stdin closes mid-prompt.
		fmt.Fprintln(c.out)
	}
	return strings.TrimSpace(line), nil
}

// IsYes reports whether an answer accepts a default-yes question: empty,
// "y" or "yes", case-insensitive.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	}
	return false
}
