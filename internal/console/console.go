// Package console runs lessons and menus over a line-oriented reader and
// writer, for the plain command-line interface.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/lumen/internal/ui/theme"
)

// ErrInputClosed is returned when the input ends while a reply is expected.
var ErrInputClosed = errors.New("input closed")

// Console reads replies one line at a time.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Title prints a bold heading.
func (c *Console) Title(s string) {
	c.Println(theme.Heading.Render(s))
}

// Dim prints a muted line.
func (c *Console) Dim(s string) {
	c.Println(theme.Dim.Render(s))
}

// Success prints a highlighted success line.
func (c *Console) Success(s string) {
	c.Println(theme.Correct.Render(s))
}

// Error prints a highlighted error line.
func (c *Console) Error(s string) {
	c.Println(theme.Incorrect.Render(s))
}

// Prompt prints label and returns the trimmed reply.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		c.Println()
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Confirm asks a yes/no question. Anything other than y or yes is no.
func (c *Console) Confirm(question string) (bool, error) {
	reply, err := c.Prompt(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(reply) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Choose prints a numbered list and returns the zero-based index of the
// picked entry. Invalid replies are asked again.
func (c *Console) Choose(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("nothing to choose from")
	}
	if title != "" {
		c.Title(title)
	}
	for i, o := range options {
		c.Printf("  %d) %s\n", i+1, o)
	}
	for {
		reply, err := c.Prompt("\nChoose an option: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(reply)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		c.Error(fmt.Sprintf("Please enter a number from 1 to %d.", len(options)))
	}
}
