// Package prompt asks the person at the terminal to pick one of a few
// choices. Commands depend on the Confirmer interface so tests and --yes can
// answer without a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Kind string

const (
	Info     Kind = "info"
	Warning  Kind = "warning"
	Question Kind = "question"
	Critical Kind = "critical"
)

// Localised standard choices.
const (
	OK     = "确定"
	Cancel = "取消"
	Yes    = "是"
	No     = "否"
)

var ErrNoOptions = errors.New("prompt has no options")

type Confirmer interface {
	Confirm(kind Kind, title, text string, options []string) (string, error)
}

// Console reads choices line by line. Each prompt reuses the same buffered
// reader so piped input spanning several prompts is not lost.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{in: bufio.NewReader(in), out: out}
}

// Confirm accepts either the 1-based option number or the option text.
// A prompt with a single option is shown and answered without reading input.
func (c *Console) Confirm(kind Kind, title, text string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	fmt.Fprintf(c.out, "[%s] %s\n", kind, strings.TrimSpace(title))
	if text = strings.TrimSpace(text); text != "" {
		fmt.Fprintln(c.out, text)
	}
	if len(options) == 1 {
		return options[0], nil
	}

	for {
		for i, option := range options {
			fmt.Fprintf(c.out, "  %d) %s\n", i+1, option)
		}
		fmt.Fprintf(c.out, "Choose [1-%d]: ", len(options))

		input, err := c.in.ReadString('\n')
		if err != nil && strings.TrimSpace(input) == "" {
			return "", fmt.Errorf("read choice: %w", err)
		}
		if choice, ok := match(strings.TrimSpace(input), options); ok {
			return choice, nil
		}
		fmt.Fprintln(c.out, "Invalid selection. Please enter a valid number.")
		if err != nil {
			return "", fmt.Errorf("read choice: %w", err)
		}
	}
}

func match(input string, options []string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, option := range options {
		if strings.EqualFold(input, option) {
			return option, true
		}
	}
	return "", false
}

// Fixed answers every prompt with Choice, or with the first option when
// Choice is empty or not offered.
type Fixed struct {
	Choice string
}

func (f Fixed) Confirm(_ Kind, _, _ string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	for _, option := range options {
		if option == f.Choice {
			return option, nil
		}
	}
	return options[0], nil
}
