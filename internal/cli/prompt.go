// file: internal/cli/prompt.go
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI Color Codes for better output
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ColorReset  = "\033[0m"

	// ShowCursor re-enables a cursor hidden by an interrupted prompt.
	ShowCursor = "\033[?25h"
)

// ErrAborted is returned when the operator cancels a prompt or input ends.
var ErrAborted = errors.New("prompt aborted")

// Prompter defines the interface for user interaction, allowing for mock implementations in tests.
type Prompter interface {
	// Toggle asks a yes/no question; an empty answer selects initial.
	Toggle(question string, initial bool) (bool, error)
	// Text asks for free text; an empty answer selects initial. A non-nil
	// validate error is shown and the question repeated.
	Text(question, initial string, validate func(string) error) (string, error)
}

// StdinPrompter is the standard implementation of Prompter that reads from os.Stdin.
type StdinPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a new prompter that reads from standard input.
func NewPrompter() *StdinPrompter {
	return NewPrompterWithIO(os.Stdin, os.Stdout)
}

// NewPrompterWithIO creates a prompter over arbitrary streams.
func NewPrompterWithIO(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ask poses a question to the user and returns their input.
func (p *StdinPrompter) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s?%s %s%s%s ", ColorGreen, ColorReset, ColorBold, question, ColorReset)
	input, err := p.reader.ReadString('\n')
	if err != nil {
		// a final line without newline still counts as an answer
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Toggle asks a yes/no question.
func (p *StdinPrompter) Toggle(question string, initial bool) (bool, error) {
	hint := "(y/N)"
	if initial {
		hint = "(Y/n)"
	}
	for {
		input, err := p.ask(fmt.Sprintf("%s %s", question, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case "":
			return initial, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintf(p.out, "%sPlease answer yes or no.%s\n", ColorYellow, ColorReset)
	}
}

// Text asks for a value with a default.
func (p *StdinPrompter) Text(question, initial string, validate func(string) error) (string, error) {
	q := question
	if initial != "" {
		q = fmt.Sprintf("%s [%s]", question, initial)
	}
	for {
		input, err := p.ask(q)
		if err != nil {
			return "", err
		}
		if input == "" {
			input = initial
		}
		if validate == nil {
			return input, nil
		}
		if verr := validate(input); verr != nil {
			fmt.Fprintf(p.out, "%s%v%s\n", ColorRed, verr, ColorReset)
			continue
		}
		return input, nil
	}
}

// Styled wraps s in the given color code.
func Styled(color, s string) string {
	return color + s + ColorReset
}
