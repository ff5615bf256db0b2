// Package console owns the interactive input stream and the prompt output.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Unrecognized is returned by ReadChoice when no attempt produced a number.
const Unrecognized = -1

// Console is the single reader of the input stream. Every component that
// needs a line of input goes through it.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int
}

func New(in io.Reader, out io.Writer, maxAttempts int) *Console {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Console{in: bufio.NewReader(in), out: out, maxAttempts: maxAttempts}
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Writer exposes the output stream for tabular rendering.
func (c *Console) Writer() io.Writer {
	return c.out
}

// ReadLine returns the next line without its terminator. It returns io.EOF
// once the input is exhausted; a final unterminated line is still returned.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt prints label and reads the answer.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	return c.ReadLine()
}

// PromptValid re-prompts until check accepts the answer, up to the attempt
// limit. The last check error is returned when the attempts run out.
func (c *Console) PromptValid(label string, check func(string) error) (string, error) {
	var lastErr error
	for i := 0; i < c.maxAttempts; i++ {
		answer, err := c.Prompt(label)
		if err != nil {
			return "", err
		}
		if lastErr = check(answer); lastErr == nil {
			return answer, nil
		}
		c.Printf("%v. Please try again.\n", lastErr)
	}
	return "", lastErr
}

// ReadChoice reads a menu number. Unparseable input is retried up to the
// attempt limit, after which Unrecognized is returned.
func (c *Console) ReadChoice() (int, error) {
	for i := 0; i < c.maxAttempts; i++ {
		line, err := c.Prompt("Please make your choice: ")
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return choice, nil
		}
		c.Println("Your input is invalid!")
	}
	return Unrecognized, nil
}
