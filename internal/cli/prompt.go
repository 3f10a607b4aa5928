package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers line by line from an input stream.
//
// Lines are read on a background goroutine so a pending prompt can be
// abandoned when the context is cancelled.
type Prompter struct {
	out   io.Writer
	lines <-chan string
	errc  <-chan error
}

// NewPrompter starts reading lines from in. Prompts are written to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- strings.TrimRight(scanner.Text(), "\r")
		}
		if err := scanner.Err(); err != nil {
			errc <- err
		}
	}()

	return &Prompter{out: out, lines: lines, errc: errc}
}

// Ask writes prompt and returns the next input line with surrounding
// whitespace removed. It returns io.EOF once input is exhausted and
// ctx.Err() if ctx is cancelled first.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			select {
			case err := <-p.errc:
				return "", err
			default:
				return "", io.EOF
			}
		}
		return strings.TrimSpace(line), nil
	}
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) is yes.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := p.Ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
