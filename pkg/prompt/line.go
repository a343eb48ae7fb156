package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Line prompts over plain text streams. A single goroutine reads in for the
// life of the prompter, so a line typed after a cancelled prompt is handed to
// the next one.
type Line struct {
	in  *bufio.Reader
	out io.Writer

	once  sync.Once
	lines chan lineResult
}

// NewLine creates a line prompter reading answers from in.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// Select prints numbered choices and reads a number, a label or an empty line
// for the default.
func (l *Line) Select(ctx context.Context, question string, choices []Choice, defaultIndex int) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", question)
	}
	defaultIndex = clampIndex(defaultIndex, len(choices))

	fmt.Fprintln(l.out, question)
	for i, c := range choices {
		marker := " "
		if i == defaultIndex {
			marker = ">"
		}
		fmt.Fprintf(l.out, "%s %d) %s\n", marker, i+1, c.Label)
	}

	for {
		fmt.Fprintf(l.out, "Choice [%d]: ", defaultIndex+1)
		answer, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return choices[defaultIndex].Value, nil
		}
		if i, ok := matchChoice(answer, choices); ok {
			return choices[i].Value, nil
		}
		fmt.Fprintf(l.out, "Please enter a number between 1 and %d\n", len(choices))
	}
}

// Input reads free text until validate accepts it. The answer is trimmed.
func (l *Line) Input(ctx context.Context, question string, validate func(string) error) (string, error) {
	for {
		fmt.Fprintf(l.out, "%s ", question)
		answer, err := l.readLine(ctx)
		if err != nil {
			return "", err
		}
		if validate != nil {
			if err := validate(answer); err != nil {
				fmt.Fprintf(l.out, ">> %v\n", err)
				continue
			}
		}
		return answer, nil
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine returns the next trimmed line. A final line without newline is
// still returned; EOF before any input is ErrAborted.
func (l *Line) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.once.Do(func() {
		l.lines = make(chan lineResult)
		go l.readLoop()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-l.lines:
		if !ok {
			return "", ErrAborted
		}
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && r.line != "" {
				return strings.TrimSpace(r.line), nil
			}
			if errors.Is(r.err, io.EOF) {
				return "", ErrAborted
			}
			return "", fmt.Errorf("failed to read answer: %w", r.err)
		}
		return strings.TrimSpace(r.line), nil
	}
}

// readLoop delivers lines until the first read error, then closes lines.
func (l *Line) readLoop() {
	defer close(l.lines)
	for {
		line, err := l.in.ReadString('\n')
		l.lines <- lineResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

func matchChoice(answer string, choices []Choice) (int, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(choices) {
			return n - 1, true
		}
		return 0, false
	}
	for i, c := range choices {
		if strings.EqualFold(answer, c.Value) || strings.EqualFold(answer, c.Label) {
			return i, true
		}
	}
	return 0, false
}
