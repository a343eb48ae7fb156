// Package console prints the human progress log of a booking run.
//
// Lines are emoji-prefixed and coloured; they are meant for the operator
// watching the run and are not a machine-readable contract.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
)

// Level controls console verbosity.
type Level int

const (
	// LevelQuiet shows only warnings, errors and results.
	LevelQuiet Level = iota
	// LevelNormal shows step progress (default).
	LevelNormal
	// LevelVerbose adds per-intent detail.
	LevelVerbose
	// LevelDebug adds raw model payloads.
	LevelDebug
)

// ParseLevel converts a level name to a Level. Unknown names map to LevelNormal.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "quiet":
		return LevelQuiet
	case "verbose":
		return LevelVerbose
	case "debug":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// Console writes progress to out and failures to errOut.
type Console struct {
	level  Level
	out    io.Writer
	errOut io.Writer

	step    lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style

	stepCount int
}

// New creates a console. Styles are rendered for the capabilities of out.
func New(out, errOut io.Writer, level Level) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		level:   level,
		out:     out,
		errOut:  errOut,
		step:    r.NewStyle().Foreground(lipgloss.Color("#7DD3FC")),
		success: r.NewStyle().Foreground(lipgloss.Color("#A8E6CF")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("#FFB3BA")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#FDE68A")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// Stdio creates a console on stdout/stderr.
func Stdio(level Level) *Console {
	return New(os.Stdout, os.Stderr, level)
}

// Level returns the configured verbosity.
func (c *Console) Level() Level {
	return c.level
}

// Step prints a numbered step.
func (c *Console) Step(message string) {
	if c.level < LevelNormal {
		return
	}
	c.stepCount++
	fmt.Fprintln(c.out, c.step.Render(fmt.Sprintf("[%d] %s", c.stepCount, message)))
}

// Printf prints an unstyled line at normal level.
func (c *Console) Printf(format string, args ...interface{}) {
	if c.level < LevelNormal {
		return
	}
	fmt.Fprintln(c.out, fmt.Sprintf(format, args...))
}

// Resultf prints an unstyled line even in quiet mode.
func (c *Console) Resultf(format string, args ...interface{}) {
	fmt.Fprintln(c.out, fmt.Sprintf(format, args...))
}

// Successf prints a success line.
func (c *Console) Successf(format string, args ...interface{}) {
	if c.level < LevelNormal {
		return
	}
	fmt.Fprintln(c.out, c.success.Render(fmt.Sprintf(format, args...)))
}

// Infof prints an informational line.
func (c *Console) Infof(format string, args ...interface{}) {
	if c.level < LevelNormal {
		return
	}
	fmt.Fprintln(c.out, c.info.Render(fmt.Sprintf(format, args...)))
}

// Warningf prints a warning line at every level.
func (c *Console) Warningf(format string, args ...interface{}) {
	fmt.Fprintln(c.out, c.warn.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a failure line to the error writer at every level.
func (c *Console) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(c.errOut, c.fail.Render(fmt.Sprintf(format, args...)))
}

// Verbosef prints detail only in verbose mode.
func (c *Console) Verbosef(format string, args ...interface{}) {
	if c.level < LevelVerbose {
		return
	}
	fmt.Fprintln(c.out, c.muted.Render("→ "+fmt.Sprintf(format, args...)))
}

// Debugf prints debug information only in debug mode.
func (c *Console) Debugf(format string, args ...interface{}) {
	if c.level < LevelDebug {
		return
	}
	fmt.Fprintln(c.out, c.muted.Render("[DEBUG] "+fmt.Sprintf(format, args...)))
}

// JSON prints a syntax highlighted JSON payload in debug mode.
func (c *Console) JSON(label, payload string) {
	if c.level < LevelDebug {
		return
	}
	fmt.Fprintln(c.out, c.muted.Render("[DEBUG] "+label+":"))
	if err := quick.Highlight(c.out, payload, "json", "terminal256", "monokai"); err != nil {
		fmt.Fprint(c.out, payload)
	}
	fmt.Fprintln(c.out)
}

// Newline adds a blank line (respects level)
func (c *Console) Newline() {
	if c.level >= LevelNormal {
		fmt.Fprintln(c.out)
	}
}
