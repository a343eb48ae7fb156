// Package artifact writes the run report: a JSON record of the booking
// result and a Markdown summary for people.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/courtbook/pkg/booking"
)

// File names inside a run directory.
const (
	ResultFile  = "result.json"
	SummaryFile = "summary.md"
)

// Writer writes run artifacts under one directory per run.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// RunDir is the directory the artifacts for result go to.
func (w *Writer) RunDir(result *booking.Result) string {
	return filepath.Join(w.outputDir, result.RunID)
}

// WriteAll writes every artifact for result and returns the run directory.
func (w *Writer) WriteAll(result *booking.Result) (string, error) {
	dir := w.RunDir(result)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := w.WriteResultJSON(dir, result); err != nil {
		return "", err
	}
	if err := w.WriteSummaryMarkdown(dir, result); err != nil {
		return "", err
	}
	return dir, nil
}

// WriteResultJSON writes result as indented JSON.
func (w *Writer) WriteResultJSON(dir string, result *booking.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run result: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ResultFile), data, 0600); err != nil {
		return fmt.Errorf("failed to write result JSON: %w", err)
	}
	return nil
}

// WriteSummaryMarkdown writes the human-readable summary.
func (w *Writer) WriteSummaryMarkdown(dir string, result *booking.Result) error {
	if err := os.WriteFile(filepath.Join(dir, SummaryFile), []byte(Summary(result)), 0600); err != nil {
		return fmt.Errorf("failed to write summary markdown: %w", err)
	}
	return nil
}

// Summary renders result as Markdown.
func Summary(result *booking.Result) string {
	var md strings.Builder

	md.WriteString("# Court Booking Run\n\n")
	md.WriteString(fmt.Sprintf("**Run:** %s\n\n", result.RunID))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", result.StartedAt.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Finished:** %s\n\n", result.FinishedAt.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", result.FinishedAt.Sub(result.StartedAt).Round(time.Second)))

	p := result.Parameters
	if p.Activity != "" {
		md.WriteString("## Request\n\n")
		md.WriteString(fmt.Sprintf("- **Activity:** %s\n", p.Activity))
		md.WriteString(fmt.Sprintf("- **Date:** %s\n", booking.LongDate(p.Date)))
		md.WriteString(fmt.Sprintf("- **Time of day:** %s\n\n", p.TimeOfDay))
	}

	if result.SessionID != "" {
		md.WriteString("## Session\n\n")
		md.WriteString(fmt.Sprintf("- **ID:** `%s`\n", result.SessionID))
		if result.LiveViewURL != "" {
			md.WriteString(fmt.Sprintf("- **Live view:** %s\n", result.LiveViewURL))
		}
		md.WriteString("\n")
	}

	if d := result.Discovery; d != nil {
		md.WriteString("## Discovery\n\n")
		md.WriteString("| Time of day | Candidates | Courts | Bookable |\n")
		md.WriteString("|---|---|---|---|\n")
		for _, a := range d.Attempts {
			courts := fmt.Sprintf("%d", len(a.Slots))
			if a.Skipped {
				courts = "skipped"
			}
			md.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n", a.TimeOfDay, a.Candidates, courts, mark(a.Available)))
		}
		md.WriteString("\n")
		if len(d.Slots) > 0 {
			md.WriteString(fmt.Sprintf("Courts shown for **%s**:\n\n", d.TimeOfDay))
			for _, s := range d.Slots {
				md.WriteString(fmt.Sprintf("- %s, %s, %s: %s\n", s.Name, s.Location, s.OpeningTimes, s.Availability))
			}
			md.WriteString(fmt.Sprintf("\nBookable courts: %d of %d\n\n", len(d.Slots.Bookable()), len(d.Slots)))
		}
	}

	md.WriteString("## Result\n\n")
	switch {
	case result.Error != "":
		md.WriteString(fmt.Sprintf("❌ **Error:** %s\n", result.Error))
	case result.Confirmation != nil:
		c := result.Confirmation
		md.WriteString("✅ **Booking flow completed**\n\n")
		if c.ConfirmationMessage != nil && *c.ConfirmationMessage != "" {
			md.WriteString(fmt.Sprintf("- **Confirmation:** %s\n", *c.ConfirmationMessage))
		}
		if c.BookingDetails != nil && *c.BookingDetails != "" {
			md.WriteString(fmt.Sprintf("- **Details:** %s\n", *c.BookingDetails))
		}
		if c.ErrorMessage != nil && *c.ErrorMessage != "" {
			md.WriteString(fmt.Sprintf("- **Site error:** %s\n", *c.ErrorMessage))
		}
	default:
		md.WriteString("Run ended before booking.\n")
	}

	return md.String()
}

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
