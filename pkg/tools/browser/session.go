package browser

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/entrhq/courtbook/pkg/llm/tokenizer"
	"github.com/playwright-community/playwright-go"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	if err := s.guard.Check(url); err != nil {
		return err
	}
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, playwrightOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// Snapshot tags interactive elements and returns the cleaned page.
func (s *Session) Snapshot(ctx context.Context, tok *tokenizer.Tokenizer, opts SnapshotOptions) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.UpdateLastUsed()

	tagged, err := s.Page.Evaluate(tagInteractiveScript, ElementIDAttribute)
	if err != nil {
		return nil, fmt.Errorf("failed to tag page elements: %w", err)
	}

	raw, err := s.Page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	snap, err := buildSnapshot(raw, tok, opts)
	if err != nil {
		return nil, err
	}
	snap.URL = s.Page.URL()
	snap.Interactive = toInt(tagged)
	if title, err := s.Page.Title(); err == nil && title != "" {
		snap.Title = title
	}
	s.CurrentURL = snap.URL
	return snap, nil
}

// Click clicks the element tagged with id.
func (s *Session) Click(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.UpdateLastUsed()

	if err := s.element(id).Click(); err != nil {
		return fmt.Errorf("click on element %d failed: %w", id, err)
	}
	s.settle()
	return nil
}

// Fill fills the input tagged with id.
func (s *Session) Fill(ctx context.Context, id int, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.UpdateLastUsed()

	if err := s.element(id).Fill(value); err != nil {
		return fmt.Errorf("fill on element %d failed: %w", id, err)
	}
	return nil
}

// Select chooses an option of the select element tagged with id, matched by
// value or label.
func (s *Session) Select(ctx context.Context, id int, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.UpdateLastUsed()

	values := []string{value}
	if _, err := s.element(id).SelectOption(playwright.SelectOptionValues{Values: &values}); err != nil {
		return fmt.Errorf("select on element %d failed: %w", id, err)
	}
	s.settle()
	return nil
}

func (s *Session) element(id int) playwright.Locator {
	return s.Page.Locator(ElementSelector(id)).First()
}

// settle waits for navigation a click may have started. Timeouts are ignored:
// most clicks only change the current document.
func (s *Session) settle() {
	state := playwright.LoadState(settleAfterActionState)
	_ = s.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   &state,
		Timeout: playwright.Float(5000),
	})
	s.CurrentURL = s.Page.URL()
}

// ElementSelector returns the CSS selector for a tagged element.
func ElementSelector(id int) string {
	return `[` + ElementIDAttribute + `="` + strconv.Itoa(id) + `"]`
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
