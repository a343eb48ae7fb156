// Package semantic turns natural-language intents into page actions.
//
// An Executor is the only way the booking steps touch the page. Act performs
// one interaction, Observe lists elements matching a description and Extract
// reads structured data shaped by a Schema. PageExecutor implements all three
// by showing an LLM a tagged snapshot of the page and applying its JSON answer
// through Playwright.
package semantic

import (
	"context"
	"errors"

	"github.com/entrhq/courtbook/pkg/llm/tokenizer"
	"github.com/entrhq/courtbook/pkg/tools/browser"
)

var (
	// ErrNotActionable is returned when no element on the page satisfies an Act intent.
	ErrNotActionable = errors.New("intent not actionable on current page")

	// ErrSchemaMismatch is returned when extracted data does not fit the requested schema.
	ErrSchemaMismatch = errors.New("extracted data does not match schema")
)

// Executor performs intents against the current page.
type Executor interface {
	// Act performs a single interaction described by instruction.
	Act(ctx context.Context, instruction string) error

	// Observe returns the elements matching instruction. An empty result is not an error.
	Observe(ctx context.Context, instruction string) ([]ElementRef, error)

	// Extract reads page data described by instruction into dest, which must
	// be a pointer to a value shaped like schema.
	Extract(ctx context.Context, instruction string, schema Schema, dest any) error
}

// ElementRef is a page element found by Observe.
type ElementRef struct {
	TargetID    int    `json:"target_id"`
	Description string `json:"description"`
}

// Schema describes the shape of extracted data as a JSON schema object.
type Schema struct {
	Name        string
	Description string
	JSON        map[string]interface{}
}

// Page is the browser surface the executor drives. *browser.Session implements it.
type Page interface {
	Snapshot(ctx context.Context, tok *tokenizer.Tokenizer, opts browser.SnapshotOptions) (*browser.Snapshot, error)
	Click(ctx context.Context, id int) error
	Fill(ctx context.Context, id int, value string) error
	Select(ctx context.Context, id int, value string) error
}

var _ Page = (*browser.Session)(nil)
