package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/entrhq/courtbook/pkg/llm"
	"github.com/entrhq/courtbook/pkg/llm/parser"
	"github.com/entrhq/courtbook/pkg/llm/tokenizer"
	"github.com/entrhq/courtbook/pkg/logging"
	"github.com/entrhq/courtbook/pkg/tools/browser"
	"github.com/entrhq/courtbook/pkg/types"
)

const defaultActAttempts = 1

// TraceFunc receives raw model replies, labelled by operation.
type TraceFunc func(label, payload string)

// PageExecutor implements Executor with an LLM deciding over page snapshots.
type PageExecutor struct {
	page        Page
	provider    llm.Provider
	tokenizer   *tokenizer.Tokenizer
	maxTokens   int
	actAttempts int
	logger      *logging.Logger
	trace       TraceFunc
}

// Option configures a PageExecutor.
type Option func(*PageExecutor)

// WithTokenizer sets the tokenizer used to budget snapshots.
func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(e *PageExecutor) {
		e.tokenizer = t
	}
}

// WithSnapshotTokens caps the page HTML sent with each request.
func WithSnapshotTokens(n int) Option {
	return func(e *PageExecutor) {
		e.maxTokens = n
	}
}

// WithActAttempts sets how often Act re-snapshots after a failed interaction.
func WithActAttempts(n int) Option {
	return func(e *PageExecutor) {
		if n > 0 {
			e.actAttempts = n
		}
	}
}

// WithLogger sets the debug log.
func WithLogger(l *logging.Logger) Option {
	return func(e *PageExecutor) {
		e.logger = l
	}
}

// WithTrace registers a callback for raw model replies.
func WithTrace(fn TraceFunc) Option {
	return func(e *PageExecutor) {
		e.trace = fn
	}
}

// NewPageExecutor creates an executor over page using provider for decisions.
func NewPageExecutor(page Page, provider llm.Provider, opts ...Option) *PageExecutor {
	e := &PageExecutor{
		page:        page,
		provider:    provider,
		maxTokens:   browser.DefaultSnapshotTokens,
		actAttempts: defaultActAttempts,
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type actDecision struct {
	Action   string `json:"action"`
	TargetID int    `json:"target_id"`
	Value    string `json:"value"`
	Reason   string `json:"reason"`
}

// Act performs one interaction. By default an element failure is returned
// as is; WithActAttempts allows a fresh snapshot and another decision.
func (e *PageExecutor) Act(ctx context.Context, instruction string) error {
	var lastErr error
	for attempt := 1; attempt <= e.actAttempts; attempt++ {
		snap, err := e.snapshot(ctx)
		if err != nil {
			return err
		}

		var decision actDecision
		if err := e.ask(ctx, "act", buildActPrompt(instruction, snap), &decision); err != nil {
			return fmt.Errorf("act %q: %w", instruction, err)
		}
		e.logger.Debugf("act %q -> %s #%d (%s)", instruction, decision.Action, decision.TargetID, decision.Reason)

		lastErr = e.apply(ctx, decision)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if isNotActionable(lastErr) {
			return fmt.Errorf("act %q: %w", instruction, lastErr)
		}
		e.logger.Warnf("act %q attempt %d failed: %v", instruction, attempt, lastErr)
	}
	return fmt.Errorf("act %q: %w", instruction, lastErr)
}

func (e *PageExecutor) apply(ctx context.Context, d actDecision) error {
	action := strings.ToLower(strings.TrimSpace(d.Action))
	if action == "none" || action == "" || d.TargetID <= 0 {
		return notActionable(d.Reason)
	}

	switch action {
	case "click":
		return e.page.Click(ctx, d.TargetID)
	case "fill":
		return e.page.Fill(ctx, d.TargetID, d.Value)
	case "select":
		return e.page.Select(ctx, d.TargetID, d.Value)
	default:
		return notActionable(fmt.Sprintf("unsupported action %q", d.Action))
	}
}

type notActionableError struct {
	reason string
}

func notActionable(reason string) error {
	return &notActionableError{reason: reason}
}

func (e *notActionableError) Error() string {
	if e.reason == "" {
		return ErrNotActionable.Error()
	}
	return ErrNotActionable.Error() + ": " + e.reason
}

func (e *notActionableError) Unwrap() error {
	return ErrNotActionable
}

func isNotActionable(err error) bool {
	_, ok := err.(*notActionableError)
	return ok
}

// Observe lists matching elements. Ids the model invents are dropped.
func (e *PageExecutor) Observe(ctx context.Context, instruction string) ([]ElementRef, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var reply struct {
		Elements []ElementRef `json:"elements"`
	}
	if err := e.ask(ctx, "observe", buildObservePrompt(instruction, snap), &reply); err != nil {
		return nil, fmt.Errorf("observe %q: %w", instruction, err)
	}

	refs := make([]ElementRef, 0, len(reply.Elements))
	for _, ref := range reply.Elements {
		if ref.TargetID <= 0 || (snap.Interactive > 0 && ref.TargetID > snap.Interactive) {
			continue
		}
		refs = append(refs, ref)
	}
	e.logger.Debugf("observe %q -> %d elements", instruction, len(refs))
	return refs, nil
}

// Extract reads page data into dest. Replies that are not JSON, lack a
// required top-level field or do not decode into dest wrap ErrSchemaMismatch.
func (e *PageExecutor) Extract(ctx context.Context, instruction string, schema Schema, dest any) error {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return err
	}

	prompt, err := buildExtractPrompt(instruction, schema, snap)
	if err != nil {
		return err
	}

	raw, err := e.complete(ctx, "extract "+schema.Name, prompt)
	if err != nil {
		return fmt.Errorf("extract %s: %w", schema.Name, err)
	}
	if err := decodeSchema(raw, schema, dest); err != nil {
		return fmt.Errorf("extract %s: %w", schema.Name, err)
	}
	return nil
}

func decodeSchema(raw string, schema Schema, dest any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	for _, name := range requiredFields(schema.JSON) {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("%w: missing field %q", ErrSchemaMismatch, name)
		}
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}

func requiredFields(schema map[string]interface{}) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []interface{}:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (e *PageExecutor) snapshot(ctx context.Context) (*browser.Snapshot, error) {
	snap, err := e.page.Snapshot(ctx, e.tokenizer, browser.SnapshotOptions{MaxTokens: e.maxTokens})
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot page: %w", err)
	}
	e.logger.Debugf("snapshot %s: %d interactive elements, %d tokens, truncated=%v", snap.URL, snap.Interactive, snap.Tokens, snap.Truncated)
	return snap, nil
}

// ask completes prompt and decodes the JSON reply into out.
func (e *PageExecutor) ask(ctx context.Context, label, prompt string, out any) error {
	raw, err := e.complete(ctx, label, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("model reply is not valid JSON: %w", err)
	}
	return nil
}

func (e *PageExecutor) complete(ctx context.Context, label, prompt string) (string, error) {
	messages := []*types.Message{
		types.NewSystemMessage(systemPrompt),
		types.NewUserMessage(prompt),
	}
	e.logger.Debugf("%s prompt to %s: %d tokens", label, e.provider.GetModel(), e.tokenizer.CountMessagesTokens(messages))

	reply, err := e.provider.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	raw := parser.Strip(reply.Content)
	e.logger.Debugf("%s reply: %s", label, raw)
	if e.trace != nil {
		e.trace(label, raw)
	}
	return raw, nil
}
