// Package tokenizer counts tokens the way the model will see them.
package tokenizer

import (
	"fmt"

	"github.com/entrhq/courtbook/pkg/types"
	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultEncoding is the BPE used by the gpt-4o family.
	DefaultEncoding = "o200k_base"

	// perMessageOverhead approximates role and separator tokens added per chat message.
	perMessageOverhead = 4

	charsPerToken = 4
)

// Tokenizer counts tokens for prompt budgeting.
//
// The zero value is usable and falls back to a character estimate.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New loads the default encoding.
func New() (*Tokenizer, error) {
	return NewWithEncoding(DefaultEncoding)
}

// NewWithEncoding loads a named tiktoken encoding.
func NewWithEncoding(name string) (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %q: %w", name, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// Exact reports whether counts come from a real encoding.
func (t *Tokenizer) Exact() bool {
	return t != nil && t.enc != nil
}

// CountTokens returns the token count of text.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if !t.Exact() {
		return Estimate(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}

// CountMessagesTokens returns the token count of a chat transcript.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		total += perMessageOverhead + t.CountTokens(msg.Content)
	}
	return total
}

// Truncate cuts text so it fits in maxTokens. The second value reports whether
// anything was cut.
func (t *Tokenizer) Truncate(text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 || t.CountTokens(text) <= maxTokens {
		return text, false
	}
	if !t.Exact() {
		limit := maxTokens * charsPerToken
		if limit > len(text) {
			limit = len(text)
		}
		return text[:limit], true
	}
	tokens := t.enc.Encode(text, nil, nil)
	return t.enc.Decode(tokens[:maxTokens]), true
}

// Estimate approximates a token count from the character length.
func Estimate(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}
