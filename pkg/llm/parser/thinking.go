// Package parser separates model reasoning from answers in LLM output.
//
// Models used for page actions sometimes reason inside <thinking> tags before
// emitting the JSON answer. ThinkingParser splits streamed deltas; Strip
// cleans a complete reply down to the answer.
package parser

import (
	"strings"

	"github.com/entrhq/courtbook/pkg/llm"
)

const (
	openTag  = "<thinking>"
	closeTag = "</thinking>"
)

// Strip removes <thinking> blocks and a surrounding markdown code fence from
// a complete model reply.
func Strip(reply string) string {
	var p ThinkingParser
	_, msg := p.Parse(reply)
	_, rest := p.Flush()
	return stripFences(strings.TrimSpace(contentOf(msg) + contentOf(rest)))
}

func contentOf(c *llm.StreamChunk) string {
	if c == nil {
		return ""
	}
	return c.Content
}

// stripFences unwraps a ```json ... ``` block if the reply is one.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ThinkingParser splits streamed content into thinking and answer text. A
// tag split across deltas is held back until the next delta decides it.
// The zero value is ready to use.
type ThinkingParser struct {
	pending    string
	inThinking bool
}

// NewThinkingParser creates a parser for one stream.
func NewThinkingParser() *ThinkingParser {
	return &ThinkingParser{}
}

// Parse consumes one delta and returns what can be emitted so far. Either
// chunk may be nil.
func (p *ThinkingParser) Parse(content string) (thinking, message *llm.StreamChunk) {
	p.pending += content

	var th, msg strings.Builder
	for {
		tag := p.nextTag()
		i := strings.Index(p.pending, tag)
		if i < 0 {
			break
		}
		p.route(&th, &msg, p.pending[:i])
		p.pending = p.pending[i+len(tag):]
		p.inThinking = !p.inThinking
	}

	keep := partialSuffix(p.pending, p.nextTag())
	p.route(&th, &msg, p.pending[:len(p.pending)-keep])
	p.pending = p.pending[len(p.pending)-keep:]

	return chunk(th.String(), llm.ContentTypeThinking), chunk(msg.String(), llm.ContentTypeMessage)
}

// Flush emits anything held back at the end of the stream.
func (p *ThinkingParser) Flush() (thinking, message *llm.StreamChunk) {
	rest := p.pending
	p.pending = ""
	if p.inThinking {
		return chunk(rest, llm.ContentTypeThinking), nil
	}
	return nil, chunk(rest, llm.ContentTypeMessage)
}

func (p *ThinkingParser) nextTag() string {
	if p.inThinking {
		return closeTag
	}
	return openTag
}

func (p *ThinkingParser) route(th, msg *strings.Builder, text string) {
	if p.inThinking {
		th.WriteString(text)
	} else {
		msg.WriteString(text)
	}
}

// partialSuffix returns the length of the longest proper prefix of tag that
// s ends with.
func partialSuffix(s, tag string) int {
	for n := len(tag) - 1; n > 0; n-- {
		if strings.HasSuffix(s, tag[:n]) {
			return n
		}
	}
	return 0
}

func chunk(text string, typ llm.ContentType) *llm.StreamChunk {
	if text == "" {
		return nil
	}
	return &llm.StreamChunk{Content: text, Type: typ}
}
