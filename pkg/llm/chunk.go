package llm

// ContentType distinguishes reasoning output from the actual answer.
type ContentType string

const (
	ContentTypeMessage  ContentType = "message"  // ContentTypeMessage is answer text.
	ContentTypeThinking ContentType = "thinking" // ContentTypeThinking is text inside <thinking> tags.
)

// StreamChunk is one piece of a streamed completion.
type StreamChunk struct {
	// Error is set when the stream failed; no further chunks follow.
	Error error

	// Content is the text delta carried by this chunk.
	Content string

	// Role is set on the first chunk of a response.
	Role string

	// Type tells thinking content apart from message content.
	Type ContentType

	// Finished marks the final chunk of the stream.
	Finished bool
}

// IsError reports whether the chunk carries a stream error.
func (c *StreamChunk) IsError() bool {
	return c != nil && c.Error != nil
}

// IsThinking reports whether the chunk holds reasoning content.
func (c *StreamChunk) IsThinking() bool {
	return c != nil && c.Type == ContentTypeThinking
}
