// Package llm provides the model abstraction the semantic action executor
// talks to when it needs to decide which element on a page satisfies a
// natural-language intent, or when it turns page content into typed records.
//
// Example usage:
//
//	provider, err := openai.NewProvider(
//	    os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o"),
//	    openai.WithResponseFormat(openai.ResponseFormatJSONObject),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reply, err := provider.Complete(ctx, []*types.Message{
//	    types.NewSystemMessage("Answer with JSON."),
//	    types.NewUserMessage("Which button logs the user in?"),
//	})
package llm

import (
	"context"

	"github.com/entrhq/courtbook/pkg/types"
)

// Provider defines the interface for LLM integrations.
//
// Providers only handle API communication and return StreamChunk values;
// prompt construction and response decoding belong to the caller. This keeps
// the executor testable with a scripted provider.
type Provider interface {
	// StreamCompletion sends messages to the LLM and streams back response chunks.
	//
	// The channel is closed when streaming completes or an error occurs.
	// Stream-time errors arrive as chunks with Error set; the returned error
	// only covers failures to start the request.
	StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *StreamChunk, error)

	// Complete sends messages to the LLM and returns the full response.
	// Thinking content is dropped; only message content is accumulated.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModel returns the model name being used.
	GetModel() string
}
