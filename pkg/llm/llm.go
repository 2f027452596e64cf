// Package llm holds the provider-neutral side of AI text generation: the
// chat model contract and the helpers that dig JSON out of free-text
// replies.
package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the usecases.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
