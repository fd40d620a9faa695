package ai

import "context"

// Message is one turn of an assistant conversation. Role is "user" or
// "model", matching what the chat widget stores.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Client talks to the generative-AI backend behind the assistant.
type Client interface {
	// StreamChat sends the running history plus a new user message and
	// delivers response text incrementally through onChunk, in arrival
	// order. It returns after the model response completes or fails.
	StreamChat(ctx context.Context, history []Message, message string, onChunk func(string) error) error
}
