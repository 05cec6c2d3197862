package domain

import "context"

// ChatTurn is a role-tagged message sent to the chat model
type ChatTurn struct {
	Role    string
	Content string
}

// TextGenerator is the port to the hosted text-generation model.
// Implementations are constructed explicitly and injected into services.
type TextGenerator interface {
	// Generate sends a single prompt and returns the raw model text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Chat sends a role-tagged conversation and returns the assistant reply.
	Chat(ctx context.Context, turns []ChatTurn) (string, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
