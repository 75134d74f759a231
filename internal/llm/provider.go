package llm

import "context"

// Provider is the text-generation capability behind the assisted
// classifier mode. Implementations must bound the call; a hung remote
// is surfaced as an error, never an unbounded wait.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
