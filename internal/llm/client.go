package llm

import "context"

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    string
	Content string
}

// Request is a chat completion request. System is sent ahead of Messages.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Client defines the interface for interacting with a Large Language Model.
type Client interface {
	// Generate performs a non-streaming completion request.
	Generate(ctx context.Context, req Request) (string, error)

	// Stream performs a streaming completion request, sending text chunks to
	// out. The channel is closed when generation is complete or an error
	// occurs.
	Stream(ctx context.Context, req Request, out chan<- string) error

	// ListAvailableModels retrieves a list of models available through the provider.
	ListAvailableModels(ctx context.Context) ([]string, error)
}
