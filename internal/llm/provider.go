package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM. When the request carries a
	// Schema the response Content is validated JSON; otherwise it is the
	// raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Streamer is implemented by providers that can deliver text as it is
// generated. onDelta is called for every text fragment in order; an error
// from it aborts the stream. The returned Response holds the full text.
type Streamer interface {
	Stream(ctx context.Context, req Request, onDelta func(string) error) (*Response, error)
}

// Stream uses p's streaming API when it has one, and otherwise delivers
// the whole Generate result as a single delta.
func Stream(ctx context.Context, p Provider, req Request, onDelta func(string) error) (*Response, error) {
	if s, ok := p.(Streamer); ok {
		return s.Stream(ctx, req, onDelta)
	}
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := onDelta(resp.Text()); err != nil {
		return nil, err
	}
	return resp, nil
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history, oldest first.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	Schema *Schema

	// Grounding asks the provider to consult web search and report the
	// pages it used in Response.Sources. Providers without search ignore it.
	// Gemini cannot combine search with a response schema, so grounded
	// requests are answered as text and the JSON is extracted afterwards.
	Grounding bool

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Snake-case, e.g. "lesson_section".
	Name string

	// Description is sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Source is a web page a grounded response drew on.
type Source struct {
	URI   string
	Title string
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Otherwise it is the raw
	// text, not JSON encoded.
	Content json.RawMessage

	// Sources lists grounding citations, deduplicated by URI.
	Sources []Source

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns Content as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// appendSource adds s to sources unless its URI is already present.
func appendSource(sources []Source, s Source) []Source {
	if s.URI == "" {
		return sources
	}
	for _, existing := range sources {
		if existing.URI == s.URI {
			return sources
		}
	}
	if s.Title == "" {
		s.Title = s.URI
	}
	return append(sources, s)
}
