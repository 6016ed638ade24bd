package llm

import "context"

// Message represents a conversation message.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// Reply is a tutor response with the reply suggestions stripped out of
// the spoken text.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Respond generates the tutor's next turn for the conversation.
	Respond(ctx context.Context, messages []Message, opts RespondOptions) (*Reply, error)
}

// RespondOptions tunes a single completion.
type RespondOptions struct {
	// CorrectionMode switches from conversational sandwich corrections
	// to explicit said/correct/why corrections.
	CorrectionMode bool

	// ProfileContext is an optional learner-memory block appended to the
	// system prompt (interests, level, recurring errors).
	ProfileContext string

	// ScenarioContext is an optional role-play block describing the
	// active guided scenario and its current step.
	ScenarioContext string
}
