package entities

// PromptAction is one selectable choice offered with a prompt. The transport
// decides how to render it; the core only supplies label and token.
type PromptAction struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// Prompt is the outbound message the core hands to the transport after
// processing an inbound event.
type Prompt struct {
	Text        string            `json:"text"`
	Actions     []PromptAction    `json:"actions,omitempty"`
	State       ConversationState `json:"state"`
	ArtifactRef string            `json:"artifact_ref,omitempty"`
}

// WithAction appends a choice and returns the prompt for chaining.
func (p Prompt) WithAction(label string, action Action) Prompt {
	p.Actions = append(p.Actions, PromptAction{Label: label, Token: action.Token()})
	return p
}
