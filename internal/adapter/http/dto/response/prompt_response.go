package response

import (
	"quotedraft/internal/domain/entities"
)

type PromptActionResponse struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// PromptResponse is the outbound message plus its selectable actions, the
// single response shape of the conversation endpoint.
type PromptResponse struct {
	Text        string                 `json:"text"`
	Actions     []PromptActionResponse `json:"actions,omitempty"`
	State       string                 `json:"state"`
	ArtifactRef string                 `json:"artifact_ref,omitempty"`
}

func FromPrompt(p entities.Prompt) PromptResponse {
	actions := make([]PromptActionResponse, 0, len(p.Actions))
	for _, a := range p.Actions {
		actions = append(actions, PromptActionResponse{Label: a.Label, Token: a.Token})
	}
	return PromptResponse{
		Text:        p.Text,
		Actions:     actions,
		State:       string(p.State),
		ArtifactRef: p.ArtifactRef,
	}
}
