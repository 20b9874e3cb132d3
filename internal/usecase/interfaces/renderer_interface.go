package interfaces

import (
	"context"

	"quotedraft/internal/domain/entities"
)

//go:generate mockgen -source=renderer_interface.go -destination=mocks/renderer_mock.go -package=mock_interfaces

// IDocumentRenderer turns a normalized payload into a retrievable artifact.
// A failure carries a human-readable reason; the caller keeps the draft
// intact either way so the user can retry or edit.
type IDocumentRenderer interface {
	Render(ctx context.Context, payload entities.RenderPayload) (entities.RenderResult, error)
}
