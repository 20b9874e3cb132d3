package interfaces

import (
	"context"

	"quotedraft/internal/domain/entities"
)

//go:generate mockgen -source=session_repository_interface.go -destination=mocks/session_repository_mock.go -package=mock_interfaces

// ISessionRepository persists one Draft per conversation. Sessions are
// created on first use and removed only by an explicit reset; they survive
// process restarts.
//
// Get returns a draft with an empty ConversationID when no session exists.
type ISessionRepository interface {
	Get(ctx context.Context, conversationID string) (entities.Draft, error)
	Put(ctx context.Context, draft entities.Draft) error
	Delete(ctx context.Context, conversationID string) error
}
