package interfaces

import (
	"context"

	"quotedraft/internal/domain/entities"
)

//go:generate mockgen -source=extractor_interface.go -destination=mocks/extractor_mock.go -package=mock_interfaces

// IDetailExtractor is the AI extraction collaborator: free text or an image
// in, candidate draft fields out. An empty result means nothing was
// recognized; implementations must swallow model/transport failures and
// return the zero value instead of surfacing them into the core.
type IDetailExtractor interface {
	ExtractFromText(ctx context.Context, text string) (entities.ExtractedDetails, error)
	ExtractFromImage(ctx context.Context, image []byte, mimeType string) (entities.ExtractedDetails, error)
}
