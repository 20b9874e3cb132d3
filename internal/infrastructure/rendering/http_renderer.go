package rendering

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrMissingRendererURL = errors.New("missing RENDERER_URL")
var ErrRendererNotConfigured = errors.New("document renderer not configured")

// HTTPRenderer posts normalized payloads to the external Excel rendering
// service and returns the artifact reference it responds with. With
// RENDERER_MOCK enabled no request is made and a synthetic reference is
// returned, which keeps local runs independent of the rendering service.
type HTTPRenderer struct {
	baseURL  string
	client   *http.Client
	mockMode bool
}

var _ interfaces.IDocumentRenderer = (*HTTPRenderer)(nil)

func NewHTTPRenderer(baseURL string) (*HTTPRenderer, error) {
	if isRendererMockEnabled() {
		log.Printf("[rendering][gateway] mock mode enabled")
		return &HTTPRenderer{mockMode: true}, nil
	}

	if baseURL == "" {
		log.Printf("[rendering][gateway] missing RENDERER_URL")
		return nil, ErrMissingRendererURL
	}

	return &HTTPRenderer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type renderResponse struct {
	ArtifactRef string `json:"artifact_ref"`
	Error       string `json:"error"`
}

func (r *HTTPRenderer) Render(ctx context.Context, payload entities.RenderPayload) (entities.RenderResult, error) {
	if r != nil && r.mockMode {
		ref := fmt.Sprintf("mock://rendered/%s-%s.xlsx", payload.DocNo, uuid.NewString())
		log.Printf("[rendering][gateway] mock render success doc_no=%s artifact_ref=%s", payload.DocNo, ref)
		return entities.RenderResult{ArtifactRef: ref}, nil
	}

	if r == nil || r.client == nil {
		log.Printf("[rendering][gateway] gateway not configured")
		return entities.RenderResult{}, ErrRendererNotConfigured
	}
	log.Printf("[rendering][gateway] render start doc_no=%s items=%d", payload.DocNo, len(payload.LineItems))

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[rendering][gateway] payload marshal failed err=%v", err)
		return entities.RenderResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return entities.RenderResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("[rendering][gateway] request failed err=%v", err)
		return entities.RenderResult{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.RenderResult{}, err
	}

	var parsed renderResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		log.Printf("[rendering][gateway] response unmarshal failed status=%d err=%v", resp.StatusCode, err)
		return entities.RenderResult{}, fmt.Errorf("renderer returned status %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		reason := parsed.Error
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		log.Printf("[rendering][gateway] render failed doc_no=%s reason=%s", payload.DocNo, reason)
		return entities.RenderResult{}, fmt.Errorf("rendering failed: %s", reason)
	}
	if parsed.ArtifactRef == "" {
		log.Printf("[rendering][gateway] render succeeded without artifact ref doc_no=%s", payload.DocNo)
		return entities.RenderResult{}, errors.New("renderer returned no artifact reference")
	}

	log.Printf("[rendering][gateway] render success doc_no=%s artifact_ref=%s", payload.DocNo, parsed.ArtifactRef)
	return entities.RenderResult{ArtifactRef: parsed.ArtifactRef}, nil
}

func isRendererMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("RENDERER_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
