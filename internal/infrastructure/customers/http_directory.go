package customers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/usecase/interfaces"
)

// HTTPDirectory looks existing customers up through the accounting system's
// search API. An unconfigured directory returns no matches, which the
// conversation treats as "new customer".
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

var _ interfaces.ICustomerDirectory = (*HTTPDirectory)(nil)

func NewHTTPDirectory(baseURL string) *HTTPDirectory {
	if baseURL == "" {
		log.Printf("[customers][directory] CUSTOMER_API_URL not set, lookups disabled")
		return &HTTPDirectory{}
	}
	return &HTTPDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Customers []entities.CustomerMatch `json:"customers"`
}

func (d *HTTPDirectory) SearchByName(ctx context.Context, name string) ([]entities.CustomerMatch, error) {
	if d == nil || d.client == nil {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/customers/search?name=%s", d.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		log.Printf("[customers][search] request failed name=%q err=%v", name, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[customers][search] unexpected status name=%q status=%d", name, resp.StatusCode)
		return nil, fmt.Errorf("customer search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Printf("[customers][search] response unmarshal failed name=%q err=%v", name, err)
		return nil, err
	}

	log.Printf("[customers][search] name=%q matches=%d", name, len(parsed.Customers))
	return parsed.Customers, nil
}
