package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/usecase/interfaces"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

// GeminiExtractor implements detail extraction on top of the Gemini API.
// Extraction is best effort: any model, transport or parse failure degrades
// to an empty result so the conversation falls back to asking field by field.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ interfaces.IDetailExtractor = (*GeminiExtractor)(nil)

// NewGeminiExtractor initializes the Gemini client. An empty API key returns
// a nil extractor and no error so the caller can decide how to handle
// missing configuration.
func NewGeminiExtractor(ctx context.Context, apiKey, modelName string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if modelName == "" {
		modelName = defaultModel
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	return &GeminiExtractor{client: client, model: model}, nil
}

// Close releases the underlying client.
func (e *GeminiExtractor) Close() {
	if e == nil || e.client == nil {
		return
	}
	if err := e.client.Close(); err != nil {
		log.Printf("[ai][close] failed to close gemini client err=%v", err)
	}
}

const systemPrompt = `You extract structured quotation details for a Malaysian truck dealer from customer messages and photos.

Respond ONLY with a single minified JSON object. No markdown ticks, no prose. Omit any field you are not confident about.

Fields:
{"doc_type":"sale|rental|refurbish","customer_name":"","customer_address":"","customer_contact":"","salesperson":"","truck_number":"","body_type":"","rental_period_type":"monthly|daily","contract_period":"","rental_amount":0,"security_deposit":0,"fee_amounts":{"road_tax":0,"insurance":0,"inspection":0,"sticker":0,"agreement":0},"line_items":[{"qty":1,"line_description":"","unit_price":0}]}

Rules:
- truck_number is a Malaysian plate like "WXY 1234".
- Amounts are plain numbers in Malaysian Ringgit, no currency symbols.
- For a photo of a business card or letterhead, fill customer_name and customer_address from it.`

func (e *GeminiExtractor) ExtractFromText(ctx context.Context, text string) (entities.ExtractedDetails, error) {
	if e == nil || e.model == nil {
		return entities.ExtractedDetails{}, nil
	}
	return e.generate(ctx, genai.Text(text))
}

func (e *GeminiExtractor) ExtractFromImage(ctx context.Context, image []byte, mimeType string) (entities.ExtractedDetails, error) {
	if e == nil || e.model == nil {
		return entities.ExtractedDetails{}, nil
	}
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" {
		format = "jpeg"
	}
	return e.generate(ctx,
		genai.ImageData(format, image),
		genai.Text("Extract the quotation details from this image."),
	)
}

func (e *GeminiExtractor) generate(ctx context.Context, parts ...genai.Part) (entities.ExtractedDetails, error) {
	resp, err := e.model.GenerateContent(ctx, parts...)
	if err != nil {
		log.Printf("[ai][generate] request failed err=%v", err)
		return entities.ExtractedDetails{}, nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Printf("[ai][generate] empty response")
		return entities.ExtractedDetails{}, nil
	}

	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		log.Printf("[ai][generate] unexpected part type %T", resp.Candidates[0].Content.Parts[0])
		return entities.ExtractedDetails{}, nil
	}

	details, ok := ParseModelJSON(string(textPart))
	if !ok {
		log.Printf("[ai][generate] unparseable model output len=%d", len(textPart))
		return entities.ExtractedDetails{}, nil
	}
	return details, nil
}

// ParseModelJSON recovers a JSON object from model output that may be
// wrapped in markdown fences or surrounded by prose. Three attempts: the
// raw text, the text with fences stripped, and the widest brace-delimited
// window.
func ParseModelJSON(raw string) (entities.ExtractedDetails, bool) {
	for _, candidate := range []string{raw, stripFences(raw), braceWindow(raw)} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		var details entities.ExtractedDetails
		if err := json.Unmarshal([]byte(candidate), &details); err == nil {
			return details, true
		}
	}
	return entities.ExtractedDetails{}, false
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return s
}

func braceWindow(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
