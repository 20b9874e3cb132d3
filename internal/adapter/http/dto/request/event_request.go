package request

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrEmptyPayload     = errors.New("empty event payload")
)

// Event types accepted by the conversation endpoint.
const (
	EventTypeText   = "text"
	EventTypeImage  = "image"
	EventTypeAction = "action"
)

// EventRequest is one inbound conversation event. Exactly one payload field
// is meaningful depending on Type: Text for "text", ImageBase64 (+MimeType)
// for "image", Token for "action".
type EventRequest struct {
	Type        string `json:"type" binding:"required"`
	Text        string `json:"text"`
	Token       string `json:"token"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Validate checks the type tag and that the matching payload is present.
func (r EventRequest) Validate() error {
	switch r.Type {
	case EventTypeText:
		if strings.TrimSpace(r.Text) == "" {
			return ErrEmptyPayload
		}
	case EventTypeImage:
		if strings.TrimSpace(r.ImageBase64) == "" {
			return ErrEmptyPayload
		}
	case EventTypeAction:
		if strings.TrimSpace(r.Token) == "" {
			return ErrEmptyPayload
		}
	default:
		return ErrUnknownEventType
	}
	return nil
}

// DecodeImage returns the raw image bytes and mime type, defaulting the
// latter to JPEG.
func (r EventRequest) DecodeImage() ([]byte, string, error) {
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		return nil, "", err
	}
	mime := strings.TrimSpace(r.MimeType)
	if mime == "" {
		mime = "image/jpeg"
	}
	return data, mime, nil
}
