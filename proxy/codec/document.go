package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"encore.app/proxy/model"
)

// document is the JSONB shape of a stored response.
type document struct {
	Kind      model.PayloadKind `json:"kind"`
	Content   string            `json:"content"`
	MediaType string            `json:"media_type"`
}

// Marshal renders p as the document stored in the response column. Binary
// content is base64 encoded; text and JSON are stored as strings.
func Marshal(p model.Payload) ([]byte, error) {
	doc := document{Kind: p.Kind, MediaType: p.MediaType}

	switch p.Kind {
	case model.PayloadKindJSON, model.PayloadKindText:
		doc.Content = string(p.Content)
	case model.PayloadKindBinary:
		doc.Content = base64.StdEncoding.EncodeToString(p.Content)
	default:
		return nil, fmt.Errorf("unknown payload kind %q", p.Kind)
	}

	return json.Marshal(doc)
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(data []byte) (model.Payload, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Payload{}, fmt.Errorf("decode stored response: %w", err)
	}

	switch doc.Kind {
	case model.PayloadKindJSON:
		return model.JSONPayload([]byte(doc.Content)), nil
	case model.PayloadKindText:
		return model.TextPayload([]byte(doc.Content), doc.MediaType), nil
	case model.PayloadKindBinary:
		raw, err := base64.StdEncoding.DecodeString(doc.Content)
		if err != nil {
			return model.Payload{}, fmt.Errorf("decode binary content: %w", err)
		}
		return model.BinaryPayload(raw, doc.MediaType), nil
	default:
		return model.Payload{}, fmt.Errorf("unknown payload kind %q", doc.Kind)
	}
}
