// Package codec turns backend responses into storable payloads and back.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"encore.dev/rlog"

	"encore.app/proxy/model"
)

// DefaultMediaType is used for bodies that were expected to be JSON but
// could not be parsed, and for forwarding failures.
const DefaultMediaType = model.MediaTypeJSON

// Encode classifies a backend body by its declared content type.
func Encode(body []byte, contentType string) model.Payload {
	switch {
	case strings.Contains(contentType, model.MediaTypeJSON):
		canonical, err := canonicalJSON(body)
		if err != nil {
			rlog.Error("JSON decoding error, caching raw body", "error", err, "content_type", contentType)
			return textOrBinary(body, DefaultMediaType)
		}
		return model.JSONPayload(canonical)

	case contentType == "":
		return textOrBinary(body, model.MediaTypeText)

	case strings.Contains(contentType, "text/"):
		return textOrBinary(body, contentType)

	default:
		return model.BinaryPayload(body, contentType)
	}
}

// ForwardFailure is the payload cached and returned when the backend could
// not be reached at all.
func ForwardFailure(err error) model.Payload {
	msg := fmt.Sprintf("Error while forwarding request: %s", err)
	return model.TextPayload([]byte(msg), DefaultMediaType)
}

// canonicalJSON validates body and re-serializes it compactly with sorted
// object keys. Numbers keep their original digits.
func canonicalJSON(body []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// Only whitespace may follow the value. More alone misses a stray ']' or '}'.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	return json.Marshal(v)
}

// textOrBinary keeps body as text only when the store can hold it verbatim.
func textOrBinary(body []byte, mediaType string) model.Payload {
	if !utf8.Valid(body) || bytes.IndexByte(body, 0) >= 0 {
		return model.BinaryPayload(body, mediaType)
	}
	return model.TextPayload(body, mediaType)
}
