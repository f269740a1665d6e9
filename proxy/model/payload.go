package model

// PayloadKind tags how a response body is held in a CacheRecord.
type PayloadKind string

const (
	PayloadKindJSON   PayloadKind = "json"
	PayloadKindText   PayloadKind = "text"
	PayloadKindBinary PayloadKind = "binary"
)

// Payload is a replayable response body together with the media type to reapply.
// Content holds canonical JSON text for PayloadKindJSON, UTF-8 text for
// PayloadKindText and raw bytes for PayloadKindBinary.
type Payload struct {
	Kind      PayloadKind `json:"kind"`
	Content   []byte      `json:"content"`
	MediaType string      `json:"media_type"`
}

// JSONPayload wraps already canonical JSON text.
func JSONPayload(canonical []byte) Payload {
	return Payload{Kind: PayloadKindJSON, Content: canonical, MediaType: MediaTypeJSON}
}

// TextPayload wraps a UTF-8 body served under mediaType.
func TextPayload(text []byte, mediaType string) Payload {
	return Payload{Kind: PayloadKindText, Content: text, MediaType: mediaType}
}

// BinaryPayload wraps an opaque body served under mediaType.
func BinaryPayload(data []byte, mediaType string) Payload {
	return Payload{Kind: PayloadKindBinary, Content: data, MediaType: mediaType}
}

const (
	MediaTypeJSON = "application/json"
	MediaTypeText = "text/plain"
)
