package model

import (
	"net/http"
)

// InboundRequest is the buffered form of a request accepted by the proxy.
type InboundRequest struct {
	Method         string
	Path           string
	RawQuery       string
	Header         http.Header
	Body           []byte
	IdempotencyKey string
}

// CacheStatus reports whether an Outcome was replayed, freshly stored or not keyed at all.
type CacheStatus string

const (
	CacheStatusHit    CacheStatus = "HIT"
	CacheStatusMiss   CacheStatus = "MISS"
	CacheStatusBypass CacheStatus = "BYPASS"
)

// Outcome is what the proxy writes back to the client.
type Outcome struct {
	Payload     Payload
	CacheStatus CacheStatus
}
