package model

import (
	"time"
)

// CacheRecord is one memoized response, keyed by the idempotency key.
// Records are written once and never updated.
type CacheRecord struct {
	ID          string    `json:"id"`
	Response    Payload   `json:"response"`
	RequestHash string    `json:"request_hash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
