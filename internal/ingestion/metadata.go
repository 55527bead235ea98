package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a job posting's text came from.
type Metadata struct {
	URL       string `json:"url,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // SHA256 of the cleaned text
	Platform  string `json:"platform,omitempty"`
	// Rendered is set when the text came from a headless browser render.
	Rendered  bool `json:"rendered,omitempty"`
	FromCache bool `json:"from_cache,omitempty"`
}

// NewMetadata creates Metadata for content stamped with the current time.
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
