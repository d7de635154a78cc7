package model

import "time"

// RemixResult is the response envelope for one transform request.
// It is ephemeral — never persisted, it only exists for the duration of a
// single request/response cycle. Lengths count Unicode code points, and the
// timestamp marshals as RFC 3339 (ISO 8601).
type RemixResult struct {
	RemixedText    string    `json:"remixedText"`
	OriginalLength int       `json:"originalLength"`
	RemixedLength  int       `json:"remixedLength"`
	Type           string    `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
}

// RemixType describes one supported transformation mode: a stable key the
// API accepts plus a human-readable description for the UI.
type RemixType struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}
