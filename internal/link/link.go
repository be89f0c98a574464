// Package link defines the durable association between a git commit and
// the AI-assistant session that most plausibly produced it.
package link

import (
	"encoding/json"
	"time"
)

// Link is the durable record produced by a confident match. It is an
// immutable value: created once, never mutated, and never deleted by
// the core.
type Link struct {
	CommitSHA  string    `json:"commit_sha"`
	SessionID  int64     `json:"session_id"`
	Confidence float64   `json:"confidence"`
	MatchStep  int       `json:"match_step"`
	CreatedAt  time.Time `json:"created_at"`
}

// New creates a Link stamped with the current UTC time.
func New(commitSHA string, sessionID int64, confidence float64, step int) Link {
	return Link{
		CommitSHA:  commitSHA,
		SessionID:  sessionID,
		Confidence: confidence,
		MatchStep:  step,
		CreatedAt:  time.Now().UTC(),
	}
}

// Serialize renders the Link as pretty-printed, canonically ordered JSON.
func Serialize(l Link) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Parse reconstructs a Link from its serialized form.
func Parse(data []byte) (Link, error) {
	var l Link
	if err := json.Unmarshal(data, &l); err != nil {
		return Link{}, err
	}
	return l, nil
}
