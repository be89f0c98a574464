// Package matcher implements the cascading commit-to-session matcher:
// a single candidate shortcut, then file-path overlap, then normalised
// line-hash overlap. Each step escalates only when the previous one
// could not produce a confident match.
package matcher

// Conversation is the subset of a catalogue conversation the matcher
// needs to reason about candidacy and confidence.
type Conversation struct {
	ID          int64
	WorkspaceID int64
	StartedAt   int64 // unix ms
	EndedAt     *int64
}

// Result is a successful match: the conversation most likely to have
// produced the commit, the step that found it, and its confidence.
type Result struct {
	Conversation Conversation
	Confidence   float64
	Step         int
}
