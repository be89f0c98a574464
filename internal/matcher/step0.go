package matcher

// MatchStep0 returns the single candidate with high confidence when
// the gate narrowed the field to exactly one session. With zero or
// several candidates there is nothing to shortcut, so callers must
// escalate to Step 1.
func MatchStep0(candidates []Conversation) (Result, bool) {
	if len(candidates) != 1 {
		return Result{}, false
	}
	return Result{
		Conversation: candidates[0],
		Confidence:   0.9,
		Step:         0,
	}, true
}
