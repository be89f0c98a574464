package matcher

// CandidateFiles pairs a conversation with the file paths mentioned
// within it, for Step 1 overlap matching.
type CandidateFiles struct {
	Conversation   Conversation
	MentionedFiles []string
}

// MatchStep1 disambiguates by file-path overlap between commitFiles and
// the files mentioned in each candidate, in order. The first candidate
// with any overlap wins; confidence gets a +0.05-per-file bonus capped
// at three files (+0.15 max).
func MatchStep1(candidates []CandidateFiles, commitFiles []string) (Result, bool) {
	if len(commitFiles) == 0 {
		return Result{}, false
	}

	commitSet := make(map[string]struct{}, len(commitFiles))
	for _, f := range commitFiles {
		commitSet[f] = struct{}{}
	}

	for _, c := range candidates {
		overlap := 0
		for _, f := range c.MentionedFiles {
			if _, ok := commitSet[f]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			capped := overlap
			if capped > 3 {
				capped = 3
			}
			bonus := float64(capped) * 0.05
			return Result{
				Conversation: c.Conversation,
				Confidence:   0.85 + bonus,
				Step:         1,
			}, true
		}
	}
	return Result{}, false
}
