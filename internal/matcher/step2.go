package matcher

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// CandidateCode pairs a conversation with the lines found in its code
// blocks, for Step 2 line-hash overlap matching.
type CandidateCode struct {
	Conversation Conversation
	CodeLines    []string
}

func hashNormalized(line string) uint64 {
	normalized := strings.Join(strings.Fields(line), " ")
	return xxhash.Sum64String(normalized)
}

// MatchStep2 disambiguates by normalised line-hash overlap between a
// commit's diff lines and each candidate's code block lines. The
// candidate with the highest overlap ratio wins, and only if that
// ratio exceeds 50%. Confidence is 0.8 plus 0.2 times the ratio, so
// a perfect match tops out at 1.0.
func MatchStep2(candidates []CandidateCode, diffLines []string) (Result, bool) {
	if len(diffLines) == 0 || len(candidates) == 0 {
		return Result{}, false
	}

	diffHashes := make(map[uint64]struct{}, len(diffLines))
	for _, l := range diffLines {
		diffHashes[hashNormalized(l)] = struct{}{}
	}

	var best Result
	found := false

	for _, c := range candidates {
		sessionHashes := make(map[uint64]struct{}, len(c.CodeLines))
		for _, l := range c.CodeLines {
			sessionHashes[hashNormalized(l)] = struct{}{}
		}

		intersection := 0
		for h := range diffHashes {
			if _, ok := sessionHashes[h]; ok {
				intersection++
			}
		}
		ratio := float64(intersection) / float64(len(diffHashes))

		if ratio > 0.5 {
			confidence := 0.8 + ratio*0.2
			if !found || confidence > best.Confidence {
				best = Result{Conversation: c.Conversation, Confidence: confidence, Step: 2}
				found = true
			}
		}
	}

	return best, found
}
