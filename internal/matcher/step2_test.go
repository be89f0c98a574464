package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockWithCode(id int64, lines ...string) CandidateCode {
	return CandidateCode{Conversation: mockConversation(id), CodeLines: lines}
}

func TestHashNormalizedStripsWhitespace(t *testing.T) {
	assert.Equal(t, hashNormalized("  let x = 1;  "), hashNormalized("let x = 1;"))
}

func TestHashNormalizedCollapsesInternalWhitespace(t *testing.T) {
	assert.Equal(t, hashNormalized("let   x   =   1;"), hashNormalized("let x = 1;"))
}

func TestMatchStep2HighOverlapMatches(t *testing.T) {
	candidates := []CandidateCode{mockWithCode(1, "line1", "line2", "line3", "line4", "other")}
	diffLines := []string{"line1", "line2", "line3", "line4", "line5"}

	result, ok := MatchStep2(candidates, diffLines)
	require.True(t, ok)
	assert.Greater(t, result.Confidence, 0.9)
	assert.Equal(t, 2, result.Step)
}

func TestMatchStep2LowOverlapNoMatch(t *testing.T) {
	candidates := []CandidateCode{mockWithCode(1, "line1", "other1", "other2")}
	diffLines := []string{"line1", "line2", "line3", "line4", "line5"}

	_, ok := MatchStep2(candidates, diffLines)
	assert.False(t, ok)
}

func TestMatchStep2Exactly50PercentNoMatch(t *testing.T) {
	candidates := []CandidateCode{mockWithCode(1, "line1", "line2")}
	diffLines := []string{"line1", "line2", "line3", "line4"}

	_, ok := MatchStep2(candidates, diffLines)
	assert.False(t, ok)
}

func TestMatchStep2BestMatchSelected(t *testing.T) {
	candidates := []CandidateCode{
		mockWithCode(1, "line1", "line2"),
		mockWithCode(2, "line1", "line2", "line3", "line4"),
		mockWithCode(3, "line1", "line2", "line3"),
	}
	diffLines := []string{"line1", "line2", "line3", "line4", "line5"}

	result, ok := MatchStep2(candidates, diffLines)
	require.True(t, ok)
	assert.Equal(t, int64(2), result.Conversation.ID)
}

func TestMatchStep2EmptyDiffReturnsFalse(t *testing.T) {
	candidates := []CandidateCode{mockWithCode(1, "line1")}
	_, ok := MatchStep2(candidates, nil)
	assert.False(t, ok)
}

func TestMatchStep2EmptyCandidatesReturnsFalse(t *testing.T) {
	_, ok := MatchStep2(nil, []string{"line1"})
	assert.False(t, ok)
}

func TestMatchStep2ConfidenceCalculation(t *testing.T) {
	candidates := []CandidateCode{mockWithCode(1, "a", "b", "c")}
	diffLines := []string{"a", "b", "c"}

	result, ok := MatchStep2(candidates, diffLines)
	require.True(t, ok)
	assert.InDelta(t, 1.0, result.Confidence, 0.001)
}

func TestMatchStep2WhitespaceNormalizationInMatching(t *testing.T) {
	candidates := []CandidateCode{mockWithCode(1, "  let x = 1;  ", "   let  y  =  2;   ")}
	diffLines := []string{"let x = 1;", "let y = 2;"}

	_, ok := MatchStep2(candidates, diffLines)
	assert.True(t, ok)
}
