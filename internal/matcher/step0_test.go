package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConversation(id int64) Conversation {
	return Conversation{ID: id, WorkspaceID: 1, StartedAt: 1000, EndedAt: ptr(2000)}
}

func TestMatchStep0SingleCandidateHighConfidence(t *testing.T) {
	result, ok := MatchStep0([]Conversation{mockConversation(42)})
	require.True(t, ok)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, 0, result.Step)
	assert.Equal(t, int64(42), result.Conversation.ID)
}

func TestMatchStep0NoCandidatesReturnsFalse(t *testing.T) {
	_, ok := MatchStep0(nil)
	assert.False(t, ok)
}

func TestMatchStep0MultipleCandidatesReturnsFalse(t *testing.T) {
	_, ok := MatchStep0([]Conversation{mockConversation(1), mockConversation(2)})
	assert.False(t, ok)
}
