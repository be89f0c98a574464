package link

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsFields(t *testing.T) {
	l := New("abc123", 42, 0.9, 0)
	assert.Equal(t, "abc123", l.CommitSHA)
	assert.Equal(t, int64(42), l.SessionID)
	assert.Equal(t, 0.9, l.Confidence)
	assert.Equal(t, 0, l.MatchStep)
	assert.WithinDuration(t, time.Now().UTC(), l.CreatedAt, time.Second)
}

func TestSerializeRoundTrip(t *testing.T) {
	l := New("abc123def456", 42, 0.95, 1)

	data, err := Serialize(l)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, l.CommitSHA, parsed.CommitSHA)
	assert.Equal(t, l.SessionID, parsed.SessionID)
	assert.Equal(t, l.Confidence, parsed.Confidence)
	assert.Equal(t, l.MatchStep, parsed.MatchStep)
	assert.True(t, l.CreatedAt.Equal(parsed.CreatedAt))
}

func TestSerializeFieldOrderAndNames(t *testing.T) {
	l := Link{
		CommitSHA:  "abc123",
		SessionID:  42,
		Confidence: 0.9,
		MatchStep:  0,
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := Serialize(l)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"commit_sha": "abc123"`)
	assert.Contains(t, s, `"session_id": 42`)
	assert.Contains(t, s, `"confidence": 0.9`)
	assert.Contains(t, s, `"match_step": 0`)
	assert.Contains(t, s, `"created_at"`)

	// commit_sha must precede session_id, which must precede confidence, etc.
	shaIdx := indexOf(s, "commit_sha")
	sessionIdx := indexOf(s, "session_id")
	confIdx := indexOf(s, "confidence")
	stepIdx := indexOf(s, "match_step")
	createdIdx := indexOf(s, "created_at")
	assert.True(t, shaIdx < sessionIdx)
	assert.True(t, sessionIdx < confIdx)
	assert.True(t, confIdx < stepIdx)
	assert.True(t, stepIdx < createdIdx)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestEqualityStructural(t *testing.T) {
	ts := time.Now().UTC()
	a := Link{CommitSHA: "abc", SessionID: 1, Confidence: 0.9, MatchStep: 0, CreatedAt: ts}
	b := Link{CommitSHA: "abc", SessionID: 1, Confidence: 0.9, MatchStep: 0, CreatedAt: ts}
	assert.Equal(t, a, b)
}
