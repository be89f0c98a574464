package link

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveAndLoad(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")
	l := New("abc123def", 42, 0.9, 0)

	require.NoError(t, s.Save(l))
	loaded, ok, err := s.Load("abc123def")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, l.CommitSHA, loaded.CommitSHA)
	assert.Equal(t, l.SessionID, loaded.SessionID)
	assert.Equal(t, l.Confidence, loaded.Confidence)
	assert.Equal(t, l.MatchStep, loaded.MatchStep)
}

func TestStoreLoadNonexistent(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")
	_, ok, err := s.Load("nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreExists(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")
	l := New("abc123def", 42, 0.9, 0)

	assert.False(t, s.Exists("abc123def"))
	require.NoError(t, s.Save(l))
	assert.True(t, s.Exists("abc123def"))
}

func TestStorePathStructure(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")
	require.NoError(t, s.Save(New("abcdef123", 1, 1.0, 0)))

	path := filepath.Join(tmp, ".prv", "links", "ab", "abcdef123.json")
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreDirectoryCreatedOnSave(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")

	_, err := os.Stat(s.BasePath())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Save(New("xyz789", 1, 1.0, 0)))

	_, err = os.Stat(s.BasePath())
	assert.NoError(t, err)
}

func TestStorePrettyJSON(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")
	require.NoError(t, s.Save(New("abc123", 42, 0.9, 0)))

	content, err := os.ReadFile(filepath.Join(tmp, ".prv", "links", "ab", "abc123.json"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "\n")
	assert.Contains(t, string(content), "commit_sha")
	assert.Contains(t, string(content), "session_id")
}

func TestStoreMultipleLinksSamePrefix(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")

	l1 := New("aaa111", 1, 0.8, 0)
	l2 := New("bbb222", 2, 0.9, 1)
	l3 := New("aab333", 3, 1.0, 2)

	require.NoError(t, s.Save(l1))
	require.NoError(t, s.Save(l2))
	require.NoError(t, s.Save(l3))

	a, _, err := s.Load("aaa111")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.SessionID)

	b, _, err := s.Load("bbb222")
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.SessionID)

	c, _, err := s.Load("aab333")
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.SessionID)
}

func TestStoreShortSHAUsesFullAsPrefix(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")
	require.NoError(t, s.Save(New("a", 1, 1.0, 0)))

	path := filepath.Join(tmp, ".prv", "links", "a", "a.json")
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestStoreCorruptRecordFailsToParse(t *testing.T) {
	tmp := t.TempDir()
	s := NewStore(tmp, "")
	dir := filepath.Join(tmp, ".prv", "links", "ab")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123.json"), []byte("not json"), 0o644))

	_, _, err := s.Load("abc123")
	assert.Error(t, err)
}
