//go:build cgo

package cass

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE workspaces (id INTEGER PRIMARY KEY, path TEXT NOT NULL);
CREATE TABLE conversations (
	id INTEGER PRIMARY KEY,
	workspace_id INTEGER,
	started_at INTEGER,
	ended_at INTEGER,
	title TEXT,
	source_path TEXT
);
CREATE TABLE messages (
	id INTEGER PRIMARY KEY,
	conversation_id INTEGER NOT NULL,
	idx INTEGER NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at INTEGER
);
CREATE TABLE snippets (
	id INTEGER PRIMARY KEY,
	message_id INTEGER NOT NULL,
	file_path TEXT,
	start_line INTEGER,
	end_line INTEGER,
	language TEXT,
	snippet_text TEXT
);
`

func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent_search.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO workspaces (id, path) VALUES (1, ?)`, filepath.Dir(path))
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO conversations (id, workspace_id, started_at, ended_at, title, source_path)
		VALUES (1, 1, 1000, 2000, 'first session', NULL),
		       (2, 1, 3000, NULL, 'ongoing session', NULL),
		       (3, NULL, 4000, 5000, 'orphaned', NULL)
	`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO messages (id, conversation_id, idx, role, content, created_at)
		VALUES (1, 1, 0, 'user', 'fix the bug in src/main.go', 1100),
		       (2, 1, 1, 'assistant', 'I updated src/main.go accordingly, here is a very long explanation padded to exceed one hundred characters for the sampling query', 1200)
	`)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO snippets (id, message_id, file_path, start_line, end_line, language, snippet_text)
		VALUES (1, 2, 'src/main.go', 10, 20, 'go', 'func main() {}')
	`)
	require.NoError(t, err)

	return path
}

func TestCatalogueSessionCount(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	count, err := cat.SessionCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCatalogueFindWorkspaceForPath(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	ws, err := cat.FindWorkspaceForPath(filepath.Dir(path))
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Equal(t, int64(1), ws.ID)
}

func TestCatalogueFindWorkspaceForPathNoMatch(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	ws, err := cat.FindWorkspaceForPath("/nonexistent/unrelated/path")
	require.NoError(t, err)
	assert.Nil(t, ws)
}

func TestCatalogueConversationsForWorkspaceFiltersNullWorkspace(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	convs, err := cat.ConversationsForWorkspace(1)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	for _, c := range convs {
		assert.Equal(t, int64(1), c.WorkspaceID)
	}
}

func TestCatalogueConversationsOrderedMostRecentFirst(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	convs, err := cat.ConversationsForWorkspace(1)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, int64(2), convs[0].ID)
	assert.Equal(t, int64(1), convs[1].ID)
}

func TestCatalogueConversationOngoingHasNilEndedAt(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	convs, err := cat.ConversationsForWorkspace(1)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Nil(t, convs[0].EndedAt)
	require.NotNil(t, convs[1].EndedAt)
	assert.Equal(t, int64(2000), *convs[1].EndedAt)
}

func TestCatalogueMessagesForConversationOrdered(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	msgs, err := cat.MessagesForConversation(1)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)
}

func TestCatalogueSnippetsForConversation(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	snippets, err := cat.SnippetsForConversation(1)
	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, "src/main.go", snippets[0].FilePath)
}

func TestCatalogueRecentAssistantMessage(t *testing.T) {
	path := seedDB(t)
	cat, err := Open(path)
	require.NoError(t, err)
	defer cat.Close()

	msg, err := cat.RecentAssistantMessage()
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "assistant", msg.Role)
}

func TestCatalogueOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	// sqlite3 with mode=ro on a missing file fails fast; either way this
	// must not be a nil error.
	assert.Error(t, err)
}
