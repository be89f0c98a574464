package cass

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/prvhq/prv/internal/matcher"
)

// Catalogue is a read-only handle onto the CASS SQLite database. It
// never writes: the catalogue is maintained by a separate process.
type Catalogue struct {
	db *sql.DB
}

// Open opens the catalogue database at path, read-only, refusing
// writes at the driver level since this process only ever queries it.
func Open(path string) (*Catalogue, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&immutable=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening CASS db at %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging CASS db at %s: %w", path, err)
	}
	return &Catalogue{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Catalogue) Close() error {
	return c.db.Close()
}

// SessionCount returns the total number of conversations recorded.
func (c *Catalogue) SessionCount() (int64, error) {
	var count int64
	err := c.db.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&count)
	return count, err
}

// Workspaces returns every workspace the catalogue knows about.
func (c *Catalogue) Workspaces() ([]Workspace, error) {
	rows, err := c.db.Query("SELECT id, path FROM workspaces")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Workspace
	for rows.Next() {
		var w Workspace
		if err := rows.Scan(&w.ID, &w.Path); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// FindWorkspaceForPath returns the workspace whose canonical path
// matches repoPath, or nil if none does. Both paths are resolved with
// filepath.Abs and filepath.EvalSymlinks before comparison so that
// trailing slashes and symlinked checkouts don't defeat the match.
func (c *Catalogue) FindWorkspaceForPath(repoPath string) (*matcher.Workspace, error) {
	canonical, err := canonicalPath(repoPath)
	if err != nil {
		return nil, fmt.Errorf("canonicalising repo path %s: %w", repoPath, err)
	}

	workspaces, err := c.Workspaces()
	if err != nil {
		return nil, err
	}

	for _, ws := range workspaces {
		wsCanonical, err := canonicalPath(ws.Path)
		if err != nil {
			continue // unreadable workspace path, not a match candidate
		}
		if wsCanonical == canonical {
			return &matcher.Workspace{ID: ws.ID, Path: ws.Path}, nil
		}
	}
	return nil, nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil // path may not exist yet; fall back to the absolute form
	}
	return resolved, nil
}

// ConversationsForWorkspace returns the workspace's conversations most
// recent first, filtered to rows with a known workspace id and start
// time — the matcher's input invariant (§3).
func (c *Catalogue) ConversationsForWorkspace(workspaceID int64) ([]matcher.Conversation, error) {
	rows, err := c.db.Query(`
		SELECT id, workspace_id, started_at, ended_at
		FROM conversations
		WHERE workspace_id = ? AND started_at IS NOT NULL
		ORDER BY started_at DESC
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []matcher.Conversation
	for rows.Next() {
		var conv matcher.Conversation
		var endedAt sql.NullInt64
		if err := rows.Scan(&conv.ID, &conv.WorkspaceID, &conv.StartedAt, &endedAt); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			conv.EndedAt = &endedAt.Int64
		}
		out = append(out, conv)
	}
	return out, rows.Err()
}

// MessagesForConversation returns a conversation's messages in
// in-conversation order.
func (c *Catalogue) MessagesForConversation(conversationID int64) ([]Message, error) {
	rows, err := c.db.Query(`
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY idx ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var createdAt sql.NullInt64
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			m.CreatedAt = &createdAt.Int64
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SnippetsForConversation returns the code snippets the catalogue
// extracted from a conversation's messages, in message then snippet
// order. Part of the catalogue contract; unused by the matcher (see
// internal/codeblock for the re-extraction the matcher relies on
// instead).
func (c *Catalogue) SnippetsForConversation(conversationID int64) ([]Snippet, error) {
	rows, err := c.db.Query(`
		SELECT s.id, s.message_id, s.file_path, s.start_line, s.end_line, s.language, s.snippet_text
		FROM snippets s
		JOIN messages m ON s.message_id = m.id
		WHERE m.conversation_id = ?
		ORDER BY m.idx ASC, s.id ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snippet
	for rows.Next() {
		var s Snippet
		var filePath, language, text sql.NullString
		var start, end sql.NullInt64
		if err := rows.Scan(&s.ID, &s.MessageID, &filePath, &start, &end, &language, &text); err != nil {
			return nil, err
		}
		s.FilePath = filePath.String
		s.Language = language.String
		s.SnippetText = text.String
		if start.Valid {
			v := int(start.Int64)
			s.StartLine = &v
		}
		if end.Valid {
			v := int(end.Int64)
			s.EndLine = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RecentAssistantMessage returns the most recent assistant message
// longer than 100 characters, for the `debug cass` extractor demo. nil
// if none exists.
func (c *Catalogue) RecentAssistantMessage() (*Message, error) {
	row := c.db.QueryRow(`
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE role = 'assistant' AND length(content) > 100
		ORDER BY created_at DESC
		LIMIT 1
	`)

	var m Message
	var createdAt sql.NullInt64
	switch err := row.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &createdAt); err {
	case nil:
		if createdAt.Valid {
			m.CreatedAt = &createdAt.Int64
		}
		return &m, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}
