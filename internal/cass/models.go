// Package cass provides read-only access to the session catalogue: a
// SQLite database, maintained outside this process, of AI-assistant
// workspaces, conversations, messages, and the code snippets the
// catalogue itself extracted from them.
package cass

// Workspace is a project directory tracked by the catalogue.
type Workspace struct {
	ID   int64
	Path string
}

// Conversation is an AI-assistant chat bound to a workspace. WorkspaceID
// and StartedAt are nullable in the underlying schema; rows missing
// either are filtered out by ConversationsForWorkspace before they
// reach the matcher, per the matcher's input invariant.
type Conversation struct {
	ID          int64
	WorkspaceID int64
	StartedAt   int64
	EndedAt     *int64
	Title       string
	SourcePath  string
}

// Message is one turn in a conversation.
type Message struct {
	ID             int64
	ConversationID int64
	Role           string
	Content        string
	CreatedAt      *int64
}

// Snippet is a code excerpt the catalogue extracted from a message.
// Part of the catalogue contract but unused by the matcher directly:
// it re-extracts code from message content to keep parity with the
// commit diff (see internal/codeblock).
type Snippet struct {
	ID          int64
	MessageID   int64
	FilePath    string
	StartLine   *int
	EndLine     *int
	Language    string
	SnippetText string
}
