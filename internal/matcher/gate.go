package matcher

import "time"

// Workspace is the subset of a catalogue workspace the gate needs.
type Workspace struct {
	ID   int64
	Path string
}

// ConversationStore supplies the catalogue lookups the candidate gate
// needs. Implementations back onto the read-only session catalogue.
type ConversationStore interface {
	FindWorkspaceForPath(repoPath string) (*Workspace, error)
	ConversationsForWorkspace(workspaceID int64) ([]Conversation, error)
}

// DefaultIndexWindow is the candidate gate's time window when nothing
// overrides it. internal/config exposes this as MatcherConfig.IndexWindow.
const DefaultIndexWindow = 7 * 24 * time.Hour

// CandidateSessions returns the sessions that could plausibly have
// produced a commit at commitTimeMs (unix ms): the repo must resolve
// to a known workspace (hard gate), and the session's span must fall
// within window of the commit time (soft gate). window only narrows
// indexing; it never decides the match.
func CandidateSessions(store ConversationStore, repoPath string, commitTimeMs int64, window time.Duration) ([]Conversation, error) {
	ws, err := store.FindWorkspaceForPath(repoPath)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, nil
	}

	conversations, err := store.ConversationsForWorkspace(ws.ID)
	if err != nil {
		return nil, err
	}

	windowMs := window.Milliseconds()

	var candidates []Conversation
	for _, c := range conversations {
		sessionEnd := c.StartedAt
		if c.EndedAt != nil {
			sessionEnd = *c.EndedAt
		}
		startOK := commitTimeMs+windowMs >= c.StartedAt
		endOK := commitTimeMs-windowMs <= sessionEnd
		if startOK && endOK {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}
