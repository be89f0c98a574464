package matcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/prvhq/prv/internal/link"
)

// Outcome is the terminal state of one pipeline invocation.
type Outcome int

const (
	// Linked means a new record was written.
	Linked Outcome = iota
	// AlreadyLinked means the store already held this SHA; no re-match.
	AlreadyLinked
	// NoCandidate means the gate produced an empty candidate set.
	NoCandidate
	// NoMatch means candidates existed but no step produced a confident result.
	NoMatch
)

func (o Outcome) String() string {
	switch o {
	case Linked:
		return "linked"
	case AlreadyLinked:
		return "already-linked"
	case NoCandidate:
		return "no-candidate"
	case NoMatch:
		return "no-match"
	default:
		return "unknown"
	}
}

// Report carries the terminal state plus whatever evidence is useful
// to report it: the link on success, or a candidate count otherwise.
type Report struct {
	Outcome        Outcome
	Link           link.Link
	CandidateCount int
}

// VCS is the adapter contract the pipeline drives to resolve a commit
// and gather the evidence steps 1 and 2 need.
type VCS interface {
	Resolve(ref string) (sha string, authorTimeSeconds int64, err error)
	FilesChanged(sha string) ([]string, error)
	DiffLines(sha string) ([]string, error)
}

// Evidence decorates the gate's raw candidates with the file mentions
// and code lines steps 1 and 2 compare against. Implementations read
// message content through the session catalogue; the pipeline itself
// never touches the catalogue directly.
type Evidence interface {
	FileMentions(conv Conversation) ([]string, error)
	CodeLines(conv Conversation) ([]string, error)
}

// Pipeline composes the candidate gate and the three match steps into
// one `link` invocation: resolve, check idempotence, collect evidence,
// match, persist.
type Pipeline struct {
	Gate        ConversationStore
	VCS         VCS
	Evidence    Evidence
	Store       *link.Store
	Index       *link.Index
	RepoPath    string
	IndexWindow time.Duration
}

// Link runs one invocation of the pipeline for a commit reference.
// On the success path it writes the store record before the index, so
// a reader never observes an index entry absent from the store.
func (p *Pipeline) Link(ref string) (Report, error) {
	sha, authorTimeSeconds, err := p.VCS.Resolve(ref)
	if err != nil {
		return Report{}, fmt.Errorf("resolving %q: %w", ref, err)
	}

	if existing, ok, err := p.Store.Load(sha); err != nil {
		return Report{}, fmt.Errorf("checking existing link for %s: %w", sha, err)
	} else if ok {
		return Report{Outcome: AlreadyLinked, Link: existing}, nil
	}

	window := p.IndexWindow
	if window <= 0 {
		window = DefaultIndexWindow
	}

	commitTimeMs := authorTimeSeconds * 1000
	candidates, err := CandidateSessions(p.Gate, p.RepoPath, commitTimeMs, window)
	if err != nil {
		return Report{}, fmt.Errorf("collecting candidates: %w", err)
	}
	if len(candidates) == 0 {
		return Report{Outcome: NoCandidate}, nil
	}

	result, ok, err := p.match(candidates, sha)
	if err != nil {
		return Report{}, err
	}
	if !ok {
		return Report{Outcome: NoMatch, CandidateCount: len(candidates)}, nil
	}

	l := link.New(sha, result.Conversation.ID, result.Confidence, result.Step)
	if err := p.Store.Save(l); err != nil {
		return Report{}, fmt.Errorf("persisting link record: %w", err)
	}
	p.Index.Insert(l)
	// The index lives beside the links directory, in the store's own dir.
	if err := p.Index.Save(filepath.Dir(p.Store.BasePath()), "."); err != nil {
		return Report{}, fmt.Errorf("persisting link index: %w", err)
	}

	return Report{Outcome: Linked, Link: l}, nil
}

func (p *Pipeline) match(candidates []Conversation, sha string) (Result, bool, error) {
	if result, ok := MatchStep0(candidates); ok {
		return result, true, nil
	}

	commitFiles, err := p.VCS.FilesChanged(sha)
	if err != nil {
		return Result{}, false, fmt.Errorf("listing files changed by %s: %w", sha, err)
	}
	fileCandidates := make([]CandidateFiles, 0, len(candidates))
	for _, c := range candidates {
		mentions, err := p.Evidence.FileMentions(c)
		if err != nil {
			return Result{}, false, fmt.Errorf("collecting file mentions for conversation %d: %w", c.ID, err)
		}
		fileCandidates = append(fileCandidates, CandidateFiles{Conversation: c, MentionedFiles: mentions})
	}
	if result, ok := MatchStep1(fileCandidates, commitFiles); ok {
		return result, true, nil
	}

	diffLines, err := p.VCS.DiffLines(sha)
	if err != nil {
		return Result{}, false, fmt.Errorf("reading diff lines for %s: %w", sha, err)
	}
	codeCandidates := make([]CandidateCode, 0, len(candidates))
	for _, c := range candidates {
		lines, err := p.Evidence.CodeLines(c)
		if err != nil {
			return Result{}, false, fmt.Errorf("collecting code lines for conversation %d: %w", c.ID, err)
		}
		codeCandidates = append(codeCandidates, CandidateCode{Conversation: c, CodeLines: lines})
	}
	if result, ok := MatchStep2(codeCandidates, diffLines); ok {
		return result, true, nil
	}

	return Result{}, false, nil
}
