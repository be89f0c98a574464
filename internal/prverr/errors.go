// Package prverr defines the error taxonomy the prv CLI reports: a
// small set of kinds, each mapped to the exit code a shell script can
// branch on, and sentinel causes the matcher pipeline and its adapters
// wrap with context.
package prverr

import (
	"errors"
	"fmt"
)

// Kind classifies why a prv operation did not complete as a clean
// link. Kind values ending in a "no match found" outcome are not
// failures of the tool itself and exit 0; the rest exit 1.
type Kind int

const (
	// NoRepository means the current directory is not inside a git
	// working tree.
	NoRepository Kind = iota
	// CatalogueUnavailable means the CASS session catalogue could not
	// be opened.
	CatalogueUnavailable
	// InvalidReference means the given commit ref does not resolve.
	InvalidReference
	// NoWorkspace means the repository has no matching workspace in
	// the catalogue.
	NoWorkspace
	// NoCandidate means a workspace exists but no conversation falls
	// inside the candidate gate's time window.
	NoCandidate
	// NoConfidentMatch means candidates existed but none of the three
	// matcher steps produced a confident match.
	NoConfidentMatch
	// PersistenceError means writing the link record or index failed.
	PersistenceError
	// CorruptRecord means an on-disk link record failed to parse.
	CorruptRecord
)

// String returns the kind's lowercase, hyphenated name.
func (k Kind) String() string {
	switch k {
	case NoRepository:
		return "no-repository"
	case CatalogueUnavailable:
		return "catalogue-unavailable"
	case InvalidReference:
		return "invalid-reference"
	case NoWorkspace:
		return "no-workspace"
	case NoCandidate:
		return "no-candidate"
	case NoConfidentMatch:
		return "no-confident-match"
	case PersistenceError:
		return "persistence-error"
	case CorruptRecord:
		return "corrupt-record"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code this kind should produce.
// NoWorkspace, NoCandidate, and NoConfidentMatch are the CLI's
// "success, no match" outcomes and exit 0; every other kind is fatal.
func (k Kind) ExitCode() int {
	switch k {
	case NoWorkspace, NoCandidate, NoConfidentMatch:
		return 0
	default:
		return 1
	}
}

// Sentinel causes, wrapped by Wrap into a kind-carrying *Error.
var (
	ErrNoRepository         = errors.New("not inside a git repository")
	ErrCatalogueUnavailable = errors.New("session catalogue is unavailable")
	ErrInvalidReference     = errors.New("commit reference does not resolve")
	ErrNoWorkspace          = errors.New("no catalogue workspace matches this repository")
	ErrNoCandidate          = errors.New("no conversation falls within the candidate window")
	ErrNoConfidentMatch     = errors.New("no matcher step produced a confident match")
	ErrPersistence          = errors.New("failed to persist link record")
	ErrCorruptRecord        = errors.New("link record is corrupt")
)

// Error is a kind-tagged error: Kind drives the CLI's exit code and
// message framing, Cause is the underlying error (possibly nil for a
// bare sentinel), and Context adds a short human-readable detail.
type Error struct {
	Kind    Kind
	Context string
	Cause   error
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %s", e.Context, e.Cause.Error())
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap builds a *Error of the given kind, wrapping cause with a
// %w-style chain so errors.Is still matches the kind's sentinel and
// whatever cause itself wraps. context is a short human phrase
// describing what was being attempted, e.g. "opening catalogue at
// /home/x/.cass/agent_search.db".
func Wrap(kind Kind, context string, cause error) error {
	sentinel := sentinelFor(kind)
	if cause == nil {
		cause = sentinel
	} else {
		cause = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &Error{Kind: kind, Context: context, Cause: cause}
}

func sentinelFor(kind Kind) error {
	switch kind {
	case NoRepository:
		return ErrNoRepository
	case CatalogueUnavailable:
		return ErrCatalogueUnavailable
	case InvalidReference:
		return ErrInvalidReference
	case NoWorkspace:
		return ErrNoWorkspace
	case NoCandidate:
		return ErrNoCandidate
	case NoConfidentMatch:
		return ErrNoConfidentMatch
	case PersistenceError:
		return ErrPersistence
	case CorruptRecord:
		return ErrCorruptRecord
	default:
		return errors.New("unknown error")
	}
}

// KindOf extracts the Kind of err if it (or something it wraps) is a
// *Error, and whether one was found.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
