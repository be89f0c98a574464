package cass

import (
	"regexp"
	"strings"

	"github.com/prvhq/prv/internal/codeblock"
	"github.com/prvhq/prv/internal/matcher"
)

// filePathPattern matches a delimited substring shaped like a file path:
// word characters, dots, dashes, and slashes, with a trailing extension.
// Delimiters (whitespace, backticks, quotes, parens, string edges) sit
// in non-capturing groups around the single capture group, which holds
// just the candidate path.
var filePathPattern = regexp.MustCompile("(?:^|[\\s`\"'(])([A-Za-z0-9_\\-./]+\\.[A-Za-z0-9]+)(?:$|[\\s`\"'):,])")

var wellKnownExtensions = map[string]bool{
	".rs": true, ".toml": true, ".json": true, ".md": true,
	".ts": true, ".js": true, ".py": true,
}

// Evidence implements the matcher's Evidence contract over the session
// catalogue: file mentions scanned from message text per the upstream
// adapter contract, and code lines re-extracted from assistant messages
// via the same block extractor the matcher compares diffs against.
type Evidence struct {
	catalogue *Catalogue
}

// NewEvidence returns an Evidence backed by the given catalogue.
func NewEvidence(catalogue *Catalogue) *Evidence {
	return &Evidence{catalogue: catalogue}
}

// FileMentions returns the deduplicated set of file paths mentioned
// across a conversation's messages, any role.
func (e *Evidence) FileMentions(conv matcher.Conversation) ([]string, error) {
	messages, err := e.catalogue.MessagesForConversation(conv.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var mentions []string
	for _, m := range messages {
		for _, path := range extractFileMentions(m.Content) {
			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				mentions = append(mentions, path)
			}
		}
	}
	return mentions, nil
}

// CodeLines returns every line of every code block extracted from the
// conversation's assistant messages. User messages are excluded: code
// the user pasted in did not originate with the session.
func (e *Evidence) CodeLines(conv matcher.Conversation) ([]string, error) {
	messages, err := e.catalogue.MessagesForConversation(conv.ID)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, m := range messages {
		if m.Role != "assistant" {
			continue
		}
		for _, block := range codeblock.Extract(m.Content) {
			lines = append(lines, strings.Split(strings.TrimRight(block.Content, "\n"), "\n")...)
		}
	}
	return lines, nil
}

func extractFileMentions(text string) []string {
	seen := make(map[string]struct{})
	var paths []string
	// Each search resumes at the end of the previous path, not after its
	// trailing delimiter, so that delimiter can also open the next path
	// ("a.rs b.rs" yields both).
	for start := 0; start < len(text); {
		loc := filePathPattern.FindStringSubmatchIndex(text[start:])
		if loc == nil {
			break
		}
		path := text[start+loc[2] : start+loc[3]]
		start += loc[3]
		if !looksLikeFilePath(path) {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}
	return paths
}

// looksLikeFilePath applies the second half of the upstream contract:
// having matched the shape, a candidate is only kept if it contains a
// slash or ends in one of the well-known source extensions.
func looksLikeFilePath(path string) bool {
	if strings.Contains(path, "/") {
		return true
	}
	dot := strings.LastIndex(path, ".")
	if dot == -1 {
		return false
	}
	return wellKnownExtensions[path[dot:]]
}
