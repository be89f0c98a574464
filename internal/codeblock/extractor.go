// Package codeblock extracts code blocks from markdown-style chat text:
// fenced blocks, 4-space indented blocks, and unified-diff added lines.
// Extraction is total and pure — it never fails, and malformed input
// simply yields a shorter list.
package codeblock

import (
	"regexp"
	"strings"
)

// Block is a code block extracted from text.
type Block struct {
	Content    string
	Language   string // empty when absent
	SourceLine int    // 1-indexed line where the block starts: the fence opener, the first indented line, or the hunk header
}

var (
	fencedPattern = regexp.MustCompile("(?s)```(\\w*)\n(.*?)```")
	diffPattern   = regexp.MustCompile(`(?m)^@@[^@]+@@\n((?:[-+ ].*\n?)+)`)
)

// Extract parses text into an ordered sequence of code blocks. The three
// recognised kinds (fenced, indented, diff) are scanned independently
// over the same input; a block of one kind does not suppress a block of
// another kind even when their spans overlap — callers deduplicate if
// required.
func Extract(text string) []Block {
	blocks := extractFenced(text)
	blocks = append(blocks, extractIndented(text)...)
	blocks = append(blocks, extractDiff(text)...)
	return blocks
}

func sourceLineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

func extractFenced(text string) []Block {
	var blocks []Block
	for _, m := range fencedPattern.FindAllStringSubmatchIndex(text, -1) {
		start := m[0]
		lang := ""
		if m[2] != -1 && m[3] != -1 {
			lang = text[m[2]:m[3]]
		}
		body := ""
		if m[4] != -1 && m[5] != -1 {
			body = text[m[4]:m[5]]
		}
		blocks = append(blocks, Block{
			Content:    body,
			Language:   lang,
			SourceLine: sourceLineAt(text, start),
		})
	}
	return blocks
}

func extractIndented(text string) []Block {
	var blocks []Block
	lines := strings.Split(text, "\n")

	i := 0
	for i < len(lines) {
		if strings.HasPrefix(lines[i], "    ") && strings.TrimSpace(lines[i]) != "" {
			startLine := i + 1
			var body []string
			for i < len(lines) && (strings.HasPrefix(lines[i], "    ") || strings.TrimSpace(lines[i]) == "") {
				if strings.HasPrefix(lines[i], "    ") {
					body = append(body, lines[i][4:])
				} else {
					body = append(body, lines[i])
				}
				i++
			}
			for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
				body = body[:len(body)-1]
			}
			if len(body) > 0 {
				blocks = append(blocks, Block{
					Content:    strings.Join(body, "\n") + "\n",
					SourceLine: startLine,
				})
			}
			continue
		}
		i++
	}
	return blocks
}

func extractDiff(text string) []Block {
	var blocks []Block
	for _, m := range diffPattern.FindAllStringSubmatchIndex(text, -1) {
		start := m[0]
		hunk := text[m[2]:m[3]]

		var added []string
		for _, line := range strings.Split(hunk, "\n") {
			if strings.HasPrefix(line, "+") {
				added = append(added, line[1:])
			}
		}
		if len(added) == 0 {
			continue
		}
		blocks = append(blocks, Block{
			Content:    strings.Join(added, "\n") + "\n",
			Language:   "diff",
			SourceLine: sourceLineAt(text, start),
		})
	}
	return blocks
}
