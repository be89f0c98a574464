// Package vcs adapts a local git working tree to the narrow contract
// the matcher pipeline needs: resolve a ref to a commit, list the
// files it changed, and read its diff lines against its first parent.
package vcs

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Adapter resolves commit references against a git repository opened
// from a working directory.
type Adapter struct {
	repo *git.Repository
	root string
}

// Open opens the git repository containing (or rooted at) dir.
func Open(dir string) (*Adapter, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolving worktree root: %w", err)
	}
	return &Adapter{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the repository's working tree root, used as the repo
// path the candidate gate matches against the catalogue.
func (a *Adapter) Root() string {
	return a.root
}

// Resolve resolves ref (a SHA, branch, tag, or "HEAD") to a full commit
// SHA and its author time in Unix seconds.
func (a *Adapter) Resolve(ref string) (string, int64, error) {
	hash, err := a.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", 0, fmt.Errorf("resolving reference %q: %w", ref, err)
	}
	commit, err := a.repo.CommitObject(*hash)
	if err != nil {
		return "", 0, fmt.Errorf("loading commit %s: %w", hash.String(), err)
	}
	return commit.Hash.String(), commit.Author.When.Unix(), nil
}

// FilesChanged returns the repository-relative paths touched by sha,
// diffed against its first parent. A root commit (no parents) diffs
// against the empty tree, so every file it contains counts as changed.
func (a *Adapter) FilesChanged(sha string) ([]string, error) {
	commit, toTree, fromTree, err := a.commitAndTrees(sha)
	if err != nil {
		return nil, err
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, fmt.Errorf("diffing commit %s: %w", commit.Hash, err)
	}

	var files []string
	for _, change := range changes {
		if change.From.Name != "" {
			files = append(files, change.From.Name)
		}
		if change.To.Name != "" && change.To.Name != change.From.Name {
			files = append(files, change.To.Name)
		}
	}
	return files, nil
}

// DiffLines returns every '+'- or '-'-prefixed line in sha's unified
// diff against its first parent, trailing whitespace trimmed and the
// prefix character stripped.
func (a *Adapter) DiffLines(sha string) ([]string, error) {
	commit, toTree, fromTree, err := a.commitAndTrees(sha)
	if err != nil {
		return nil, err
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, fmt.Errorf("diffing commit %s: %w", commit.Hash, err)
	}

	patch, err := changes.Patch()
	if err != nil {
		return nil, fmt.Errorf("building patch for commit %s: %w", commit.Hash, err)
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(patch.String()))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			continue // file header, not a content line
		case strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-"):
			lines = append(lines, strings.TrimRight(line[1:], " \t"))
		}
	}
	return lines, scanner.Err()
}

func (a *Adapter) commitAndTrees(sha string) (*object.Commit, *object.Tree, *object.Tree, error) {
	commit, err := a.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading commit %s: %w", sha, err)
	}

	toTree, err := commit.Tree()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading tree for commit %s: %w", sha, err)
	}

	var fromTree *object.Tree
	if commit.NumParents() == 0 {
		fromTree = &object.Tree{}
	} else {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading parent of commit %s: %w", sha, err)
		}
		fromTree, err = parent.Tree()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading parent tree for commit %s: %w", sha, err)
		}
	}

	return commit, toTree, fromTree, nil
}
