package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prvhq/prv/internal/matcher"
)

var (
	linkCommitRef string
	linkJSON      bool
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link the current commit to the session that most plausibly produced it",
	Long: `link resolves a commit, checks whether it is already linked, gathers
candidate sessions from the session catalogue, and runs them through the
three-step matcher. A confident match is persisted as a durable link
record; anything less is reported without error, since "no match" is a
normal outcome of a link attempt.`,
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringVar(&linkCommitRef, "commit", "HEAD", "commit reference to link")
	linkCmd.Flags().BoolVar(&linkJSON, "json", false, "print the result as JSON")
}

type linkResult struct {
	Outcome        string  `json:"outcome"`
	CommitSHA      string  `json:"commit_sha,omitempty"`
	SessionID      int64   `json:"session_id,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	MatchStep      int     `json:"match_step,omitempty"`
	CandidateCount int     `json:"candidate_count,omitempty"`
}

func runLink(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime("link")
	if err != nil {
		return err
	}

	catalogue, err := openCatalogue(rt.cfg)
	if err != nil {
		return err
	}
	defer catalogue.Close()

	pipeline, err := buildPipeline(rt, catalogue)
	if err != nil {
		return err
	}

	report, err := pipeline.Link(linkCommitRef)
	if err != nil {
		return fmt.Errorf("linking %s: %w", linkCommitRef, err)
	}

	return printLinkResult(report)
}

// newLinkResult builds the printable result for a report, filling the
// link fields only for the linked and already-linked outcomes.
func newLinkResult(report matcher.Report) linkResult {
	result := linkResult{
		Outcome:        report.Outcome.String(),
		CandidateCount: report.CandidateCount,
	}
	if report.Outcome == matcher.Linked || report.Outcome == matcher.AlreadyLinked {
		result.CommitSHA = report.Link.CommitSHA
		result.SessionID = report.Link.SessionID
		result.Confidence = report.Link.Confidence
		result.MatchStep = report.Link.MatchStep
	}
	return result
}

func printLinkResult(report matcher.Report) error {
	result := newLinkResult(report)

	if linkJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	switch report.Outcome {
	case matcher.Linked:
		fmt.Printf("Linked %s to session %d (step %d, confidence %.0f%%)\n",
			shortSHA(result.CommitSHA), result.SessionID, result.MatchStep, result.Confidence*100)
	case matcher.AlreadyLinked:
		fmt.Printf("%s is already linked to session %d (step %d, confidence %.0f%%)\n",
			shortSHA(result.CommitSHA), result.SessionID, result.MatchStep, result.Confidence*100)
	case matcher.NoCandidate:
		fmt.Println("No candidate sessions found for this commit.")
	case matcher.NoMatch:
		fmt.Printf("No confident match among %d candidate session(s).\n", result.CandidateCount)
	}
	return nil
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
