package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prvhq/prv/internal/link"
	"github.com/prvhq/prv/internal/prverr"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [ref]",
	Short: "Query the session linked to a commit",
	Long: `query resolves a commit reference (default HEAD) and prints the link
record already on disk for it, if one exists. It never runs the matcher:
use "prv link" to create a link.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the result as JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	ref := "HEAD"
	if len(args) == 1 {
		ref = args[0]
	}

	rt, err := newRuntime("query")
	if err != nil {
		return err
	}

	sha, _, err := rt.vcs.Resolve(ref)
	if err != nil {
		return prverr.Wrap(prverr.InvalidReference, fmt.Sprintf("resolving %q", ref), err)
	}

	store := link.NewStore(rt.vcs.Root(), rt.cfg.Store.Dir)
	l, ok, err := store.Load(sha)
	if err != nil {
		return prverr.Wrap(prverr.CorruptRecord, "loading link record for "+shortSHA(sha), err)
	}

	if !ok {
		short := shortSHA(sha)
		fmt.Printf("No link found for %s.\n", short)
		fmt.Printf("Run `prv link --commit %s` to create one.\n", short)
		return nil
	}

	if queryJSON {
		data, err := link.Serialize(l)
		if err != nil {
			return fmt.Errorf("serializing link: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Commit:     %s\n", shortSHA(l.CommitSHA))
	fmt.Printf("Session:    %d\n", l.SessionID)
	fmt.Printf("Confidence: %.0f%%\n", l.Confidence*100)
	fmt.Printf("Match step: %d\n", l.MatchStep)
	fmt.Printf("Linked at:  %s\n", l.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
	return nil
}
