package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prvhq/prv/internal/codeblock"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug utilities",
}

var debugCassCmd = &cobra.Command{
	Use:   "cass",
	Short: "Show session catalogue status",
	Long: `debug cass opens the CASS session catalogue, reports workspace and
session counts, and demonstrates the code-block extractor against the
most recent long assistant message.`,
	RunE: runDebugCass,
}

func init() {
	debugCmd.AddCommand(debugCassCmd)
}

func runDebugCass(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime("debug cass")
	if err != nil {
		return err
	}

	catalogue, err := openCatalogue(rt.cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CASS not available: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nIs CASS installed? See: https://github.com/mburdo/cass")
		os.Exit(1)
	}
	defer catalogue.Close()

	count, err := catalogue.SessionCount()
	if err != nil {
		return fmt.Errorf("counting sessions: %w", err)
	}
	workspaces, err := catalogue.Workspaces()
	if err != nil {
		return fmt.Errorf("listing workspaces: %w", err)
	}

	fmt.Println("CASS Database Status")
	fmt.Println("====================")
	fmt.Printf("Location: %s\n", rt.cfg.Cass.DBPath)
	fmt.Println("Status: Connected")
	fmt.Printf("Workspaces: %d\n", len(workspaces))
	fmt.Printf("Sessions: %d\n", count)

	msg, err := catalogue.RecentAssistantMessage()
	if err != nil {
		return fmt.Errorf("finding recent assistant message: %w", err)
	}
	if msg == nil {
		fmt.Println("\nNo recent messages found for sample extraction.")
		return nil
	}

	blocks := codeblock.Extract(msg.Content)
	fmt.Printf("\nSample extraction (%d blocks from recent message):\n", len(blocks))
	if len(blocks) > 0 {
		block := blocks[0]
		lines := strings.Split(strings.TrimRight(block.Content, "\n"), "\n")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		preview := strings.Join(lines, "\n    ")
		language := block.Language
		if language == "" {
			language = "(none)"
		}
		fmt.Printf("  Language: %s\n", language)
		fmt.Printf("  Preview:\n    %s\n", preview)
	}

	return nil
}
