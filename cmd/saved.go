package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiral/quizforge/internal/store"
	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSaved(cmd)
	},
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSaved(cmd)
	},
}

var savedRmCmd = &cobra.Command{
	Use:   "rm <quiz-id>",
	Short: "Remove a quiz from the saved list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quiz ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.RemoveSummary(context.Background(), id); err != nil {
			return fmt.Errorf("remove saved quiz: %w", err)
		}
		fmt.Printf("Removed quiz %d from saved list.\n", id)
		return nil
	},
}

func listSaved(cmd *cobra.Command) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summaries, err := s.ListSummaries(context.Background())
	if err != nil {
		return fmt.Errorf("list saved quizzes: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No saved quizzes. Finish a quiz and press S on the results screen to save it.")
		return nil
	}

	fmt.Printf("%-6s  %-12s  %s\n", "ID", "Created", "Topic")
	fmt.Println(strings.Repeat("─", 60))
	for _, sum := range summaries {
		fmt.Printf("%-6d  %-12s  %s\n", sum.ID, sum.CreatedAt.Local().Format("2006-01-02"), sum.Topic)
	}
	return nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedRmCmd)
}
