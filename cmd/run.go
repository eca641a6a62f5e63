package cmd

import (
	"fmt"
	"os"

	"github.com/abiral/quizforge/internal/app"
	"github.com/abiral/quizforge/internal/feedback"
	"github.com/abiral/quizforge/internal/grader"
	"github.com/abiral/quizforge/internal/llm"
	"github.com/abiral/quizforge/internal/quizgen"
	"github.com/abiral/quizforge/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Store:  st,
		Grader: grader.NewService(st, st),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable. Saved quizzes still work.")
		opts.Feedback = feedback.NewCache(st, nil)
	} else {
		opts.Generator = quizgen.NewService(provider, st, quizgen.DefaultConfig())
		opts.Feedback = feedback.NewCache(st, feedback.NewLLMExplainer(provider, feedback.DefaultConfig()))
	}

	return app.Run(opts)
}
