package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/annekroon/respond-media/internal/engine"
	"github.com/annekroon/respond-media/internal/model"
)

var (
	llmProvider string
	llmModel    string
	llmBaseURL  string
	noProgress  bool
)

// addStageFlags registers the flags shared by all annotation stages
func addStageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (ollama, openai, anthropic)")
	cmd.Flags().StringVar(&llmModel, "model", "", "model name override")
	cmd.Flags().StringVar(&llmBaseURL, "base-url", "", "model service base URL")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
}

// stageConfig loads the configuration and applies stage flag overrides
func stageConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("provider") {
		cfg.LLM.Provider = llmProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model = llmModel
	}
	if cmd.Flags().Changed("base-url") {
		cfg.LLM.BaseURL = llmBaseURL
	}
	if noProgress {
		cfg.Output.Progress = false
	}
	return cfg, nil
}

// runStage executes one stage over every CSV argument. Files already
// carrying their final artifact are skipped inside the engine; a failing
// file stops the batch so partial state stays inspectable.
func runStage(cfg *model.Config, stage engine.Stage, files []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(cfg, newLogger(cfg))

	for _, f := range files {
		if !strings.HasSuffix(f, ".csv") {
			return fmt.Errorf("not a CSV file: %s", f)
		}
		if err := eng.Run(ctx, stage, f); err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}
