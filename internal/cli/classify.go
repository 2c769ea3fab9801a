package cli

import (
	"github.com/spf13/cobra"

	"github.com/annekroon/respond-media/internal/engine"
	"github.com/annekroon/respond-media/internal/llm"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <file.csv>...",
	Short: "Screen articles for political corruption",
	Long: `Classify screens the translated_text column of each CSV file for
political corruption as the article's central topic.

Each article receives a tentative label (Yes / Mentioned but not central /
No / Unsure), a short rationale, a confidence score, and the key evidence
sentences, written to the llm_* columns.

Output goes to <file>_classified.csv with per-article checkpointing.

Example:
  respond classify Bulgaria_sample_250_translated.csv
  respond classify --model llama3:70b *.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := stageConfig(cmd)
		if err != nil {
			return err
		}

		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return err
		}

		stage := engine.NewClassifyStage(cfg, provider, newLogger(cfg))
		return runStage(cfg, stage, args)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	addStageFlags(classifyCmd)
}
