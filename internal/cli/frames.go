package cli

import (
	"github.com/spf13/cobra"

	"github.com/annekroon/respond-media/internal/engine"
	"github.com/annekroon/respond-media/internal/llm"
)

var (
	withHighlights bool
	taxonomyNames  []string
)

// framesCmd represents the frames command
var framesCmd = &cobra.Command{
	Use:   "frames <file.csv>...",
	Short: "Annotate articles against the frame taxonomy",
	Long: `Frames annotates the translated_text column of each CSV file against
the configured corruption-frame taxonomy in a single model call per
article.

Each taxonomy position gets four columns (frame_<n>_name, _rationale,
_confidence, _evidence); frames the model finds no evidence for leave
their slots empty. Low-confidence annotations carry a verification note
in the rationale.

Output goes to <file>_frames.csv with per-article checkpointing. Files
whose final output already exists are skipped.

Example:
  respond frames Bulgaria_sample_250_translated.csv
  respond frames --highlights Italy_sample.csv Netherlands_sample.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := stageConfig(cmd)
		if err != nil {
			return err
		}
		if withHighlights {
			cfg.Pipeline.HighlightColumn = true
		}
		if len(taxonomyNames) > 0 {
			cfg.Taxonomy = taxonomyNames
		}

		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return err
		}

		stage := engine.NewFramesStage(cfg, provider, newLogger(cfg))
		return runStage(cfg, stage, args)
	},
}

func init() {
	rootCmd.AddCommand(framesCmd)
	addStageFlags(framesCmd)
	framesCmd.Flags().BoolVar(&withHighlights, "highlights", false, "add a highlighted_text column with evidence spans and key terms marked")
	framesCmd.Flags().StringSliceVar(&taxonomyNames, "taxonomy", nil, "ordered frame names replacing the configured taxonomy (repeatable)")
}
