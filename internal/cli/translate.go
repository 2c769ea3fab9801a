package cli

import (
	"github.com/spf13/cobra"

	"github.com/annekroon/respond-media/internal/engine"
)

var translationModel string

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate <file.csv>...",
	Short: "Translate article text into English",
	Long: `Translate renders the combined_text column of each CSV file into
English, writing the result to translated_text.

Articles are split into paragraph-aligned chunks before translation.
English sources are copied through untouched; a chunk whose translation
fails its quality checks is replaced by a failure marker so the rest of
the article survives.

Output goes to <file>_translated.csv. A <file>_translated_temp.csv
checkpoint is written after every article and resumed on re-run.

Example:
  respond translate Bulgaria_sample_250.csv
  respond translate --translation-model zongwei/gemma3-translator:4b *.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := stageConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("translation-model") {
			cfg.Translation.Model = translationModel
		}

		stage := engine.NewTranslateStage(cfg, newLogger(cfg))
		return runStage(cfg, stage, args)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	addStageFlags(translateCmd)
	translateCmd.Flags().StringVar(&translationModel, "translation-model", "", "translation model override")
}
