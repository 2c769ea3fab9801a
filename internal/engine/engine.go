// Package engine runs annotation stages over CSV-backed record sets with
// per-item checkpointing. A stage owns its columns and per-item work; the
// engine owns resume detection, the save-after-every-item loop, the
// politeness delay, and promotion of the final artifact.
package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/annekroon/respond-media/internal/model"
	"github.com/annekroon/respond-media/internal/store"
)

// Stage is one annotation pass over a table. Annotate must confine
// failures to the error return; the engine records them and moves on, so
// one bad item never aborts a batch.
type Stage interface {
	// Name identifies the stage in logs
	Name() string

	// Suffix names the derived checkpoint and output files
	Suffix() string

	// Columns lists every column the stage writes, status included
	Columns() []string

	// StatusColumn names the per-item status column
	StatusColumn() string

	// Done reports whether the row needs no work. Implementations also
	// recognize output written by earlier tool versions that predate the
	// status column.
	Done(t *store.Table, row int) bool

	// Annotate processes one row, writing its output columns
	Annotate(ctx context.Context, t *store.Table, row int) error

	// MarkFailed writes the failure sentinel into the row's output columns
	MarkFailed(t *store.Table, row int, err error)
}

// Engine drives stages over input files
type Engine struct {
	cfg *model.Config
	log zerolog.Logger
}

// New creates an engine
func New(cfg *model.Config, log zerolog.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// Run executes one stage over one input file. If the final artifact
// already exists the run is a no-op. An existing temporary checkpoint is
// resumed; rows the stage reports done are skipped. The table is flushed
// after every item, successful or not.
func (e *Engine) Run(ctx context.Context, stage Stage, inputPath string) error {
	log := e.log.With().Str("stage", stage.Name()).Str("input", inputPath).Logger()

	temp, final := store.DerivedPaths(inputPath, stage.Suffix())
	cs := store.NewCheckpointStore(inputPath, temp, final, log)

	if cs.FinalExists() {
		log.Info().Str("output", final).Msg("output already exists, skipping file")
		return nil
	}

	t, resumed, err := cs.Open()
	if err != nil {
		return err
	}
	if resumed {
		log.Info().Msg("resuming interrupted run")
	}
	t.EnsureColumns(stage.Columns()...)

	limiter := rate.NewLimiter(rate.Every(e.cfg.Pipeline.SleepBetweenItems), 1)
	bar := e.newBar(t.Len(), stage.Name())

	for row := 0; row < t.Len(); row++ {
		if bar != nil {
			_ = bar.Add(1)
		}
		if stage.Done(t, row) {
			continue
		}

		if err := stage.Annotate(ctx, t, row); err != nil {
			if ctx.Err() != nil {
				// Partial row output stays out of the checkpoint so the
				// resumed run redoes the item from scratch.
				return ctx.Err()
			}
			log.Error().Err(err).Int("row", row).Msg("item failed")
			stage.MarkFailed(t, row, err)
			t.Set(row, stage.StatusColumn(), string(model.StatusError))
		} else {
			t.Set(row, stage.StatusColumn(), string(model.StatusDone))
		}

		if err := cs.Flush(t); err != nil {
			return fmt.Errorf("checkpoint after row %d: %w", row, err)
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if err := cs.Promote(t); err != nil {
		return err
	}
	log.Info().Str("output", final).Int("rows", t.Len()).Msg("stage complete")
	return nil
}

func (e *Engine) newBar(total int, desc string) *progressbar.ProgressBar {
	if !e.cfg.Output.Progress {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// itemAt assembles the stage view of one row. The URI identifies the item
// in logs when present, the row index otherwise.
func itemAt(t *store.Table, row int, languages map[string]string) model.Item {
	item := model.Item{
		Index:          row,
		ID:             t.Get(row, model.ColumnURI),
		Country:        t.Get(row, model.ColumnCountry),
		CombinedText:   t.Get(row, model.ColumnCombinedText),
		TranslatedText: t.Get(row, model.ColumnTranslatedText),
	}
	if item.ID == "" {
		item.ID = strconv.Itoa(row)
	}
	item.Lang = languages[item.Country]
	return item
}
