package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/annekroon/respond-media/internal/highlight"
	"github.com/annekroon/respond-media/internal/llm"
	"github.com/annekroon/respond-media/internal/model"
	"github.com/annekroon/respond-media/internal/parse"
	"github.com/annekroon/respond-media/internal/store"
)

// ColumnFramesStatus tracks per-item frame-annotation state
const ColumnFramesStatus = "frames_status"

// FramesStage annotates each article against the configured frame
// taxonomy in a single model call. Output columns are keyed by taxonomy
// position, so absent frames leave their slots empty rather than shifting
// later ones.
type FramesStage struct {
	cfg      *model.Config
	tax      model.Taxonomy
	provider llm.Provider
	log      zerolog.Logger
}

// NewFramesStage creates the stage over the configured annotation model
func NewFramesStage(cfg *model.Config, provider llm.Provider, log zerolog.Logger) *FramesStage {
	return &FramesStage{
		cfg:      cfg,
		tax:      model.NewTaxonomy(cfg.Taxonomy),
		provider: provider,
		log:      log,
	}
}

func (s *FramesStage) Name() string   { return "frames" }
func (s *FramesStage) Suffix() string { return "frames" }

func (s *FramesStage) Columns() []string {
	var cols []string
	for _, cat := range s.tax {
		for _, field := range []string{"name", "rationale", "confidence", "evidence"} {
			cols = append(cols, model.FrameColumn(cat.Position, field))
		}
	}
	if s.cfg.Pipeline.HighlightColumn {
		cols = append(cols, model.ColumnHighlightedText)
	}
	return append(cols, ColumnFramesStatus)
}

func (s *FramesStage) StatusColumn() string { return ColumnFramesStatus }

func (s *FramesStage) Done(t *store.Table, row int) bool {
	switch model.Status(t.Get(row, ColumnFramesStatus)) {
	case model.StatusDone, model.StatusError:
		return true
	}
	return t.Get(row, model.FrameColumn(1, "name")) != ""
}

func (s *FramesStage) Annotate(ctx context.Context, t *store.Table, row int) error {
	item := itemAt(t, row, s.cfg.Languages)

	text := strings.TrimSpace(item.TranslatedText)
	if text == "" {
		s.writeResult(t, row, make(model.AnnotationResult, len(s.tax)), "")
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Pipeline.FrameTimeout)
	defer cancel()

	answer, err := s.provider.Chat(callCtx, llm.ChatRequest{
		Messages:    llm.UserMessage(framesPrompt(s.tax, text)),
		Temperature: s.cfg.LLM.Temperature,
	})
	if err != nil {
		return err
	}

	outcome := parse.ParseFrames(answer)
	switch outcome.Kind {
	case parse.OutcomeUnparsable:
		return fmt.Errorf("unparsable model output: %s", outcome.Diagnostic)

	case parse.OutcomeEmpty:
		s.writeResult(t, row, make(model.AnnotationResult, len(s.tax)), text)
		return nil
	}

	result := parse.MatchTaxonomy(s.tax, outcome.Records)
	s.writeResult(t, row, result, text)

	s.log.Debug().Str("item", item.ID).Int("frames", countMatched(result)).Msg("annotated")
	return nil
}

func (s *FramesStage) writeResult(t *store.Table, row int, result model.AnnotationResult, text string) {
	var allHighlights []string

	for i, cat := range s.tax {
		var rec model.CategoryRecord
		if i < len(result) {
			rec = result[i]
		}

		rationale := rec.Rationale
		if rec.Confidence != nil && s.cfg.Pipeline.LowConfidenceWarning > 0 &&
			*rec.Confidence < s.cfg.Pipeline.LowConfidenceWarning && !rec.IsEmpty() {
			rationale += fmt.Sprintf("\n\nModel confidence is only %d%%. Please verify carefully.", *rec.Confidence)
		}

		label := ""
		if !rec.IsEmpty() {
			label = cat.Name
		}
		t.Set(row, model.FrameColumn(cat.Position, "name"), label)
		t.Set(row, model.FrameColumn(cat.Position, "rationale"), rationale)
		t.Set(row, model.FrameColumn(cat.Position, "confidence"), rec.ConfidenceString())
		t.Set(row, model.FrameColumn(cat.Position, "evidence"), strings.Join(rec.Highlights, "\n"))

		allHighlights = append(allHighlights, rec.Highlights...)
	}

	if s.cfg.Pipeline.HighlightColumn && text != "" {
		marked := highlight.Spans(text, allHighlights)
		marked = highlight.Keywords(marked, highlight.KeyTerms)
		t.Set(row, model.ColumnHighlightedText, marked)
	}
}

// MarkFailed writes the sentinel into every slot so a failed item is
// unmistakable in the output and excluded from matching on re-parse
func (s *FramesStage) MarkFailed(t *store.Table, row int, err error) {
	for _, cat := range s.tax {
		t.Set(row, model.FrameColumn(cat.Position, "name"), model.SentinelLabel)
		t.Set(row, model.FrameColumn(cat.Position, "rationale"), "")
		t.Set(row, model.FrameColumn(cat.Position, "confidence"), "")
		t.Set(row, model.FrameColumn(cat.Position, "evidence"), "")
	}
	t.Set(row, model.FrameColumn(1, "rationale"), err.Error())
}

func countMatched(result model.AnnotationResult) int {
	n := 0
	for _, rec := range result {
		if !rec.IsEmpty() {
			n++
		}
	}
	return n
}
