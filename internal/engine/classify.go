package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/annekroon/respond-media/internal/llm"
	"github.com/annekroon/respond-media/internal/model"
	"github.com/annekroon/respond-media/internal/parse"
	"github.com/annekroon/respond-media/internal/store"
)

// ColumnClassificationStatus tracks per-item screening state
const ColumnClassificationStatus = "classification_status"

// ClassifyStage screens each article for political corruption as its
// central topic, writing a tentative label, rationale, confidence, and
// the key evidence sentences.
type ClassifyStage struct {
	cfg      *model.Config
	provider llm.Provider
	log      zerolog.Logger
}

// NewClassifyStage creates the stage over the configured annotation model
func NewClassifyStage(cfg *model.Config, provider llm.Provider, log zerolog.Logger) *ClassifyStage {
	return &ClassifyStage{cfg: cfg, provider: provider, log: log}
}

func (s *ClassifyStage) Name() string   { return "classify" }
func (s *ClassifyStage) Suffix() string { return "classified" }

func (s *ClassifyStage) Columns() []string {
	return []string{
		model.ColumnLabel, model.ColumnRationale,
		model.ColumnConfidence, model.ColumnEvidence,
		ColumnClassificationStatus,
	}
}

func (s *ClassifyStage) StatusColumn() string { return ColumnClassificationStatus }

func (s *ClassifyStage) Done(t *store.Table, row int) bool {
	switch model.Status(t.Get(row, ColumnClassificationStatus)) {
	case model.StatusDone, model.StatusError:
		return true
	}
	return t.Get(row, model.ColumnLabel) != ""
}

func (s *ClassifyStage) Annotate(ctx context.Context, t *store.Table, row int) error {
	item := itemAt(t, row, s.cfg.Languages)

	text := strings.TrimSpace(item.TranslatedText)
	if text == "" {
		// Nothing to screen; recorded as a definitive No, no model call
		t.Set(row, model.ColumnLabel, "No")
		t.Set(row, model.ColumnRationale, "no content")
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Pipeline.ClassifyTimeout)
	defer cancel()

	answer, err := s.provider.Chat(callCtx, llm.ChatRequest{
		Messages:    llm.UserMessage(classifierPrompt(text)),
		Temperature: s.cfg.LLM.Temperature,
	})
	if err != nil {
		return err
	}

	c := parse.ParseClassifier(answer)
	t.Set(row, model.ColumnLabel, c.Label)
	t.Set(row, model.ColumnRationale, c.Rationale)
	if c.Confidence != nil {
		t.Set(row, model.ColumnConfidence, strconv.Itoa(*c.Confidence))
	} else {
		t.Set(row, model.ColumnConfidence, "")
	}
	t.Set(row, model.ColumnEvidence, strings.Join(c.Highlights, "; "))

	s.log.Debug().Str("item", item.ID).Str("label", c.Label).Msg("screened")
	return nil
}

func (s *ClassifyStage) MarkFailed(t *store.Table, row int, err error) {
	t.Set(row, model.ColumnLabel, model.SentinelLabel)
	t.Set(row, model.ColumnRationale, err.Error())
	t.Set(row, model.ColumnConfidence, "")
	t.Set(row, model.ColumnEvidence, "")
}
