package engine

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/annekroon/respond-media/internal/chunk"
	"github.com/annekroon/respond-media/internal/llm"
	"github.com/annekroon/respond-media/internal/model"
	"github.com/annekroon/respond-media/internal/quality"
	"github.com/annekroon/respond-media/internal/store"
)

// ColumnTranslationStatus tracks per-item translation state
const ColumnTranslationStatus = "translation_status"

// TranslateStage renders combined_text into English, chunk by chunk.
// English sources are copied through untouched. A chunk whose translation
// fails or is rejected by the quality gates is replaced by the failure
// marker; the remaining chunks survive.
type TranslateStage struct {
	cfg       *model.Config
	providers *llm.ProviderCache
	log       zerolog.Logger
}

// NewTranslateStage creates the stage with a per-language provider cache
func NewTranslateStage(cfg *model.Config, log zerolog.Logger) *TranslateStage {
	factory := func(lang string) (llm.Provider, error) {
		pc := llm.ConfigFromModel(cfg.LLM)
		pc.Model = cfg.Translation.Model
		if m, ok := cfg.Translation.PerLanguage[lang]; ok && m != "" {
			pc.Model = m
		}
		return llm.NewProvider(pc)
	}
	return &TranslateStage{
		cfg:       cfg,
		providers: llm.NewProviderCache(cfg.Translation.CacheTTL, factory),
		log:       log,
	}
}

func (s *TranslateStage) Name() string   { return "translate" }
func (s *TranslateStage) Suffix() string { return "translated" }

func (s *TranslateStage) Columns() []string {
	return []string{model.ColumnTranslatedText, ColumnTranslationStatus}
}

func (s *TranslateStage) StatusColumn() string { return ColumnTranslationStatus }

// Done recognizes the status column, plus any non-empty translated_text
// written by runs that predate it
func (s *TranslateStage) Done(t *store.Table, row int) bool {
	switch model.Status(t.Get(row, ColumnTranslationStatus)) {
	case model.StatusDone, model.StatusError:
		return true
	}
	return t.Get(row, model.ColumnTranslatedText) != ""
}

func (s *TranslateStage) Annotate(ctx context.Context, t *store.Table, row int) error {
	item := itemAt(t, row, s.cfg.Languages)

	if item.Lang == "" {
		s.log.Warn().Str("item", item.ID).Str("country", item.Country).
			Msg("unknown country, copying text untranslated")
		t.Set(row, model.ColumnTranslatedText, item.CombinedText)
		return nil
	}
	if item.Lang == "en" {
		t.Set(row, model.ColumnTranslatedText, item.CombinedText)
		return nil
	}

	provider, err := s.providers.Get(item.Lang)
	if err != nil {
		return err
	}

	chunks := chunk.Split(item.CombinedText, s.cfg.Translation.MaxChunkSize)
	translated := make([]string, 0, len(chunks))
	for i, c := range chunks {
		s.log.Debug().Str("item", item.ID).Int("chunk", i+1).Int("of", len(chunks)).
			Int("runes", len([]rune(c))).Msg("translating chunk")

		out, err := s.translateChunk(ctx, provider, c, item.Lang)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn().Err(err).Str("item", item.ID).Int("chunk", i+1).Msg("chunk translation failed")
			out = ""
		}

		if out == "" || quality.TooShort(c, out, s.cfg.Translation.MinLengthRatio) {
			out = model.TranslationFailedMarker
		}
		translated = append(translated, out)
	}

	t.Set(row, model.ColumnTranslatedText, strings.Join(translated, "\n\n"))
	return nil
}

// translateChunk runs one model call and applies the quality gates.
// An untranslated result (still in the source script) is returned empty.
func (s *TranslateStage) translateChunk(ctx context.Context, provider llm.Provider, text, lang string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Pipeline.ChunkTimeout)
	defer cancel()

	out, err := provider.Chat(callCtx, llm.ChatRequest{
		Messages:    llm.SystemAndUser(translationSystem(lang), text),
		Temperature: s.cfg.LLM.Temperature,
	})
	if err != nil {
		return "", err
	}

	out = stripLeadIn(strings.TrimSpace(out))

	if quality.LikelySameLanguage(text, out, s.cfg.Translation.SameLanguageThreshold) {
		s.log.Warn().Str("lang", lang).Msg("suspected untranslated chunk")
		return "", nil
	}
	return out, nil
}

func (s *TranslateStage) MarkFailed(t *store.Table, row int, err error) {
	t.Set(row, model.ColumnTranslatedText, model.TranslationFailedMarker)
}

// stripLeadIn drops a conversational opener such as "Here's the
// translation:" when the model prepends one despite the instructions
func stripLeadIn(s string) string {
	first, rest, found := strings.Cut(s, "\n\n")
	if !found {
		return s
	}
	lower := strings.ToLower(first)
	if strings.HasPrefix(lower, "here's the translation") ||
		strings.HasPrefix(lower, "here’s the translation") ||
		strings.HasPrefix(lower, "here is the translation") {
		return strings.TrimSpace(rest)
	}
	return s
}
