package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/annekroon/respond-media/internal/llm"
	"github.com/annekroon/respond-media/internal/model"
	"github.com/annekroon/respond-media/internal/store"
)

func runTranslate(t *testing.T, cfg *model.Config, input string) *store.Table {
	t.Helper()
	eng := New(cfg, zerolog.Nop())
	if err := eng.Run(context.Background(), NewTranslateStage(cfg, zerolog.Nop()), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	_, final := store.DerivedPaths(input, "translated")
	table, err := store.Load(final)
	if err != nil {
		t.Fatalf("Final output unreadable: %v", err)
	}
	return table
}

func TestTranslateStage_EnglishCopyThrough(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,country,combined_text\nu1,United_Kingdom,Already in English.\n")

	table := runTranslate(t, testConfig(), input)
	if got := table.Get(0, model.ColumnTranslatedText); got != "Already in English." {
		t.Errorf("English source should copy through, got %q", got)
	}
	if got := table.Get(0, ColumnTranslationStatus); got != string(model.StatusDone) {
		t.Errorf("Status = %q, want done", got)
	}
}

func TestTranslateStage_UnknownCountryCopies(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,country,combined_text\nu1,Atlantis,Some text.\n")

	table := runTranslate(t, testConfig(), input)
	if got := table.Get(0, model.ColumnTranslatedText); got != "Some text." {
		t.Errorf("Unknown country should copy through, got %q", got)
	}
}

func TestTranslateStage_TranslatesViaService(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		if len(body.Messages) != 2 || body.Messages[0].Role != "system" {
			t.Errorf("Expected system+user messages, got %+v", body.Messages)
		}

		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "Corruption is a big problem in the country."}, "done": true}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.LLM.BaseURL = server.URL

	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,country,combined_text\nu1,Bulgaria,Корупцията е голям проблем в страната.\n")

	table := runTranslate(t, cfg, input)
	if got := table.Get(0, model.ColumnTranslatedText); got != "Corruption is a big problem in the country." {
		t.Errorf("Translation not written, got %q", got)
	}
	if gotModel != cfg.Translation.Model {
		t.Errorf("Translation model not used: %q", gotModel)
	}
}

func TestTranslateStage_LeadInStripped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "Here's the translation:\n\nCorruption is a big problem in the country today."}, "done": true}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.LLM.BaseURL = server.URL

	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,country,combined_text\nu1,Bulgaria,Корупцията е голям проблем в страната.\n")

	table := runTranslate(t, cfg, input)
	if got := table.Get(0, model.ColumnTranslatedText); got != "Corruption is a big problem in the country today." {
		t.Errorf("Lead-in should be stripped, got %q", got)
	}
}

func TestTranslateStage_RejectedChunkMarked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Still Cyrillic: fails the same-language gate
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "Корупцията е голям проблем в страната и региона."}, "done": true}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.LLM.BaseURL = server.URL

	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,country,combined_text\nu1,Bulgaria,Корупцията е голям проблем в страната.\n")

	table := runTranslate(t, cfg, input)
	if got := table.Get(0, model.ColumnTranslatedText); got != model.TranslationFailedMarker {
		t.Errorf("Untranslated chunk should carry the marker, got %q", got)
	}
	// The row still completes; the marker is the degradation, not a failure
	if got := table.Get(0, ColumnTranslationStatus); got != string(model.StatusDone) {
		t.Errorf("Status = %q, want done", got)
	}
}

func TestPipeline_TranslateThenFrames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "Title\n\nBody of the article about political corruption."}, "done": true}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.LLM.BaseURL = server.URL

	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,country,combined_text\nu1,Bulgaria,\"Заглавие\n\nТяло на статията за политическа корупция.\"\n")

	translated := runTranslate(t, cfg, input)
	if translated.Get(0, model.ColumnTranslatedText) == "" {
		t.Fatal("Translation stage produced no text")
	}

	// Feed the translation output into the frames stage
	_, translatedPath := store.DerivedPaths(input, "translated")
	provider := &fakeProvider{chatFn: func(req llm.ChatRequest) (string, error) {
		return `[{"frame": "Systemic institutional corruption", "rationale": "structural", "confidence": 90}]`, nil
	}}
	eng := New(cfg, zerolog.Nop())
	stage := NewFramesStage(cfg, provider, zerolog.Nop())

	if err := eng.Run(context.Background(), stage, translatedPath); err != nil {
		t.Fatalf("Frames run failed: %v", err)
	}

	_, final := store.DerivedPaths(translatedPath, "frames")
	table, err := store.Load(final)
	if err != nil {
		t.Fatalf("Final output unreadable: %v", err)
	}
	for pos := 1; pos <= len(cfg.Taxonomy); pos++ {
		if !table.HasColumn(model.FrameColumn(pos, "name")) {
			t.Errorf("Missing column for position %d", pos)
		}
	}
	if got := table.Get(0, model.FrameColumn(2, "name")); got != "Systemic institutional corruption" {
		t.Errorf("Frame slot 2 = %q", got)
	}

	// Second pass over the same file is a no-op
	calls := provider.calls
	if err := eng.Run(context.Background(), stage, translatedPath); err != nil {
		t.Fatalf("Second frames run failed: %v", err)
	}
	if provider.calls != calls {
		t.Errorf("Second pass must not reprocess items, calls went %d -> %d", calls, provider.calls)
	}
}

func TestTranslateStage_ServiceErrorMarked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.LLM.BaseURL = server.URL

	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,country,combined_text\nu1,Bulgaria,Корупцията е голям проблем.\n")

	table := runTranslate(t, cfg, input)
	if got := table.Get(0, model.ColumnTranslatedText); got != model.TranslationFailedMarker {
		t.Errorf("Failed chunk should carry the marker, got %q", got)
	}
}
