package engine

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/annekroon/respond-media/internal/llm"
	"github.com/annekroon/respond-media/internal/model"
	"github.com/annekroon/respond-media/internal/store"
)

func TestFramesStage_LowConfidenceWarning(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,translated_text\nu1,The minister accepted bribes.\n")

	provider := &fakeProvider{chatFn: func(req llm.ChatRequest) (string, error) {
		return `[{"frame": "Elite collusion", "rationale": "weak signal", "confidence": 55}]`, nil
	}}
	cfg := testConfig()
	eng := New(cfg, zerolog.Nop())

	if err := eng.Run(context.Background(), NewFramesStage(cfg, provider, zerolog.Nop()), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	_, final := store.DerivedPaths(input, "frames")
	table, _ := store.Load(final)

	rationale := table.Get(0, model.FrameColumn(3, "rationale"))
	if !strings.HasPrefix(rationale, "weak signal") {
		t.Errorf("Original rationale lost: %q", rationale)
	}
	if !strings.Contains(rationale, "55%") {
		t.Errorf("Low confidence should append a verification note, got %q", rationale)
	}
}

func TestFramesStage_HighConfidenceNoWarning(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,translated_text\nu1,The minister accepted bribes.\n")

	provider := &fakeProvider{chatFn: func(req llm.ChatRequest) (string, error) {
		return `[{"frame": "Elite collusion", "rationale": "strong signal", "confidence": 95}]`, nil
	}}
	cfg := testConfig()
	eng := New(cfg, zerolog.Nop())

	if err := eng.Run(context.Background(), NewFramesStage(cfg, provider, zerolog.Nop()), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	_, final := store.DerivedPaths(input, "frames")
	table, _ := store.Load(final)

	if got := table.Get(0, model.FrameColumn(3, "rationale")); got != "strong signal" {
		t.Errorf("High confidence should leave the rationale untouched, got %q", got)
	}
}

func TestFramesStage_HighlightColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,translated_text\nu1,The minister accepted bribes for contracts.\n")

	provider := &fakeProvider{chatFn: func(req llm.ChatRequest) (string, error) {
		return `[{"frame": "Elite collusion", "highlights": ["accepted bribes"], "rationale": "deal", "confidence": 90}]`, nil
	}}
	cfg := testConfig()
	cfg.Pipeline.HighlightColumn = true
	eng := New(cfg, zerolog.Nop())

	if err := eng.Run(context.Background(), NewFramesStage(cfg, provider, zerolog.Nop()), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	_, final := store.DerivedPaths(input, "frames")
	table, _ := store.Load(final)

	marked := table.Get(0, model.ColumnHighlightedText)
	if !strings.Contains(marked, "<highlight>accepted bribes</highlight>") {
		t.Errorf("Evidence span not marked: %q", marked)
	}
	if strings.Contains(marked, "<highlight>contracts") {
		t.Errorf("Non-evidence, non-keyword text wrapped: %q", marked)
	}
}

func TestFramesStage_EvidenceJoinedWithNewlines(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,translated_text\nu1,text here\n")

	provider := &fakeProvider{chatFn: func(req llm.ChatRequest) (string, error) {
		return `[{"frame": "Elite collusion", "highlights": ["quote one", "quote two"], "rationale": "r", "confidence": 90}]`, nil
	}}
	cfg := testConfig()
	eng := New(cfg, zerolog.Nop())

	if err := eng.Run(context.Background(), NewFramesStage(cfg, provider, zerolog.Nop()), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	_, final := store.DerivedPaths(input, "frames")
	table, _ := store.Load(final)

	if got := table.Get(0, model.FrameColumn(3, "evidence")); got != "quote one\nquote two" {
		t.Errorf("Evidence should join with newlines, got %q", got)
	}
}

func TestFramesStage_CanonicalNameWrittenNotModelSpelling(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.csv")
	writeCSV(t, input, "uri,translated_text\nu1,text here\n")

	provider := &fakeProvider{chatFn: func(req llm.ChatRequest) (string, error) {
		return `[{"frame": "**elite collusion**", "rationale": "r", "confidence": 90}]`, nil
	}}
	cfg := testConfig()
	eng := New(cfg, zerolog.Nop())

	if err := eng.Run(context.Background(), NewFramesStage(cfg, provider, zerolog.Nop()), input); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	_, final := store.DerivedPaths(input, "frames")
	table, _ := store.Load(final)

	if got := table.Get(0, model.FrameColumn(3, "name")); got != "Elite collusion" {
		t.Errorf("Output should carry the canonical taxonomy name, got %q", got)
	}
}
