package parse

import (
	"testing"

	"github.com/annekroon/respond-media/internal/model"
)

func testTaxonomy() model.Taxonomy {
	return model.NewTaxonomy([]string{
		"Elite collusion",
		"Politicized investigations",
		"Public outrage and call for reform",
	})
}

func TestMatchTaxonomy_ExactMatch(t *testing.T) {
	records := []model.CategoryRecord{
		{Label: "Politicized investigations", Rationale: "biased prosecutor"},
	}

	result := MatchTaxonomy(testTaxonomy(), records)
	if len(result) != 3 {
		t.Fatalf("Result must have one slot per category, got %d", len(result))
	}
	if result[1].Rationale != "biased prosecutor" {
		t.Errorf("Record should land in slot 2, got %+v", result[1])
	}
	if !result[0].IsEmpty() || !result[2].IsEmpty() {
		t.Error("Unmatched slots must stay empty")
	}
}

func TestMatchTaxonomy_MarkdownDecoratedLabel(t *testing.T) {
	records := []model.CategoryRecord{
		{Label: "**Elite Collusion**", Rationale: "deal"},
	}

	result := MatchTaxonomy(testTaxonomy(), records)
	if result[0].Rationale != "deal" {
		t.Errorf("Decorated label should match exactly after normalization, got %+v", result[0])
	}
}

func TestMatchTaxonomy_FuzzyMatch(t *testing.T) {
	records := []model.CategoryRecord{
		{Label: "Politicised investigation", Rationale: "spelling drift"},
	}

	result := MatchTaxonomy(testTaxonomy(), records)
	if result[1].Rationale != "spelling drift" {
		t.Errorf("Near-miss label should fuzzy-match slot 2, got %+v", result[1])
	}
}

func TestMatchTaxonomy_NoMatchBelowThreshold(t *testing.T) {
	records := []model.CategoryRecord{
		{Label: "Completely unrelated thing", Rationale: "r"},
	}

	result := MatchTaxonomy(testTaxonomy(), records)
	for i, rec := range result {
		if !rec.IsEmpty() {
			t.Errorf("Slot %d should be empty for an unmatchable label, got %+v", i+1, rec)
		}
	}
}

func TestMatchTaxonomy_SentinelExcluded(t *testing.T) {
	records := []model.CategoryRecord{
		{Label: model.SentinelLabel, Rationale: "previous failure"},
	}

	result := MatchTaxonomy(testTaxonomy(), records)
	for i, rec := range result {
		if !rec.IsEmpty() {
			t.Errorf("Sentinel record must never match, slot %d got %+v", i+1, rec)
		}
	}
}

func TestMatchTaxonomy_FirstParsedWinsOnTie(t *testing.T) {
	records := []model.CategoryRecord{
		{Label: "Elite collusion", Rationale: "first"},
		{Label: "Elite collusion", Rationale: "second"},
	}

	result := MatchTaxonomy(testTaxonomy(), records)
	if result[0].Rationale != "first" {
		t.Errorf("Tie must break by parsed order, got %q", result[0].Rationale)
	}
}

func TestMatchTaxonomy_NoRecords(t *testing.T) {
	result := MatchTaxonomy(testTaxonomy(), nil)
	if len(result) != 3 {
		t.Fatalf("Empty input still yields one slot per category, got %d", len(result))
	}
	for _, rec := range result {
		if !rec.IsEmpty() {
			t.Errorf("Slots must be empty records, got %+v", rec)
		}
	}
}

func TestNormalizeLabel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"**Elite collusion**", "elite collusion"},
		{"  Elite Collusion  ", "elite collusion"},
		{"`elite_collusion`", "elitecollusion"},
	}
	for _, c := range cases {
		if got := NormalizeLabel(c.in); got != c.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
