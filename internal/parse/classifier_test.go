package parse

import "testing"

func TestParseClassifier_FullTranscript(t *testing.T) {
	answer := `Highlights:
- The minister accepted bribes for contracts.
- Parliament opened an inquiry into the payments.

Tentative Label: Yes
Reasoning: The article centers on bribery accusations against a minister.
Confidence: 92`

	c := ParseClassifier(answer)
	if c.Label != "Yes" {
		t.Errorf("Unexpected label: %s", c.Label)
	}
	if len(c.Highlights) != 2 {
		t.Errorf("Expected 2 highlights, got %d", len(c.Highlights))
	}
	if c.Rationale != "The article centers on bribery accusations against a minister." {
		t.Errorf("Unexpected rationale: %q", c.Rationale)
	}
	if c.Confidence == nil || *c.Confidence != 92 {
		t.Errorf("Unexpected confidence: %v", c.Confidence)
	}
}

func TestParseClassifier_CaseNormalization(t *testing.T) {
	c := ParseClassifier("Tentative Label: YES")
	if c.Label != "Yes" {
		t.Errorf("Shouting labels should normalize, got %s", c.Label)
	}
}

func TestParseClassifier_MentionedButNotCentral(t *testing.T) {
	c := ParseClassifier("Tentative Label: mentioned but not central")
	if c.Label != "Mentioned but not central" {
		t.Errorf("Multi-word label not recognized: %s", c.Label)
	}
}

func TestParseClassifier_InvalidLabelStaysUnclear(t *testing.T) {
	c := ParseClassifier("Tentative Label: Definitely maybe")
	if c.Label != LabelUnclear {
		t.Errorf("Unknown label should report %s, got %s", LabelUnclear, c.Label)
	}
}

func TestParseClassifier_NoLabelLine(t *testing.T) {
	c := ParseClassifier("The article talks about many things.")
	if c.Label != LabelUnclear {
		t.Errorf("Missing label should report %s, got %s", LabelUnclear, c.Label)
	}
	if c.Confidence != nil {
		t.Error("Missing confidence should stay nil, not zero")
	}
}

func TestParseClassifier_MultiLineReasoning(t *testing.T) {
	answer := `Reasoning: First part of the explanation
continues on a second line.
Confidence: 60`

	c := ParseClassifier(answer)
	if c.Rationale != "First part of the explanation continues on a second line." {
		t.Errorf("Continuation lines should join, got %q", c.Rationale)
	}
	if c.Confidence == nil || *c.Confidence != 60 {
		t.Errorf("Unexpected confidence: %v", c.Confidence)
	}
}

func TestParseClassifier_BulletsOutsideHighlightsIgnored(t *testing.T) {
	answer := `- stray bullet
Highlights:
- real highlight
Tentative Label: No`

	c := ParseClassifier(answer)
	if len(c.Highlights) != 1 || c.Highlights[0] != "real highlight" {
		t.Errorf("Only bullets inside the highlights block count, got %v", c.Highlights)
	}
}
