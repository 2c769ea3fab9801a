package engine

import (
	"fmt"
	"strings"

	"github.com/annekroon/respond-media/internal/model"
)

// translationSystem primes the translation model for one chunk. The
// source language is spelled as an ISO code; the translator models accept
// either codes or names.
func translationSystem(sourceLang string) string {
	return fmt.Sprintf("You are a translation assistant. Translate the following %s text into English. "+
		"Translate the entire text exactly. Do NOT shorten, paraphrase, or summarize. "+
		"Output ONLY the translated text.", sourceLang)
}

// classifierPrompt asks for the labeled free-form answer that
// parse.ParseClassifier understands
func classifierPrompt(articleText string) string {
	return `You are an annotation assistant helping a human coder classify whether a news article is **primarily about political corruption**.

### Strict Definition

**Political corruption** involves public officials misusing political power for personal or political gain.

**Key criteria:**
- It must involve **public officials** in political decision-making roles:
  - Examples: ministers, members of parliament, presidents, judges, local council members
  - Exclude: police chiefs, military officials, CEOs of state companies (unless also acting politically)

**Common forms of political corruption**:
- Bribery or kickbacks for political influence
- Embezzlement or theft of public funds by officials
- Nepotism and cronyism in public appointments
- Misuse of authority (e.g. election fraud, shielding allies)

**Important:**
- Articles **should be labeled** as political corruption if they focus on accusations, charges, or suspicions of corruption by political officials, even if not yet proven.
- Do **not** label articles that focus solely on general crime, private sector fraud, or misconduct by non-political actors.

---

### Your Task

1. Identify full sentences that directly point to political corruption.
2. Make a careful judgment on whether this is the central focus.
3. Return your response in this format:

Highlights:
- [Key sentence 1]
- [Key sentence 2]
...

Tentative Label: Yes / Mentioned but not central / No / Unsure
Reasoning: [Short explanation]
Confidence: [0-100]

---

Article:
` + articleText + `

Assistant Output:`
}

// framesPrompt asks for every applicable frame from the configured
// taxonomy in one call, as a JSON list parse.ParseFrames understands
func framesPrompt(tax model.Taxonomy, articleText string) string {
	var names strings.Builder
	for _, cat := range tax {
		fmt.Fprintf(&names, "%d. %q\n", cat.Position, cat.Name)
	}

	return `You are an annotation assistant helping a human coder identify which **corruption narrative frames** are present in a news article.

### Task Definition

Your job is to read the article and identify **all applicable narrative frames** that describe how corruption is being framed.

### Frame Categories

` + names.String() + `
---

### Output Format (IMPORTANT)

Return ONLY a JSON list like the following:

[
  {
    "frame": "Frame Name",
    "highlights": ["Quote 1", "Quote 2"],
    "rationale": "Short explanation",
    "confidence": 87
  },
  ...
]

- Use only the frame names from the list above.
- Do NOT invent or paraphrase frame titles.
- Only include frames with clear evidence.
- Return an empty list [] if no frame applies.

---

Article:
` + articleText + `
`
}
