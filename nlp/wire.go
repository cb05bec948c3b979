package nlp

type SentimentResult struct {
	Label string  `json:"label"` // positive | negative | neutral
	Score float64 `json:"score"`
}

type ToxicityResult struct {
	Toxic      bool               `json:"toxic"`
	Score      float64            `json:"score"`
	Categories map[string]float64 `json:"categories"`
}

// Entity is a span annotation over the input text. Offsets are
// character positions into the original string.
type Entity struct {
	Text  string `json:"text"`
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type EntitiesResult struct {
	Entities []Entity `json:"entities"`
}

type PIIResult struct {
	Entities     []Entity `json:"entities"`
	RedactedText string   `json:"redacted_text,omitempty"`
}

type LanguageResult struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
}
