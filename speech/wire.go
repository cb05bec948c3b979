package speech

// Wire types for the pronunciation, STT, and TTS endpoints.

// Assessment scores how closely spoken audio matched a reference text,
// from the whole utterance down to individual phonemes.
type Assessment struct {
	OverallScore float64     `json:"overallScore"` // 0-100
	Words        []WordScore `json:"words"`
}

type WordScore struct {
	Word     string         `json:"word"`
	Score    float64        `json:"score"`
	Phonemes []PhonemeScore `json:"phonemes"`
}

type PhonemeScore struct {
	Phoneme string  `json:"phoneme"`
	Score   float64 `json:"score"`
}

type Transcription struct {
	Text     string            `json:"text"`
	Language string            `json:"language"`
	Words    []TranscribedWord `json:"words"`
}

// TranscribedWord carries word-level timestamps in seconds.
type TranscribedWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type SynthesizeRequest struct {
	Text   string  `json:"text"`
	Voice  string  `json:"voice"`
	Speed  float64 `json:"speed"`
	Format string  `json:"format"`
}
