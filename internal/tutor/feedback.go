package tutor

import (
	"fmt"
	"io"
	"strings"

	"github.com/speechai/speechai-go/speech"
)

// Scoring thresholds used by the report: words below weakWordScore get
// starred, phonemes below weakPhonemeScore land in the focus list.
const (
	weakWordScore    = 70.0
	weakPhonemeScore = 60.0
)

func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Needs Work"
	default:
		return "Keep Practicing"
	}
}

type weakPhoneme struct {
	Word    string
	Phoneme string
	Score   float64
}

func weakPhonemes(words []speech.WordScore) []weakPhoneme {
	var weak []weakPhoneme
	for _, word := range words {
		for _, phoneme := range word.Phonemes {
			if phoneme.Score < weakPhonemeScore {
				weak = append(weak, weakPhoneme{Word: word.Word, Phoneme: phoneme.Phoneme, Score: phoneme.Score})
			}
		}
	}
	return weak
}

func printReport(w io.Writer, assessment *speech.Assessment, transcription *speech.Transcription, reference string) {
	fmt.Fprintf(w, "\n%s\n  PRONUNCIATION REPORT\n%s\n", strings.Repeat("=", 60), strings.Repeat("=", 60))

	fmt.Fprintf(w, "\n  Overall Score : %.1f / 100  (%s)\n", assessment.OverallScore, gradeFor(assessment.OverallScore))
	fmt.Fprintf(w, "  Target        : %s\n", reference)
	fmt.Fprintf(w, "  You Said      : %s\n", transcription.Text)

	fmt.Fprintf(w, "\n  %-15s %6s   PHONEME DETAILS\n", "WORD", "SCORE")
	fmt.Fprintf(w, "  %s %s   %s\n", strings.Repeat("-", 15), strings.Repeat("-", 6), strings.Repeat("-", 30))

	for _, word := range assessment.Words {
		marker := ""
		if word.Score < weakWordScore {
			marker = " *"
		}

		parts := make([]string, 0, len(word.Phonemes))
		for _, phoneme := range word.Phonemes {
			parts = append(parts, fmt.Sprintf("%s=%.0f", phoneme.Phoneme, phoneme.Score))
		}

		fmt.Fprintf(w, "  %-15s %5.1f   [%s]%s\n", word.Word, word.Score, strings.Join(parts, ", "), marker)
	}

	if weak := weakPhonemes(assessment.Words); len(weak) > 0 {
		fmt.Fprintf(w, "\n  FOCUS AREAS:\n")
		for _, p := range weak {
			fmt.Fprintf(w, "    - '%s' in '%s' (score: %.0f): practice this sound slowly\n", p.Phoneme, p.Word, p.Score)
		}
	}

	switch {
	case assessment.OverallScore >= 90:
		fmt.Fprintf(w, "\n  Great job! Try a harder sentence.\n")
	case assessment.OverallScore >= 70:
		fmt.Fprintf(w, "\n  Good progress! Focus on the starred (*) words above.\n")
	default:
		fmt.Fprintf(w, "\n  Tip: Listen to the reference audio again, then try speaking more slowly.\n")
	}
}
