// Package demo is the basic-usage example: synthesize a sample
// sentence, transcribe it back, and score the pronunciation, printing
// each result to stdout.
package demo

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/speechai/speechai-go/gateway"
	"github.com/speechai/speechai-go/internal/config"
	"github.com/speechai/speechai-go/internal/logger"
	"github.com/speechai/speechai-go/speech"
)

type env struct {
	audioPath string
	text      string
	outPath   string
	voice     string
	speed     float64

	speech *speech.Service
	log    *zap.SugaredLogger
}

func CLI(args []string) int {
	app := env{}
	if err := app.fromArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "parsing args: %v\n", err)
		return 2
	}

	if err := app.run(); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return 1
	}
	return 0
}

func (app *env) fromArgs(args []string) error {
	fl := flag.NewFlagSet("speechai", flag.ContinueOnError)

	fl.StringVar(&app.text, "t", "The quick brown fox jumps over the lazy dog.", "reference text to synthesize and assess")
	fl.StringVar(&app.text, "text", "The quick brown fox jumps over the lazy dog.", "reference text to synthesize and assess")

	fl.StringVar(&app.outPath, "o", "output_tts.wav", "where to save the synthesized audio")
	fl.StringVar(&app.outPath, "out", "output_tts.wav", "where to save the synthesized audio")

	fl.StringVar(&app.voice, "v", speech.DefaultVoice, "TTS voice identifier")
	fl.StringVar(&app.voice, "voice", speech.DefaultVoice, "TTS voice identifier")

	fl.Float64Var(&app.speed, "speed", speech.DefaultSpeed, "TTS speaking speed")

	if err := fl.Parse(args); err != nil {
		return err
	}

	// Positional form: speechai [flags] [audio.wav [reference text]]
	if fl.NArg() > 0 {
		app.audioPath = fl.Arg(0)
	}
	if fl.NArg() > 1 {
		app.text = strings.Join(fl.Args()[1:], " ")
	}

	return nil
}

func (app *env) run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app.log = logger.Init(cfg.LogLevel)
	defer app.log.Sync()

	client, err := cfg.Client()
	if err != nil {
		return err
	}
	app.speech = speech.NewService(client)

	ctx := context.Background()

	if err := app.synthesize(ctx); err != nil {
		return err
	}

	// Prefer the caller's recording; fall back to the file we just made.
	audioPath := app.audioPath
	if audioPath == "" {
		audioPath = app.outPath
	}

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("reading audio file: %w", err)
	}

	if err := app.transcribe(ctx, audio); err != nil {
		return err
	}

	return app.assess(ctx, audio)
}

func (app *env) synthesize(ctx context.Context) error {
	section("Text-to-Speech (Synthesis)")

	audio, err := app.speech.Synthesize(ctx, speech.SynthesizeRequest{
		Text:  app.text,
		Voice: app.voice,
		Speed: app.speed,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(app.outPath, audio, 0o644); err != nil {
		return fmt.Errorf("saving synthesized audio: %w", err)
	}

	app.log.Infow("synthesized audio", "voice", app.voice, "bytes", len(audio), "path", app.outPath)

	fmt.Printf("Text     : %s\n", app.text)
	fmt.Printf("Voice    : %s\n", app.voice)
	fmt.Printf("Speed    : %.1fx\n", app.speed)
	fmt.Printf("Saved to : %s (%.1f KB)\n", app.outPath, float64(len(audio))/1024)

	return nil
}

func (app *env) transcribe(ctx context.Context, audio []byte) error {
	section("Speech-to-Text (Transcription)")

	transcription, err := app.speech.Transcribe(ctx, audio, true)
	if err != nil {
		return err
	}

	fmt.Printf("Transcription : %s\n", transcription.Text)
	fmt.Printf("Language      : %s\n\n", transcription.Language)

	for _, word := range transcription.Words {
		fmt.Printf("  %-15s %.2fs — %.2fs\n", word.Word, word.Start, word.End)
	}

	return nil
}

func (app *env) assess(ctx context.Context, audio []byte) error {
	section("Pronunciation Assessment")

	assessment, err := app.speech.Assess(ctx, audio, app.text)
	if err != nil {
		// a gateway rejection here usually means the audio format is off
		apiErr := &gateway.APIError{}
		if errors.As(err, &apiErr) {
			app.log.Warnw("assessment rejected", "status", apiErr.StatusCode, "message", apiErr.Message)
		}
		return err
	}

	fmt.Printf("Reference text : %s\n", app.text)
	fmt.Printf("Overall score  : %.1f\n\n", assessment.OverallScore)

	for _, word := range assessment.Words {
		parts := make([]string, 0, len(word.Phonemes))
		for _, phoneme := range word.Phonemes {
			parts = append(parts, fmt.Sprintf("%s=%.0f", phoneme.Phoneme, phoneme.Score))
		}
		fmt.Printf("  %-15s score=%5.1f  phonemes=[%s]\n", word.Word, word.Score, strings.Join(parts, ", "))
	}

	return nil
}

func section(title string) {
	fmt.Printf("\n%s\n  %s\n%s\n\n", strings.Repeat("=", 60), title, strings.Repeat("=", 60))
}
