// Package tutor is the interactive pronunciation practice loop: pick a
// sentence, hear the reference audio, record an attempt, and get scored
// down to the phoneme level.
package tutor

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/speechai/speechai-go/internal/config"
	"github.com/speechai/speechai-go/internal/logger"
	"github.com/speechai/speechai-go/speech"
)

// Practice sentences ordered by difficulty.
var sentences = []string{
	"Hello, how are you?",
	"The weather is nice today.",
	"She sells seashells by the seashore.",
	"I would like a cup of coffee, please.",
	"The quick brown fox jumps over the lazy dog.",
	"Peter Piper picked a peck of pickled peppers.",
	"How much wood would a woodchuck chuck if a woodchuck could chuck wood?",
}

type env struct {
	referencePath string
	recordingPath string
	voice         string

	speech *speech.Service
	log    *zap.SugaredLogger
	in     *bufio.Reader
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
	fl := flag.NewFlagSet("tutor", flag.ContinueOnError)

	fl.StringVar(&app.referencePath, "reference", "reference_audio.wav", "where to save the reference audio")
	fl.StringVar(&app.recordingPath, "recording", "user_recording.wav", "where to look for the learner's recording")
	fl.StringVar(&app.voice, "voice", speech.DefaultVoice, "TTS voice for the reference audio")

	return fl.Parse(args)
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
	app.in = bufio.NewReader(os.Stdin)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  PRONUNCIATION TUTOR")
	fmt.Println("  Practice your English pronunciation with AI feedback")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Println("\nAvailable sentences:")
	for i, sentence := range sentences {
		fmt.Printf("  %d. %s\n", i+1, sentence)
	}

	for {
		fmt.Print("\nPick a sentence number (or 'q' to quit) > ")
		choice, err := app.in.ReadString('\n')
		if err != nil {
			return err
		}
		choice = strings.TrimSpace(choice)

		switch strings.ToLower(choice) {
		case "q", "quit", "exit":
			fmt.Println("\nKeep practicing! Goodbye.")
			return nil
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(sentences) {
			fmt.Printf("  Please enter a number between 1 and %d\n", len(sentences))
			continue
		}

		if err := app.practice(context.Background(), sentences[idx-1]); err != nil {
			return err
		}
	}
}

func (app *env) practice(ctx context.Context, sentence string) error {
	fmt.Printf("\n  Target: %q\n", sentence)

	fmt.Println("\n  Step 1: Generating reference audio...")
	// slightly slowed down so the learner can follow along
	audio, err := app.speech.Synthesize(ctx, speech.SynthesizeRequest{Text: sentence, Voice: app.voice, Speed: 0.9})
	if err != nil {
		app.log.Warnw("reference synthesis failed", "error", err)
		fmt.Println("  Could not generate reference audio. Continuing anyway...")
	} else if err := os.WriteFile(app.referencePath, audio, 0o644); err != nil {
		return fmt.Errorf("saving reference audio: %w", err)
	} else {
		fmt.Printf("  Reference audio saved to: %s\n", app.referencePath)
		fmt.Println("  (Play this file to hear the correct pronunciation)")
	}

	fmt.Println("\n  Step 2: Record yourself saying the sentence.")
	fmt.Printf("  Place your WAV recording at: %s\n", app.recordingPath)
	fmt.Print("  Press Enter when your recording is ready > ")
	if _, err := app.in.ReadString('\n'); err != nil {
		return err
	}

	recording, duration, err := loadRecording(app.recordingPath)
	if err != nil {
		fmt.Printf("  Skipping — %v\n", err)
		return nil
	}
	app.log.Infow("recording loaded", "path", app.recordingPath, "bytes", len(recording), "duration", duration)

	fmt.Println("\n  Step 3: Transcribing and scoring your recording...")

	// the two calls are independent, so run them together
	var transcription *speech.Transcription
	var assessment *speech.Assessment

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		transcription, err = app.speech.Transcribe(groupCtx, recording, true)
		return err
	})
	group.Go(func() error {
		var err error
		assessment, err = app.speech.Assess(groupCtx, recording, sentence)
		return err
	})
	if err := group.Wait(); err != nil {
		fmt.Printf("  Scoring failed: %v\n", err)
		return nil
	}

	printReport(os.Stdout, assessment, transcription, sentence)
	return nil
}
