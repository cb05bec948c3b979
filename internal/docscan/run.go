// Package docscan runs a document through the gateway's text analysis
// endpoints: language detection, sentiment, toxicity, and PII scanning
// with optional redaction. Accepts plain text files or PDFs.
package docscan

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"rsc.io/pdf"

	"github.com/speechai/speechai-go/internal/config"
	"github.com/speechai/speechai-go/internal/logger"
	"github.com/speechai/speechai-go/nlp"
)

// maxChars caps how much document text goes to the gateway per scan.
const maxChars = 20000

type env struct {
	docPath string
	redact  bool

	nlp *nlp.Service
	log *zap.SugaredLogger
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
	fl := flag.NewFlagSet("docscan", flag.ContinueOnError)

	fl.BoolVar(&app.redact, "r", false, "print a redacted copy of the document text")
	fl.BoolVar(&app.redact, "redact", false, "print a redacted copy of the document text")

	if err := fl.Parse(args); err != nil {
		return err
	}

	if fl.NArg() < 1 {
		return fmt.Errorf("usage: docscan [-redact] <file.pdf|file.txt>")
	}
	app.docPath = fl.Arg(0)

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
	app.nlp = nlp.NewService(client)

	text, err := extractText(app.docPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text found in %s", app.docPath)
	}
	if len(text) > maxChars {
		app.log.Infow("truncating document text", "path", app.docPath, "chars", len(text), "max", maxChars)
		text = text[:maxChars]
	}

	ctx := context.Background()

	language, err := app.nlp.DetectLanguage(ctx, text)
	if err != nil {
		return err
	}

	sentiment, err := app.nlp.Sentiment(ctx, text)
	if err != nil {
		return err
	}

	toxicity, err := app.nlp.Toxicity(ctx, text)
	if err != nil {
		return err
	}

	pii, err := app.nlp.PII(ctx, text, app.redact)
	if err != nil {
		return err
	}

	fmt.Printf("Document  : %s (%d chars scanned)\n", app.docPath, len(text))
	fmt.Printf("Language  : %s (%.2f)\n", language.Language, language.Score)
	fmt.Printf("Sentiment : %s (%.2f)\n", sentiment.Label, sentiment.Score)
	fmt.Printf("Toxic     : %v (%.2f)\n", toxicity.Toxic, toxicity.Score)

	if len(pii.Entities) > 0 {
		fmt.Printf("\nPII found (%d):\n", len(pii.Entities))
		for _, entity := range pii.Entities {
			fmt.Printf("  %-10s %q [%d:%d]\n", entity.Type, entity.Text, entity.Start, entity.End)
		}
	} else {
		fmt.Println("\nNo PII found.")
	}

	if app.redact && pii.RedactedText != "" {
		fmt.Printf("\nRedacted text:\n%s\n", pii.RedactedText)
	}

	return nil
}

// extractText pulls the text out of a PDF page by page; anything that
// isn't a PDF is read as plain text.
func extractText(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	file, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	text := strings.Builder{}
	for i := 1; i <= file.NumPage(); i++ {
		for _, t := range file.Page(i).Content().Text {
			text.WriteString(t.S)
			text.WriteString("\n")
		}
	}

	return text.String(), nil
}
