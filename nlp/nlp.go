// Package nlp wraps the gateway's text analysis endpoints: toxicity,
// sentiment, entity extraction, PII detection, and language detection.
package nlp

import (
	"context"
	"fmt"

	"github.com/speechai/speechai-go/gateway"
)

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

type textRequest struct {
	Text string `json:"text"`
}

func (s *Service) Sentiment(ctx context.Context, text string) (*SentimentResult, error) {
	result := SentimentResult{}
	if err := s.client.CallJSON(ctx, "/v1/nlp/sentiment", textRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("analyzing sentiment: %w", err)
	}

	return &result, nil
}

func (s *Service) Toxicity(ctx context.Context, text string) (*ToxicityResult, error) {
	result := ToxicityResult{}
	if err := s.client.CallJSON(ctx, "/v1/nlp/toxicity", textRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("analyzing toxicity: %w", err)
	}

	return &result, nil
}

func (s *Service) Entities(ctx context.Context, text string) (*EntitiesResult, error) {
	result := EntitiesResult{}
	if err := s.client.CallJSON(ctx, "/v1/nlp/entities", textRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("extracting entities: %w", err)
	}

	return &result, nil
}

// PII finds personally identifiable information in text. With redact
// set, the result also carries a copy of the text with every PII span
// masked out.
func (s *Service) PII(ctx context.Context, text string, redact bool) (*PIIResult, error) {
	req := struct {
		Text   string `json:"text"`
		Redact bool   `json:"redact"`
	}{Text: text, Redact: redact}

	result := PIIResult{}
	if err := s.client.CallJSON(ctx, "/v1/nlp/pii", req, &result); err != nil {
		return nil, fmt.Errorf("detecting PII: %w", err)
	}

	return &result, nil
}

func (s *Service) DetectLanguage(ctx context.Context, text string) (*LanguageResult, error) {
	result := LanguageResult{}
	if err := s.client.CallJSON(ctx, "/v1/nlp/language", textRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("detecting language: %w", err)
	}

	return &result, nil
}
