// Package speech wraps the gateway's pronunciation assessment,
// speech-to-text, and text-to-speech endpoints with typed calls.
// Callers pass raw audio bytes; base64 encoding for the JSON-bodied
// endpoints happens here, not in the gateway client.
package speech

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/speechai/speechai-go/gateway"
)

const (
	DefaultVoice  = "af_heart"
	DefaultSpeed  = 1.0
	DefaultFormat = "wav"
)

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

// Assess scores audio against the text the speaker was supposed to say.
func (s *Service) Assess(ctx context.Context, audio []byte, text string) (*Assessment, error) {
	req := struct {
		Audio  string `json:"audio"`
		Text   string `json:"text"`
		Format string `json:"format"`
	}{
		Audio:  base64.StdEncoding.EncodeToString(audio),
		Text:   text,
		Format: DefaultFormat,
	}

	result := Assessment{}
	if err := s.client.CallJSON(ctx, "/v1/pronunciation/assess/base64", req, &result); err != nil {
		return nil, fmt.Errorf("assessing pronunciation: %w", err)
	}

	return &result, nil
}

// Transcribe converts audio to text, with word-level timestamps when
// includeTimestamps is set.
func (s *Service) Transcribe(ctx context.Context, audio []byte, includeTimestamps bool) (*Transcription, error) {
	req := struct {
		Audio             string `json:"audio"`
		IncludeTimestamps bool   `json:"include_timestamps"`
	}{
		Audio:             base64.StdEncoding.EncodeToString(audio),
		IncludeTimestamps: includeTimestamps,
	}

	result := Transcription{}
	if err := s.client.CallJSON(ctx, "/v1/stt/transcribe/base64", req, &result); err != nil {
		return nil, fmt.Errorf("transcribing audio: %w", err)
	}

	return &result, nil
}

// Synthesize converts text to speech and returns the raw WAV bytes.
// Zero-valued Voice, Speed, and Format fall back to the gateway defaults.
func (s *Service) Synthesize(ctx context.Context, req SynthesizeRequest) ([]byte, error) {
	if req.Voice == "" {
		req.Voice = DefaultVoice
	}
	if req.Speed == 0 {
		req.Speed = DefaultSpeed
	}
	if req.Format == "" {
		req.Format = DefaultFormat
	}

	audio, err := s.client.CallBinary(ctx, "/v1/tts/synthesize", req)
	if err != nil {
		return nil, fmt.Errorf("synthesizing speech: %w", err)
	}

	return audio, nil
}

// Voices lists the identifiers accepted by Synthesize.
func (s *Service) Voices(ctx context.Context) ([]string, error) {
	var voices []string
	if err := s.client.Get(ctx, "/v1/tts/voices", &voices); err != nil {
		return nil, fmt.Errorf("listing voices: %w", err)
	}

	return voices, nil
}
