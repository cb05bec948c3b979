// Package chat wraps the gateway's OpenAI-compatible chat completion
// endpoint, in both one-shot and Server-Sent-Events streaming form.
package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/speechai/speechai-go/gateway"
)

const completionsPath = "/v1/chat/completions"

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

// Complete sends the conversation and waits for the full completion.
func (s *Service) Complete(ctx context.Context, req Request) (*Completion, error) {
	req.Stream = false

	result := Completion{}
	if err := s.client.CallJSON(ctx, completionsPath, req, &result); err != nil {
		return nil, fmt.Errorf("completing chat: %w", err)
	}

	return &result, nil
}

// StreamCompletion sends the conversation with SSE streaming enabled,
// invoking onDelta for every incremental token chunk (nil is fine), and
// returns the assembled text once the stream finishes.
func (s *Service) StreamCompletion(ctx context.Context, req Request, onDelta func(string)) (string, error) {
	req.Stream = true

	rsp, err := s.client.Stream(ctx, completionsPath, req)
	if err != nil {
		return "", fmt.Errorf("starting chat stream: %w", err)
	}
	defer rsp.Body.Close()

	return readStream(rsp.Body, onDelta)
}

// readStream walks the SSE framing: "data: <json>" lines terminated by
// a "data: [DONE]" sentinel. Lines that aren't data frames are skipped.
func readStream(body io.Reader, onDelta func(string)) (string, error) {
	scanner := bufio.NewScanner(body)
	// data lines carrying long deltas can exceed the default token size
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	text := strings.Builder{}
	for scanner.Scan() {
		line := scanner.Text()

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		msgType, payload := parts[0], strings.TrimSpace(parts[1])
		if msgType != "data" {
			continue
		}
		if payload == "[DONE]" {
			break
		}

		chunk := streamChunk{}
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return "", fmt.Errorf("unmarshaling stream chunk: %w", err)
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if onDelta != nil {
				onDelta(choice.Delta.Content)
			}
			text.WriteString(choice.Delta.Content)
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading stream: %w", err)
	}

	return text.String(), nil
}
