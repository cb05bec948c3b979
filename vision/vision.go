// Package vision wraps the gateway's image endpoints: background
// removal, upscaling, and face restoration. Input images travel as
// base64 inside a JSON body; results come back as raw image bytes.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/speechai/speechai-go/gateway"
)

type Service struct {
	client *gateway.Client
}

func NewService(client *gateway.Client) *Service {
	return &Service{client: client}
}

func (s *Service) RemoveBackground(ctx context.Context, image []byte) ([]byte, error) {
	return s.call(ctx, "remove-background", image)
}

func (s *Service) Upscale(ctx context.Context, image []byte) ([]byte, error) {
	return s.call(ctx, "upscale", image)
}

func (s *Service) RestoreFace(ctx context.Context, image []byte) ([]byte, error) {
	return s.call(ctx, "restore-face", image)
}

func (s *Service) call(ctx context.Context, op string, image []byte) ([]byte, error) {
	req := struct {
		Image string `json:"image"`
	}{
		Image: base64.StdEncoding.EncodeToString(image),
	}

	result, err := s.client.CallBinary(ctx, "/v1/image/"+op+"/base64", req)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", op, err)
	}

	return result, nil
}
