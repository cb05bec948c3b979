package vision_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/speechai/speechai-go/gateway"
	"github.com/speechai/speechai-go/vision"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.Handler) *vision.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gateway.NewClient(gateway.NewConfig(server.URL, "key-123"))
	require.NoError(t, err)

	return vision.NewService(client)
}

func TestImageOperations(t *testing.T) {
	input := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x01, 0x02} // PNG magic + junk
	output := make([]byte, 4096)

	tests := []struct {
		Name     string
		WantPath string
		Call     func(svc *vision.Service) ([]byte, error)
	}{
		{
			Name:     "remove background",
			WantPath: "/v1/image/remove-background/base64",
			Call: func(svc *vision.Service) ([]byte, error) {
				return svc.RemoveBackground(context.Background(), input)
			},
		},
		{
			Name:     "upscale",
			WantPath: "/v1/image/upscale/base64",
			Call: func(svc *vision.Service) ([]byte, error) {
				return svc.Upscale(context.Background(), input)
			},
		},
		{
			Name:     "restore face",
			WantPath: "/v1/image/restore-face/base64",
			Call: func(svc *vision.Service) ([]byte, error) {
				return svc.RestoreFace(context.Background(), input)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, test.WantPath, r.URL.Path)

				req := struct {
					Image string `json:"image"`
				}{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

				decoded, err := base64.StdEncoding.DecodeString(req.Image)
				require.NoError(t, err)
				require.Equal(t, input, decoded)

				w.Header().Set("Content-Type", "image/png")
				w.Write(output)
			}))

			result, err := test.Call(svc)
			require.NoError(t, err)
			require.Len(t, result, 4096)
		})
	}
}

func TestImageOperationError(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"message":"image exceeds size limit"}`))
	}))

	_, err := svc.Upscale(context.Background(), make([]byte, 64))

	apiErr := &gateway.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
}
