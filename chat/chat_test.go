package chat_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/speechai/speechai-go/chat"
	"github.com/speechai/speechai-go/gateway"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.Handler) *chat.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gateway.NewClient(gateway.NewConfig(server.URL, "key-123"))
	require.NoError(t, err)

	return chat.NewService(client)
}

func TestComplete(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		req := chat.Request{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.False(t, req.Stream)
		require.Len(t, req.Messages, 1)

		w.Write([]byte(`{
			"id": "cmpl-123",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello there!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 3, "total_tokens": 8}
		}`))
	}))

	completion, err := svc.Complete(context.Background(), chat.Request{
		Messages: []chat.Message{{Role: "user", Content: "Hello"}},
	})
	require.NoError(t, err)
	require.Equal(t, "cmpl-123", completion.ID)
	require.Len(t, completion.Choices, 1)
	require.Equal(t, "Hello there!", completion.Choices[0].Message.Content)
	require.Equal(t, 8, completion.Usage.TotalTokens)
}

func TestStreamCompletion(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := chat.Request{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.True(t, req.Stream, "streaming flag must be set on the wire")

		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"Hel", "lo ", "world"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", delta)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))

	var deltas []string
	text, err := svc.StreamCompletion(context.Background(), chat.Request{
		Messages: []chat.Message{{Role: "user", Content: "Hello"}},
	}, func(delta string) {
		deltas = append(deltas, delta)
	})
	require.NoError(t, err)
	require.Equal(t, "Hello world", text)
	require.Equal(t, []string{"Hel", "lo ", "world"}, deltas)
}

func TestStreamCompletionSkipsNonDataFrames(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: message_start\n")
		fmt.Fprint(w, ": keep-alive comment\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"ok\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))

	text, err := svc.StreamCompletion(context.Background(), chat.Request{
		Messages: []chat.Message{{Role: "user", Content: "ping"}},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "ok", text)
}

func TestStreamCompletionHTTPError(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"rate limit exceeded"}`))
	}))

	_, err := svc.StreamCompletion(context.Background(), chat.Request{
		Messages: []chat.Message{{Role: "user", Content: "Hello"}},
	}, nil)

	apiErr := &gateway.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, "rate limit exceeded", apiErr.Message)
}

func TestStreamCompletionMalformedChunk(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {not json}\n\n")
	}))

	_, err := svc.StreamCompletion(context.Background(), chat.Request{
		Messages: []chat.Message{{Role: "user", Content: "Hello"}},
	}, nil)
	require.Error(t, err)
}
