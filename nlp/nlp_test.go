package nlp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/speechai/speechai-go/gateway"
	"github.com/speechai/speechai-go/nlp"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, handler http.Handler) *nlp.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gateway.NewClient(gateway.NewConfig(server.URL, "key-123"))
	require.NoError(t, err)

	return nlp.NewService(client)
}

func TestSentiment(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/nlp/sentiment", r.URL.Path)

		req := struct {
			Text string `json:"text"`
		}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "I love this!", req.Text)

		w.Write([]byte(`{"label":"positive","score":0.9987}`))
	}))

	result, err := svc.Sentiment(context.Background(), "I love this!")
	require.NoError(t, err)
	require.Equal(t, "positive", result.Label)
	require.Equal(t, 0.9987, result.Score)
}

func TestToxicity(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/nlp/toxicity", r.URL.Path)
		w.Write([]byte(`{"toxic":false,"score":0.02,"categories":{"insult":0.01,"threat":0.0}}`))
	}))

	result, err := svc.Toxicity(context.Background(), "have a nice day")
	require.NoError(t, err)
	require.False(t, result.Toxic)
	require.Equal(t, 0.01, result.Categories["insult"])
}

func TestEntities(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/nlp/entities", r.URL.Path)
		w.Write([]byte(`{"entities":[{"text":"Berlin","type":"LOC","start":10,"end":16}]}`))
	}))

	result, err := svc.Entities(context.Background(), "I live in Berlin")
	require.NoError(t, err)
	require.Len(t, result.Entities, 1)
	require.Equal(t, "LOC", result.Entities[0].Type)
}

func TestPIIRedaction(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/nlp/pii", r.URL.Path)

		req := struct {
			Text   string `json:"text"`
			Redact bool   `json:"redact"`
		}{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.True(t, req.Redact)

		w.Write([]byte(`{
			"entities":[{"text":"jane@example.com","type":"EMAIL","start":9,"end":25}],
			"redacted_text":"Contact [EMAIL] for details"
		}`))
	}))

	result, err := svc.PII(context.Background(), "Contact jane@example.com for details", true)
	require.NoError(t, err)
	require.Len(t, result.Entities, 1)
	require.Equal(t, "Contact [EMAIL] for details", result.RedactedText)
}

func TestDetectLanguage(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/nlp/language", r.URL.Path)
		w.Write([]byte(`{"language":"de","score":0.98}`))
	}))

	result, err := svc.DetectLanguage(context.Background(), "Guten Morgen")
	require.NoError(t, err)
	require.Equal(t, "de", result.Language)
}

func TestSentimentServerError(t *testing.T) {
	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"model is warming up"}`))
	}))

	_, err := svc.Sentiment(context.Background(), "hi")

	apiErr := &gateway.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}
