package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// metricReader collects the instruments the client records to. It must be the
// global provider before the first request, since instruments are created once.
var metricReader *sdkmetric.ManualReader

func TestMain(m *testing.M) {
	metricReader = sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader)))
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{
		APIKey:     "test-key",
		Model:      "gemini-2.5-flash",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	}, zap.NewNop())
	return client, srv
}

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateContent_Success(t *testing.T) {
	var captured struct {
		method string
		path   string
		query  string
		body   generateContentRequest
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured.body))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, candidateResponse(`{"tripTitle":"Lisbon"}`))
	})

	text, err := client.GenerateContent(context.Background(), "system prompt", "user query", true)
	require.NoError(t, err)
	assert.Equal(t, `{"tripTitle":"Lisbon"}`, text)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", captured.path)
	assert.Equal(t, "key=test-key", captured.query)

	require.Len(t, captured.body.Contents, 1)
	require.Len(t, captured.body.Contents[0].Parts, 1)
	assert.Equal(t, "user query", captured.body.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.body.SystemInstruction)
	assert.Equal(t, "system prompt", captured.body.SystemInstruction.Parts[0].Text)
	require.NotNil(t, captured.body.GenerationConfig)
	assert.Equal(t, "application/json", captured.body.GenerationConfig.ResponseMIMEType)
}

func TestGenerateContent_NoJSONOutputOmitsGenerationConfig(t *testing.T) {
	var req generateContentRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		io.WriteString(w, candidateResponse("plain text"))
	})

	_, err := client.GenerateContent(context.Background(), "sys", "query", false)
	require.NoError(t, err)
	assert.Nil(t, req.GenerationConfig)
}

func TestGenerateContent_RemoteErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"quota exceeded"}}`)
	})

	_, err := client.GenerateContent(context.Background(), "sys", "query", true)
	require.Error(t, err)

	var remoteErr *models.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusTooManyRequests, remoteErr.StatusCode)
	assert.Equal(t, "quota exceeded", remoteErr.Message)
	assert.Contains(t, remoteErr.Error(), "quota exceeded")
}

func TestGenerateContent_RemoteErrorFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `not json at all`)
	})

	_, err := client.GenerateContent(context.Background(), "sys", "query", true)
	require.Error(t, err)

	var remoteErr *models.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "Unknown error", remoteErr.Message)
}

func TestGenerateContent_MissingKeySkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()}, zap.NewNop())
	_, err := client.GenerateContent(context.Background(), "sys", "query", true)
	assert.ErrorIs(t, err, models.ErrNotConfigured)
	assert.Zero(t, requests)
}

func TestGenerateContent_EmptyCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	})

	_, err := client.GenerateContent(context.Background(), "sys", "query", true)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestGenerateContent_UndecodableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>gateway error</html>`)
	})

	_, err := client.GenerateContent(context.Background(), "sys", "query", true)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
}

func TestGenerateContent_RecordsRemoteCallDuration(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, candidateResponse("ok"))
	})

	_, err := client.GenerateContent(context.Background(), "sys", "query", true)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, metricReader.Collect(context.Background(), &rm))

	var hist *metricdata.Histogram[float64]
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == "completion_request_duration_seconds" {
				h, ok := m.Data.(metricdata.Histogram[float64])
				require.True(t, ok)
				hist = &h
			}
		}
	}
	require.NotNil(t, hist, "duration histogram was not recorded")
	require.NotEmpty(t, hist.DataPoints)

	var found bool
	for _, dp := range hist.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key("op")); ok && v.AsString() == "GenerateContent" {
			found = true
			assert.Positive(t, dp.Count)
		}
	}
	assert.True(t, found, "no data point tagged with the GenerateContent op")
}

func TestChatCompletion_SendsFullHistoryInOrder(t *testing.T) {
	var req generateContentRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		io.WriteString(w, candidateResponse("sure thing"))
	})

	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "first question"},
		{Role: models.RoleModel, Content: "first answer"},
	}
	reply, err := client.ChatCompletion(context.Background(), history, "second question", []string{"assistant prompt", "Current Itinerary Context: Not available."})
	require.NoError(t, err)
	assert.Equal(t, "sure thing", reply)

	require.Len(t, req.Contents, 3)
	assert.Equal(t, "user", req.Contents[0].Role)
	assert.Equal(t, "first question", req.Contents[0].Parts[0].Text)
	assert.Equal(t, "model", req.Contents[1].Role)
	assert.Equal(t, "first answer", req.Contents[1].Parts[0].Text)
	assert.Equal(t, "user", req.Contents[2].Role)
	assert.Equal(t, "second question", req.Contents[2].Parts[0].Text)

	require.NotNil(t, req.SystemInstruction)
	require.Len(t, req.SystemInstruction.Parts, 2)
	assert.Equal(t, "assistant prompt", req.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "Current Itinerary Context: Not available.", req.SystemInstruction.Parts[1].Text)
	assert.Nil(t, req.GenerationConfig)
}
