// Package genai is a thin client for the Gemini generateContent REST endpoint.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
	"github.com/wayfarer-ai/wayfarer/internal/observability/metrics"
)

const (
	// DefaultBaseURL is the public Gemini API surface.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel is the completion model used for both itinerary
	// generation and chat.
	DefaultModel = "gemini-2.5-flash"

	// fallbackErrorMessage is shown when an error body carries no message.
	fallbackErrorMessage = "Unknown error"
)

// Config holds the client settings. APIKey may be empty; every call then
// fails with models.ErrNotConfigured before any network I/O.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string

	// HTTPClient is injectable for tests. The default client carries no
	// timeout: a request is resolved only by success or failure of the
	// remote call.
	HTTPClient *http.Client
}

// Client talks to a single completion endpoint. One request per user action,
// no retries.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a completion client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Client{
		httpClient: cfg.HTTPClient,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		logger:     logger,
	}
}

// Wire shapes of the generateContent protocol.

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateContentRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent sends a single-turn completion request. When jsonOutput is
// set the model is asked for an application/json response body.
func (c *Client) GenerateContent(ctx context.Context, systemPrompt, userQuery string, jsonOutput bool) (string, error) {
	req := generateContentRequest{
		Contents:          []content{{Parts: []part{{Text: userQuery}}}},
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt}}},
	}
	if jsonOutput {
		req.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}
	return c.generate(ctx, "GenerateContent", req)
}

// ChatCompletion sends the accumulated conversation plus the latest user
// message. systemParts become the parts of the system instruction, in order.
func (c *Client) ChatCompletion(ctx context.Context, history []models.ChatMessage, userMessage string, systemParts []string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, content{Role: msg.Role, Parts: []part{{Text: msg.Content}}})
	}
	contents = append(contents, content{Role: models.RoleUser, Parts: []part{{Text: userMessage}}})

	system := &content{Parts: make([]part, 0, len(systemParts))}
	for _, text := range systemParts {
		system.Parts = append(system.Parts, part{Text: text})
	}

	return c.generate(ctx, "ChatCompletion", generateContentRequest{
		Contents:          contents,
		SystemInstruction: system,
	})
}

func (c *Client) generate(ctx context.Context, op string, reqBody generateContentRequest) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, op, trace.WithAttributes(
		attribute.String("model", c.model),
		attribute.Int("contents.count", len(reqBody.Contents)),
	))
	defer span.End()

	if c.apiKey == "" {
		span.RecordError(models.ErrNotConfigured)
		span.SetStatus(codes.Error, "API key not set")
		return "", models.ErrNotConfigured
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode request")
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to build request")
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.Get().RemoteCallDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("op", op)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		return "", &models.RemoteError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read response")
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		remoteErr := &models.RemoteError{StatusCode: resp.StatusCode, Message: fallbackErrorMessage}
		var errBody errorResponse
		if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error.Message != "" {
			remoteErr.Message = errBody.Error.Message
		}
		c.logger.Warn("Completion request rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", remoteErr.Message))
		span.RecordError(remoteErr)
		span.SetStatus(codes.Error, "Non-success status")
		return "", remoteErr
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Undecodable response")
		return "", models.ErrMalformedResponse
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		span.SetStatus(codes.Error, "Response carried no candidates")
		return "", models.ErrMalformedResponse
	}

	text := result.Candidates[0].Content.Parts[0].Text
	c.logger.Debug("Completion request succeeded",
		zap.String("op", op),
		zap.Int("response.length", len(text)))
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return text, nil
}
