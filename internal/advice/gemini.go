package advice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tartampluch/go-saju/internal/config"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New(config.ErrGeminiEmpty)

// GeminiConfig selects the model and, for tests, an alternate endpoint.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiGenerator implements Generator with the Google GenAI SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates the SDK client. No request is sent.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %s", config.ErrGeminiClient, config.ErrAPIKeyEmpty)
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultAdviceModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = NewHTTPClient()
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrGeminiClient, err)
	}

	return &GeminiGenerator{client: client, model: cfg.Model}, nil
}

// Generate asks for a JSON answer and returns the concatenated text parts.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompGemini),
		slog.String(config.LogKeyModel, g.model),
	)
	log.Debug(config.MsgGeminiRequest)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: config.MimeJSON,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrGeminiCall, err)
	}

	text := resp.Text()
	if text == "" {
		return "", errEmptyResponse
	}

	log.Debug(config.MsgGeminiResponded, slog.Int(config.LogKeySizeBytes, len(text)))
	return text, nil
}
