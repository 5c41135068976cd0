package enhancer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiProvider completes prompts with Google Gemini.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider creates a Gemini client.
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1)

	return &GeminiProvider{client: client, model: model}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// Complete sends prompt and concatenates the text parts of the first candidate.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}
	return sb.String(), nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
