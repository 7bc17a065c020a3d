package llm

import (
	"context"
	"fmt"

	"fprep/internal/config"
	"fprep/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

// GeminiClient is a client for the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Complete sends the messages to the Gemini model and returns the generated text.
// System messages become the model's system instruction; the rest are joined
// as user content.
func (c *GeminiClient) Complete(ctx context.Context, messages []Message, temperature float32) (ChatResponse, error) {
	model := c.client.GenerativeModel(geminiModel)
	model.SetTemperature(temperature)

	var parts []genai.Part
	for _, m := range messages {
		if m.Role == RoleSystem {
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(m.Content)},
			}
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}

	if len(parts) == 0 {
		return ChatResponse{}, fmt.Errorf("no user content to send")
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ChatResponse{}, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ChatResponse{}, fmt.Errorf("generated content is not text")
	}

	usage := shared.TokenUsage{Model: geminiModel}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ChatResponse{Content: string(text), Usage: usage}, nil
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
