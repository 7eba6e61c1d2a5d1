package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.5-flash-lite"

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client    *genai.Client
	planModel *genai.GenerativeModel
	chatModel *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Plan generation asks for JSON; the response parser still tolerates
	// fenced or prose-wrapped output in case the model ignores the MIME hint.
	planModel := client.GenerativeModel(geminiModel)
	planModel.ResponseMIMEType = "application/json"
	planModel.SetTemperature(0.4)

	// Chat replies are plain text.
	chatModel := client.GenerativeModel(geminiModel)
	chatModel.SetTemperature(0.4)

	return &GeminiProvider{
		client:    client,
		planModel: planModel,
		chatModel: chatModel,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// GeneratePlan sends the travel-plan prompt and returns the raw response text.
func (p *GeminiProvider) GeneratePlan(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, p.planModel, prompt)
}

// GenerateChat sends the chat prompt and returns the reply text.
func (p *GeminiProvider) GenerateChat(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, p.chatModel, prompt)
}

func (p *GeminiProvider) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("gemini: empty prompt")
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}

	return text.String(), nil
}
