package ai

import (
	"context"
)

// Provider defines the contract for interacting with generative models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Provider interface {
	// GeneratePlan sends a travel-plan prompt and returns the raw model text.
	// The caller is responsible for extracting and validating the JSON payload.
	GeneratePlan(ctx context.Context, prompt string) (string, error)

	// GenerateChat sends a conversational prompt and returns the reply text.
	GenerateChat(ctx context.Context, prompt string) (string, error)
}
