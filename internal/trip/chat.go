package trip

import (
	"context"
	"errors"
	"log"
	"time"

	"yatra/internal/ai"
)

// contactFallback is appended to chat unavailability messages so the user
// has somewhere to go when the model keeps failing.
const contactFallback = " If this keeps happening, please contact the author."

// Responder answers follow-up questions constrained to stored trip memory.
// It is the sole writer of ChatHistory.
type Responder struct {
	model ai.Provider

	retryBackoff time.Duration
}

func NewResponder(model ai.Provider) *Responder {
	return &Responder{
		model:        model,
		retryBackoff: defaultRetryBackoff,
	}
}

// Respond answers the user's question from memory. A chat failure must never
// crash the calling surface, so model errors degrade to a textual
// unavailability message after the usual bounded retries. Successful
// exchanges are appended to the chat history in order; failed ones are not
// recorded.
func (r *Responder) Respond(ctx context.Context, userText string, mem *Memory) string {
	prompt := BuildChatPrompt(mem, userText)

	reply, err := generateWithRetry(ctx, r.retryBackoff, func(ctx context.Context) (string, error) {
		return r.model.GenerateChat(ctx, prompt)
	})
	if err != nil {
		log.Printf("chat generation failed: %v", err)
		var genErr *GenerationError
		if errors.As(err, &genErr) {
			return genErr.UserMessage() + contactFallback
		}
		return FailureUnavailable.UserMessage() + contactFallback
	}

	mem.AppendChat(userText, reply)
	return reply
}
