package trip

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func testResponder(model *fakeModel) *Responder {
	r := NewResponder(model)
	r.retryBackoff = time.Millisecond
	return r
}

func TestRespondAppendsHistory(t *testing.T) {
	model := &fakeModel{chatReply: "About 185 km by road."}
	mem := NewMemory()

	reply := testResponder(model).Respond(context.Background(), "how far is it?", mem)

	if reply != "About 185 km by road." {
		t.Errorf("reply = %q", reply)
	}
	if len(mem.ChatHistory) != 2 {
		t.Fatalf("ChatHistory length = %d, want 2", len(mem.ChatHistory))
	}
	if mem.ChatHistory[0].Role != "user" || mem.ChatHistory[0].Text != "how far is it?" {
		t.Errorf("first turn = %+v", mem.ChatHistory[0])
	}
	if mem.ChatHistory[1].Role != "assistant" || mem.ChatHistory[1].Text != "About 185 km by road." {
		t.Errorf("second turn = %+v", mem.ChatHistory[1])
	}
}

func TestRespondGroundsPromptInMemory(t *testing.T) {
	model := &fakeModel{chatReply: "Yes, within budget."}
	mem := NewMemory()
	mem.RecordTrip(TripRequest{Source: "Kolkata", Destinations: []string{"Digha"}, Budget: 8000},
		&TravelPlan{Source: "Kolkata", Destinations: []string{"Digha"}, Budget: 8000})
	mem.AppendChat("how far is it?", "About 185 km by road.")

	testResponder(model).Respond(context.Background(), "can I afford a taxi?", mem)

	prompt := model.prompts[0]
	if !strings.Contains(prompt, `"source":"Kolkata"`) {
		t.Error("chat prompt missing the last trip")
	}
	if !strings.Contains(prompt, "user: how far is it?") {
		t.Error("chat prompt missing prior history")
	}
	if !strings.Contains(prompt, "can I afford a taxi?") {
		t.Error("chat prompt missing the question")
	}
}

func TestRespondDegradesOnModelFailure(t *testing.T) {
	model := &fakeModel{chatErr: errors.New("googleapi: Error 429: quota exceeded")}
	mem := NewMemory()

	reply := testResponder(model).Respond(context.Background(), "how far is it?", mem)

	if !strings.Contains(reply, "too many requests") {
		t.Errorf("reply = %q, want rate-limit message", reply)
	}
	if !strings.HasSuffix(reply, contactFallback) {
		t.Errorf("reply = %q, want contact fallback suffix", reply)
	}
	if len(mem.ChatHistory) != 0 {
		t.Error("failed exchanges must not be recorded")
	}
	// Bounded transport retries apply to chat too.
	if model.chatCalls != 2 {
		t.Errorf("chatCalls = %d, want 2", model.chatCalls)
	}
}

func TestRespondCanonicalReplies(t *testing.T) {
	for _, canned := range []string{
		ReplyInsufficientContext,
		ReplyNotTravelRelated,
		ReplySuggestRedirect,
	} {
		model := &fakeModel{chatReply: canned}
		mem := NewMemory()

		reply := testResponder(model).Respond(context.Background(), "what is the capital of France?", mem)
		if reply != canned {
			t.Errorf("reply = %q, want %q verbatim", reply, canned)
		}
	}
}
