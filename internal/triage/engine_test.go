package triage

import (
	"errors"
	"strings"
	"testing"
)

func TestRespondUnknownSession(t *testing.T) {
	engine := NewEngine(loadTestModel(t))
	if _, err := engine.Respond("nope", "hello"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func respond(t *testing.T, engine *Engine, id, input string) Reply {
	t.Helper()
	reply, err := engine.Respond(id, input)
	if err != nil {
		t.Fatalf("Respond(%q): %v", input, err)
	}
	return reply
}

func TestFullConversation(t *testing.T) {
	engine := NewEngine(loadTestModel(t))

	id, greeting := engine.Start()
	if id == "" {
		t.Fatal("expected a session id")
	}
	if !strings.Contains(greeting.Message, "name") {
		t.Errorf("unexpected greeting: %q", greeting.Message)
	}

	reply := respond(t, engine, id, "Anna")
	if !strings.Contains(reply.Message, "Anna") {
		t.Errorf("greeting should echo the name, got %q", reply.Message)
	}

	reply = respond(t, engine, id, "headache")
	if !strings.Contains(reply.Message, "0) headache") {
		t.Errorf("expected an indexed symptom list, got %q", reply.Message)
	}

	reply = respond(t, engine, id, "0")
	if !strings.Contains(reply.Message, "how many days") {
		t.Errorf("expected the duration question, got %q", reply.Message)
	}

	reply = respond(t, engine, id, "5")
	if !strings.Contains(reply.Message, "itching") {
		t.Errorf("expected the first follow-up in vocabulary order, got %q", reply.Message)
	}

	// Follow-ups run itching, skin_rash, high_fever, fatigue. Confirming the
	// last two steers the prediction to Malaria.
	reply = respond(t, engine, id, "no")       // skin_rash next
	reply = respond(t, engine, id, "no")       // high_fever next
	reply = respond(t, engine, id, "yes")      // fatigue next
	reply = respond(t, engine, id, "yes")      // last follow-up answered
	if !reply.Finished {
		t.Fatalf("expected the conversation to finish, got %q", reply.Message)
	}
	if !strings.Contains(reply.Message, "Malaria") {
		t.Errorf("expected a Malaria prediction, got %q", reply.Message)
	}
	if !strings.Contains(reply.Message, "consultation from a doctor") {
		t.Errorf("expected the severity advice for a 5-day episode, got %q", reply.Message)
	}

	// Finished sessions are gone.
	if _, err := engine.Respond(id, "hello again"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after finish, got %v", err)
	}
}

func TestUnrecognizedSymptomRepeatsQuestion(t *testing.T) {
	engine := NewEngine(loadTestModel(t))
	id, _ := engine.Start()
	respond(t, engine, id, "Anna")

	reply := respond(t, engine, id, "toothache")
	if !strings.Contains(reply.Message, "didn't recognize") {
		t.Errorf("expected a retry prompt, got %q", reply.Message)
	}

	// The session stays on the same step and accepts a valid symptom next.
	reply = respond(t, engine, id, "fever")
	if !strings.Contains(reply.Message, "high fever") {
		t.Errorf("expected the symptom list after a retry, got %q", reply.Message)
	}
}

func TestInvalidSelectionAndDaysAreReprompted(t *testing.T) {
	engine := NewEngine(loadTestModel(t))
	id, _ := engine.Start()
	respond(t, engine, id, "Anna")
	respond(t, engine, id, "headache")

	if reply := respond(t, engine, id, "abc"); !strings.Contains(reply.Message, "enter a number") {
		t.Errorf("expected a number prompt, got %q", reply.Message)
	}
	if reply := respond(t, engine, id, "7"); !strings.Contains(reply.Message, "Invalid selection") {
		t.Errorf("expected an out-of-range prompt, got %q", reply.Message)
	}

	respond(t, engine, id, "0")
	if reply := respond(t, engine, id, "soon"); !strings.Contains(reply.Message, "valid number of days") {
		t.Errorf("expected a days prompt, got %q", reply.Message)
	}
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	first := store.Create()
	second := store.Create()
	if first.ID == second.ID {
		t.Fatal("session ids must be unique")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}

	if _, ok := store.Get(first.ID); !ok {
		t.Error("created session not found")
	}

	store.Delete(first.ID)
	if _, ok := store.Get(first.ID); ok {
		t.Error("deleted session still present")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session after delete, got %d", store.Len())
	}
}
