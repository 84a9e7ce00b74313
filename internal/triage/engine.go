package triage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ErrNoSession is returned when a respond call names an unknown session.
var ErrNoSession = errors.New("session not found")

// followUpLimit caps the number of yes/no follow-up questions per conversation.
const followUpLimit = 10

// Reply is one wizard turn returned to the client.
type Reply struct {
	Message  string `json:"message"`
	Finished bool   `json:"finished,omitempty"`
}

// Engine drives the triage wizard over the immutable model and the session
// store. Each conversation advances strictly greet -> initial symptom ->
// select symptom -> days -> follow-ups -> result.
type Engine struct {
	model    *Model
	sessions *SessionStore
	mu       sync.Mutex
}

// NewEngine creates an Engine over the given model.
func NewEngine(model *Model) *Engine {
	return &Engine{model: model, sessions: NewSessionStore()}
}

// Start opens a new conversation and returns its session ID and greeting.
func (e *Engine) Start() (string, Reply) {
	session := e.sessions.Create()
	return session.ID, Reply{Message: "Hello! I'm your HealthCare ChatBot. What's your name?"}
}

// Respond advances the conversation one turn. The session is looked up by its
// explicit key; turns within one session are serialized.
func (e *Engine) Respond(sessionID, input string) (Reply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.sessions.Get(sessionID)
	if !ok {
		return Reply{}, ErrNoSession
	}

	input = strings.TrimSpace(input)

	switch session.Step {
	case StepGreet:
		return e.handleGreet(session, input), nil
	case StepInitialSymptom:
		return e.handleInitialSymptom(session, input), nil
	case StepSelectSymptom:
		return e.handleSelectSymptom(session, input), nil
	case StepDays:
		return e.handleDays(session, input), nil
	case StepFollowUp:
		return e.handleFollowUp(session, input), nil
	default:
		return Reply{}, fmt.Errorf("session %s in unknown step %d", session.ID, session.Step)
	}
}

func (e *Engine) handleGreet(session *Session, input string) Reply {
	session.Name = input
	session.Step = StepInitialSymptom
	return Reply{Message: fmt.Sprintf("Hello, %s! Please tell me the first symptom you're experiencing.", input)}
}

func (e *Engine) handleInitialSymptom(session *Session, input string) Reply {
	matches := e.model.MatchSymptoms(input)
	if len(matches) == 0 {
		return Reply{Message: "Sorry, I didn't recognize that symptom. Please try again."}
	}

	session.Matches = matches
	session.Step = StepSelectSymptom

	var b strings.Builder
	b.WriteString("I found these related symptoms:\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "%d) %s\n", i, strings.ReplaceAll(m, "_", " "))
	}
	b.WriteString("Select the one you meant (enter the number):")
	return Reply{Message: b.String()}
}

func (e *Engine) handleSelectSymptom(session *Session, input string) Reply {
	choice, err := strconv.Atoi(input)
	if err != nil {
		return Reply{Message: "Please enter a number."}
	}
	if choice < 0 || choice >= len(session.Matches) {
		return Reply{Message: "Invalid selection. Please enter a valid number."}
	}

	selected := session.Matches[choice]
	session.Reported = append(session.Reported, selected)
	session.Step = StepDays
	return Reply{Message: fmt.Sprintf("Okay, you've had %s. For how many days?", strings.ReplaceAll(selected, "_", " "))}
}

func (e *Engine) handleDays(session *Session, input string) Reply {
	days, err := strconv.Atoi(input)
	if err != nil || days < 0 {
		return Reply{Message: "Please enter a valid number of days."}
	}

	session.Days = days
	session.Pending = e.model.FollowUps(session.Reported, followUpLimit)
	session.Step = StepFollowUp

	return e.nextFollowUp(session)
}

func (e *Engine) handleFollowUp(session *Session, input string) Reply {
	answer := strings.ToLower(input)
	if answer == "yes" || answer == "y" {
		session.Reported = append(session.Reported, session.Current)
	}

	return e.nextFollowUp(session)
}

func (e *Engine) nextFollowUp(session *Session) Reply {
	if len(session.Pending) == 0 {
		return e.finish(session)
	}

	session.Current = session.Pending[0]
	session.Pending = session.Pending[1:]
	return Reply{Message: fmt.Sprintf("Are you experiencing %s? (yes/no)", strings.ReplaceAll(session.Current, "_", " "))}
}

func (e *Engine) finish(session *Session) Reply {
	result := e.model.Predict(session.Reported)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your symptoms, you may have %s.\n%s\n", result.Disease, result.Description)
	b.WriteString("Take these measures:\n")
	for i, p := range result.Precautions {
		fmt.Fprintf(&b, "%d) %s\n", i+1, p)
	}
	if e.model.SevereCondition(session.Reported, session.Days) {
		b.WriteString("You should take the consultation from a doctor.")
	}

	e.sessions.Delete(session.ID)
	return Reply{Message: b.String(), Finished: true}
}
