package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"hospital-services/internal/triage"

	"github.com/gin-gonic/gin"
)

func chatbotRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"Training.csv":            "headache,fatigue,prognosis\n1,1,Common Cold\n",
		"Symptom_severity.csv":    "headache,3\nfatigue,4\n",
		"symptom_Description.csv": "Common Cold,A viral infection.\n",
		"symptom_precaution.csv":  "Common Cold,rest,drink fluids\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	model, err := triage.Load(dir)
	if err != nil {
		t.Fatalf("loading triage data: %v", err)
	}

	gin.SetMode(gin.TestMode)
	h := NewChatbotHandler(triage.NewEngine(model))
	router := gin.New()
	router.POST("/chatbot/start/", h.StartConversation)
	router.POST("/chatbot/respond/", h.Respond)
	return router
}

func TestStartConversationReturnsSession(t *testing.T) {
	router := chatbotRouter(t)

	w := postJSON(router, "/chatbot/start/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.SessionID == "" || body.Message == "" {
		t.Errorf("incomplete start response: %+v", body)
	}
}

func TestRespondUnknownSessionIsBadRequest(t *testing.T) {
	router := chatbotRouter(t)

	w := postJSON(router, "/chatbot/respond/", `{"session_id":"missing","input":"hi"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRespondAdvancesConversation(t *testing.T) {
	router := chatbotRouter(t)

	w := postJSON(router, "/chatbot/start/", "")
	var start struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &start); err != nil {
		t.Fatalf("decoding start response: %v", err)
	}

	w = postJSON(router, "/chatbot/respond/", `{"session_id":"`+start.SessionID+`","input":"Anna"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var reply struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decoding reply: %v", err)
	}
	if reply.Message == "" {
		t.Error("expected a non-empty wizard reply")
	}
}
