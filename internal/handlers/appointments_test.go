package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-services/internal/remote"

	"github.com/gin-gonic/gin"
)

// verdictChecker resolves verdicts per service without any network.
type verdictChecker struct {
	verdicts map[string]remote.Verdict
	calls    []string
}

func (f *verdictChecker) Check(ctx context.Context, service string, id uint) remote.Verdict {
	f.calls = append(f.calls, service)
	return f.verdicts[service]
}

func appointmentRouter(checker remote.ExistenceChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	// The DB is only reached after reference validation passes, so the
	// failure paths under test never touch it.
	h := NewAppointmentHandler(nil, remote.NewValidator(checker))
	router := gin.New()
	router.POST("/api/appointment/", h.CreateAppointment)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	checker := &verdictChecker{verdicts: map[string]remote.Verdict{
		"patient": remote.NotFound,
		"doctor":  remote.Exists,
	}}
	router := appointmentRouter(checker)

	w := postJSON(router, "/api/appointment/",
		`{"patient_id":99,"doctor_id":1,"appointment_date":"2026-09-01","appointment_time":"10:00"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"Invalid patient"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if len(checker.calls) != 1 || checker.calls[0] != "patient" {
		t.Errorf("validation must stop at the failing patient check, got %v", checker.calls)
	}
}

func TestCreateAppointmentDoctorServiceDown(t *testing.T) {
	checker := &verdictChecker{verdicts: map[string]remote.Verdict{
		"patient": remote.Exists,
		"doctor":  remote.Unreachable,
	}}
	router := appointmentRouter(checker)

	w := postJSON(router, "/api/appointment/",
		`{"patient_id":1,"doctor_id":2,"appointment_date":"2026-09-01","appointment_time":"10:00"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"doctor service unreachable"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateAppointmentMissingFields(t *testing.T) {
	checker := &verdictChecker{}
	router := appointmentRouter(checker)

	w := postJSON(router, "/api/appointment/", `{"doctor_id":2}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(checker.calls) != 0 {
		t.Errorf("no remote checks should run for an invalid payload, got %v", checker.calls)
	}
}
