package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubRecorder struct {
	checks []string
}

func (r *stubRecorder) RecordCheck(service, verdict string) {
	r.checks = append(r.checks, service+"/"+verdict)
}

func (r *stubRecorder) RecordProvision(outcome string) {}

func (r *stubRecorder) RecordCompensation() {}

func newTestChecker(base string) (*Checker, *stubRecorder) {
	rec := &stubRecorder{}
	return NewChecker(map[string]string{"patient": base}, time.Second, rec), rec
}

func TestCheckExists(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker, rec := newTestChecker(server.URL)
	if verdict := checker.Check(context.Background(), "patient", 42); verdict != Exists {
		t.Fatalf("expected Exists, got %v", verdict)
	}
	if gotPath != "/api/patient/42/" {
		t.Errorf("expected path /api/patient/42/, got %s", gotPath)
	}
	if len(rec.checks) != 1 || rec.checks[0] != "patient/exists" {
		t.Errorf("unexpected recorded checks: %v", rec.checks)
	}
}

func TestCheckNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker, _ := newTestChecker(server.URL)
	if verdict := checker.Check(context.Background(), "patient", 7); verdict != NotFound {
		t.Fatalf("expected NotFound, got %v", verdict)
	}
}

func TestCheckServerErrorIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	checker, _ := newTestChecker(server.URL)
	if verdict := checker.Check(context.Background(), "patient", 7); verdict != Unreachable {
		t.Fatalf("expected Unreachable, got %v", verdict)
	}
}

func TestCheckTransportFailureIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	checker, rec := newTestChecker(server.URL)
	if verdict := checker.Check(context.Background(), "patient", 7); verdict != Unreachable {
		t.Fatalf("expected Unreachable, got %v", verdict)
	}
	if len(rec.checks) != 1 || rec.checks[0] != "patient/unreachable" {
		t.Errorf("unexpected recorded checks: %v", rec.checks)
	}
}

func TestCheckTimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	rec := &stubRecorder{}
	checker := NewChecker(map[string]string{"patient": server.URL}, 50*time.Millisecond, rec)

	start := time.Now()
	if verdict := checker.Check(context.Background(), "patient", 7); verdict != Unreachable {
		t.Fatalf("expected Unreachable, got %v", verdict)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("check did not respect the timeout, took %v", elapsed)
	}
}

func TestCheckUnknownServiceIsUnreachable(t *testing.T) {
	checker, _ := newTestChecker("http://localhost:0")
	if verdict := checker.Check(context.Background(), "pharmacy", 1); verdict != Unreachable {
		t.Fatalf("expected Unreachable for unknown service, got %v", verdict)
	}
}

func TestCheckIsRepeatable(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker, _ := newTestChecker(server.URL)
	for i := 0; i < 3; i++ {
		if verdict := checker.Check(context.Background(), "patient", 42); verdict != Exists {
			t.Fatalf("call %d: expected Exists, got %v", i, verdict)
		}
	}
	if calls != 3 {
		t.Errorf("expected one request per check, server saw %d", calls)
	}
}

func TestVerdictString(t *testing.T) {
	cases := map[Verdict]string{
		Exists:      "exists",
		NotFound:    "not_found",
		Unreachable: "unreachable",
	}
	for verdict, want := range cases {
		if got := verdict.String(); got != want {
			t.Errorf("Verdict(%d).String() = %q, want %q", verdict, got, want)
		}
	}
}
