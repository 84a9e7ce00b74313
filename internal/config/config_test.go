package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("appointment")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != "8004" {
		t.Errorf("expected default port 8004, got %s", cfg.Port)
	}
	if cfg.Database.Name != "hospital_appointments" {
		t.Errorf("expected default database name, got %s", cfg.Database.Name)
	}
	if cfg.RemoteTimeout != 5*time.Second {
		t.Errorf("expected 5s remote timeout, got %v", cfg.RemoteTimeout)
	}
	if cfg.Services["patient"] != "http://localhost:8002" {
		t.Errorf("unexpected patient service address %q", cfg.Services["patient"])
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PATIENT_SERVICE_URL", "http://patient.internal:80")
	t.Setenv("REMOTE_TIMEOUT_SECONDS", "2")

	cfg, err := LoadConfig("appointment")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("PORT override ignored, got %s", cfg.Port)
	}
	if cfg.Services["patient"] != "http://patient.internal:80" {
		t.Errorf("service address override ignored, got %q", cfg.Services["patient"])
	}
	if cfg.RemoteTimeout != 2*time.Second {
		t.Errorf("timeout override ignored, got %v", cfg.RemoteTimeout)
	}
}

func TestLoadConfigUnknownService(t *testing.T) {
	if _, err := LoadConfig("pharmacy"); err == nil {
		t.Fatal("expected an error for an unknown service name")
	}
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	t.Setenv("REMOTE_TIMEOUT_SECONDS", "soon")
	if _, err := LoadConfig("patient"); err == nil {
		t.Fatal("expected an error for a non-numeric timeout")
	}
}

func TestLoadConfigDSN(t *testing.T) {
	t.Setenv("DB_USERNAME", "hospital")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "records")

	cfg, err := LoadConfig("medical-record")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := "hospital:secret@tcp(db.internal:3307)/records?charset=utf8mb4&parseTime=True&loc=Local"
	if cfg.Database.DSN != want {
		t.Errorf("DSN = %q, want %q", cfg.Database.DSN, want)
	}
}
