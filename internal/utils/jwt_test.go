package utils

import (
	"testing"

	"hospital-services/internal/config"
	"hospital-services/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func TestGenerateAndValidateTokens(t *testing.T) {
	cfg := testConfig()
	account := &models.Account{Role: models.RoleDoctor}
	account.ID = 42

	access, refresh, err := GenerateTokens(account, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatal("expected two distinct non-empty tokens")
	}

	claims, err := ValidateToken(access, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken(access): %v", err)
	}
	if claims.UserID != 42 || claims.Role != models.RoleDoctor {
		t.Errorf("claims do not round-trip: %+v", claims)
	}

	if _, err := ValidateToken(refresh, cfg.JWTRefreshSecret); err != nil {
		t.Errorf("ValidateToken(refresh): %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	account := &models.Account{Role: models.RolePatient}
	account.ID = 1

	access, _, err := GenerateTokens(account, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}

	if _, err := ValidateToken(access, "some-other-secret"); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token", "secret"); err == nil {
		t.Fatal("expected validation to fail for a malformed token")
	}
}
