package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for a single service process.
type Config struct {
	Service                   string
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Services                  map[string]string
	RemoteTimeout             time.Duration
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
	TriageDataDir             string
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// serviceDefaults maps each service to its default listen port and database name.
var serviceDefaults = map[string]struct {
	port string
	db   string
}{
	"accounts":       {"8001", "hospital_accounts"},
	"patient":        {"8002", "hospital_patients"},
	"doctor":         {"8003", "hospital_doctors"},
	"appointment":    {"8004", "hospital_appointments"},
	"medical-record": {"8005", "hospital_medical_records"},
	"chatbot":        {"8006", ""},
}

// LoadConfig loads configuration from environment variables for the named service.
func LoadConfig(service string) (*Config, error) {
	defaults, ok := serviceDefaults[service]
	if !ok {
		return nil, fmt.Errorf("unknown service %q", service)
	}

	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", defaults.db),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	remoteTimeoutSec, err := strconv.Atoi(getEnv("REMOTE_TIMEOUT_SECONDS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMOTE_TIMEOUT_SECONDS: %w", err)
	}

	return &Config{
		Service:                   service,
		Port:                      getEnv("PORT", defaults.port),
		Origin:                    getEnv("ORIGIN", "http://localhost:3000"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		Services:                  loadServiceMap(),
		RemoteTimeout:             time.Duration(remoteTimeoutSec) * time.Second,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
		TriageDataDir:             getEnv("TRIAGE_DATA_DIR", "data"),
	}, nil
}

// loadServiceMap resolves the logical-name to base-address map once at startup.
// The existence checker and the provisioning coordinator depend only on the
// logical names; addresses are never hard-coded at call sites.
func loadServiceMap() map[string]string {
	return map[string]string{
		"patient":        getEnv("PATIENT_SERVICE_URL", "http://localhost:8002"),
		"doctor":         getEnv("DOCTOR_SERVICE_URL", "http://localhost:8003"),
		"appointment":    getEnv("APPOINTMENT_SERVICE_URL", "http://localhost:8004"),
		"medical-record": getEnv("MEDICAL_RECORD_SERVICE_URL", "http://localhost:8005"),
	}
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
