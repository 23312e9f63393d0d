package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: shared secret verifying admin bearer tokens
	Issuer    string // Optional: expected issuer claim on admin tokens (default: gatekeep)

	PrivateBeta      bool // Optional: only approved emails may register (default: false)
	OpenRegistration bool // Optional: anyone may register without an invite (default: true)

	InviteTTL time.Duration // Optional: how long invitation tokens stay redeemable (default: 24h)

	AppName   string // Optional: display name used in invitation emails (default: Gatekeep)
	PublicURL string // Optional: base URL for invitation links (default: http://localhost:8080)

	SendGridAPIKey string // Optional: SendGrid API key; without it mail is logged, not sent
	MailFrom       string // Optional: sender address for invitation emails

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./gatekeep.db)
	PepperFile           string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		JWTSecret: os.Getenv("GATE_JWT_SECRET"),
		Issuer:    getEnvOrDefault("GATE_ISSUER", "gatekeep"),

		PrivateBeta:      getEnvBoolOrDefault("GATE_PRIVATE_BETA", false),
		OpenRegistration: getEnvBoolOrDefault("GATE_OPEN_REGISTRATION", true),

		InviteTTL: getEnvDurationOrDefault("GATE_INVITE_TTL", 24*time.Hour),

		AppName:   getEnvOrDefault("GATE_APP_NAME", "Gatekeep"),
		PublicURL: getEnvOrDefault("GATE_PUBLIC_URL", "http://localhost:8080"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       os.Getenv("GATE_MAIL_FROM"),

		DatabaseFile:         getEnvOrDefault("GATE_DATABASE_FILE", "gatekeep.db"),
		PepperFile:           getEnvOrDefault("GATE_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
