package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL     string
	ParticipantID string
	IDFile        string
	Output        string
	Verbose       bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:     getEnvOrDefault("ARAMROLL_SERVER", "http://localhost:8080"),
		ParticipantID: os.Getenv("ARAMROLL_PARTICIPANT_ID"),
		IDFile:        os.Getenv("ARAMROLL_ID_FILE"),
		Output:        "text",
		Verbose:       false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
