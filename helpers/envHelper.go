package helpers

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	HostBridgeURL      string
	AllowedOrigins     []string
	HostRequestTimeout time.Duration
	NotificationTTL    time.Duration
	Environment        string
	LogLevel           string
	// HostEventToken must accompany pushes posted to /host/events. Empty disables that route.
	HostEventToken string
}

var ErrMissingHostURL = errors.New("HOST_BRIDGE_URL is required")

// LoadEnv loads path into the environment. A missing file is not an error; found reports
// whether it existed.
func LoadEnv(path string) (found bool, err error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if err := godotenv.Load(path); err != nil {
		return true, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// LoadConfig reads the process configuration from the environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           getenv("PORT", "8000"),
		HostBridgeURL:  os.Getenv("HOST_BRIDGE_URL"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:9000")),
		Environment:    getenv("ENVIRONMENT", "development"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		HostEventToken: os.Getenv("HOST_EVENT_TOKEN"),
	}
	if cfg.HostBridgeURL == "" {
		return cfg, ErrMissingHostURL
	}

	var err error
	if cfg.HostRequestTimeout, err = durationEnv("HOST_REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}
	if cfg.NotificationTTL, err = durationEnv("NOTIFICATION_TTL", 5*time.Second); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
