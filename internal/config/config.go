package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultAlmanacURL = "https://gls.loracloud.com/api/v3/almanac/full"

type Config struct {
	// LoRa Cloud subscription token, sent as Ocp-Apim-Subscription-Key
	Token string

	// Full almanac endpoint
	AlmanacURL string

	// Request timeout ( 0 means no timeout )
	Timeout time.Duration

	// Print the literal even when the image does not fill the declared array
	AllowSizeMismatch bool

	// debug, info, warn or error
	LogLevel string

	// Where to write Prometheus metrics after a run ( empty disables it )
	MetricsTextfile string
}

// Load returns the configuration from environment variables.
// Call godotenv.Load() first to pick up a .env file.
func Load() *Config {
	return &Config{
		Token:             os.Getenv("GLS_TOKEN"),
		AlmanacURL:        getEnv("GLS_ALMANAC_URL", DefaultAlmanacURL),
		Timeout:           time.Duration(getEnvAsInt("GLS_TIMEOUT_SEC", 30)) * time.Second,
		AllowSizeMismatch: getEnvAsBool("ALMANAC_ALLOW_SIZE_MISMATCH", false),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MetricsTextfile:   os.Getenv("METRICS_TEXTFILE"),
	}
}

// Validate checks the settings shared by every command
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("GLS_TIMEOUT_SEC must not be negative")
	}
	return nil
}

// ValidateFetch checks the settings needed to call the almanac service
func (c *Config) ValidateFetch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Token == "" {
		return fmt.Errorf("GLS_TOKEN is required ( get one at https://www.loracloud.com/portal/geolocation/token_management )")
	}
	if c.AlmanacURL == "" {
		return fmt.Errorf("GLS_ALMANAC_URL is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Helper: get bool from env
func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// Helper: get int from env
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
