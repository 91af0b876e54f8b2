package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables
// and optionally overridden by CLI flags before Validate runs.
type Config struct {
	PortalBaseURL string
	HTTPTimeout   time.Duration
	CivicTimezone string

	SearchAreaLatitude  float64
	SearchAreaLongitude float64
	SearchAreaRadius    int

	FromAddress string
	ToAddresses string

	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSSL      bool

	PushgatewayURL string
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is merged in first without
// overriding variables already exported.
func Load() (*Config, error) {
	_ = godotenv.Load()

	httpTimeout, err := parseDuration("HTTP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	lat, err := parseFloat("SEARCH_AREA_LATITUDE", 0)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("SEARCH_AREA_LONGITUDE", 0)
	if err != nil {
		return nil, err
	}
	radius, err := parseInt("SEARCH_AREA_RADIUS", 2750)
	if err != nil {
		return nil, err
	}
	smtpPort, err := parseInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	return &Config{
		PortalBaseURL: envOrDefault("PORTAL_BASE_URL", "https://data.cityofchicago.org/resource"),
		HTTPTimeout:   httpTimeout,
		CivicTimezone: envOrDefault("CIVIC_TIMEZONE", "America/Chicago"),

		SearchAreaLatitude:  lat,
		SearchAreaLongitude: lon,
		SearchAreaRadius:    radius,

		FromAddress: os.Getenv("FROM_ADDRESS"),
		ToAddresses: os.Getenv("TO_ADDRESSES"),

		SMTPServer:   envOrDefault("SMTP_SERVER", "smtp.mailgun.org"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPSSL:      os.Getenv("SMTP_SSL") == "true",

		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

// Validate checks that the run has everything it needs once flag overrides
// have been applied. Delivery settings are skipped for dry runs, which never
// touch the relay.
func (c *Config) Validate(dryRun bool) error {
	if c.PortalBaseURL == "" {
		return errors.New("PORTAL_BASE_URL is required")
	}
	if c.SearchAreaLatitude == 0 || c.SearchAreaLongitude == 0 {
		return errors.New("search area latitude and longitude are required")
	}
	if c.SearchAreaRadius <= 0 {
		return errors.New("search area radius must be positive")
	}
	if _, err := time.LoadLocation(c.CivicTimezone); err != nil {
		return fmt.Errorf("invalid CIVIC_TIMEZONE: %w", err)
	}

	if dryRun {
		return nil
	}

	if c.FromAddress == "" {
		return errors.New("sender address is required")
	}
	if c.ToAddresses == "" {
		return errors.New("at least one recipient address is required")
	}
	if c.SMTPServer == "" || c.SMTPUser == "" || c.SMTPPassword == "" {
		return errors.New("SMTP server, user, and password are required")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
