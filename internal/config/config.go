package config

import (
	"fmt"
	"os"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config is the client's environment-driven configuration. A .env file is
// honored when present (loaded by the entry point before Load runs).
type Config struct {
	GatewayURL     string
	Identification string
	APIKey         string
	Channel        string
	HTTPTimeout    time.Duration
}

func Load() (*Config, error) {
	gatewayURL := os.Getenv("GATEWAY_URL")
	if gatewayURL == "" {
		return nil, fmt.Errorf("GATEWAY_URL environment variable is required")
	}

	identification := os.Getenv("IDENTIFICATION")
	if identification == "" {
		return nil, fmt.Errorf("IDENTIFICATION environment variable is required")
	}

	channel := os.Getenv("CHANNEL")
	if channel == "" {
		channel = "TERMINAL"
	}

	timeout := defaultTimeout
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
		timeout = parsed
	}

	return &Config{
		GatewayURL:     gatewayURL,
		Identification: identification,
		APIKey:         os.Getenv("API_KEY"),
		Channel:        channel,
		HTTPTimeout:    timeout,
	}, nil
}
