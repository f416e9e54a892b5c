package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	// CurrentVersion is the only config file version this build understands
	CurrentVersion = 1

	// DefaultEndpoint is the fixed local endpoint the client talks to
	DefaultEndpoint = "ws://localhost:1323/ws"

	DefaultReconnectInterval = 5 * time.Second
	DefaultHandshakeTimeout  = 10 * time.Second
)

// Settings is the whole user configuration file.
type Settings struct {
	Version           int           `yaml:"version"`
	Endpoint          string        `yaml:"endpoint"`
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
	HandshakeTimeout  time.Duration `yaml:"handshake_timeout"`
	Origin            string        `yaml:"origin,omitempty"` // sent as the Origin handshake header
	Logging           *LoggingPrefs `yaml:"logging,omitempty"`
}

// LoggingPrefs mirrors the --log-level and --log-file flags.
type LoggingPrefs struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Settings {
	return &Settings{
		Version:           CurrentVersion,
		Endpoint:          DefaultEndpoint,
		ReconnectInterval: DefaultReconnectInterval,
		HandshakeTimeout:  DefaultHandshakeTimeout,
		Logging:           &LoggingPrefs{},
	}
}

// fillDefaults replaces zero values left by a partial config file.
func (s *Settings) fillDefaults() {
	if s.Endpoint == "" {
		s.Endpoint = DefaultEndpoint
	}
	if s.ReconnectInterval == 0 {
		s.ReconnectInterval = DefaultReconnectInterval
	}
	if s.HandshakeTimeout == 0 {
		s.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if s.Logging == nil {
		s.Logging = &LoggingPrefs{}
	}
}

// Validate checks that the endpoint is a ws:// or wss:// URL and that the
// durations are positive.
func (s *Settings) Validate() error {
	if err := ValidateEndpoint(s.Endpoint); err != nil {
		return err
	}
	if s.ReconnectInterval <= 0 {
		return fmt.Errorf("reconnect_interval must be positive, got %s", s.ReconnectInterval)
	}
	if s.HandshakeTimeout <= 0 {
		return fmt.Errorf("handshake_timeout must be positive, got %s", s.HandshakeTimeout)
	}
	return nil
}

// ValidateEndpoint reports whether raw is a usable WebSocket URL.
func ValidateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("invalid endpoint %q: scheme must be ws or wss", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", raw)
	}
	return nil
}
