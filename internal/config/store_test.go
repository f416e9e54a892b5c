package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, "wsdemo"); got != want {
		t.Errorf("GetConfigDir() = %v, want %v", got, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")

	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %v, want %v", s.Endpoint, DefaultEndpoint)
	}
	if s.ReconnectInterval != DefaultReconnectInterval {
		t.Errorf("ReconnectInterval = %v, want %v", s.ReconnectInterval, DefaultReconnectInterval)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	s := Default()
	s.Endpoint = "wss://example.test/socket"
	s.ReconnectInterval = 750 * time.Millisecond
	s.Origin = "http://localhost:3000"
	s.Logging.Level = "debug"

	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# wsdemo configuration file") {
		t.Error("saved file should start with the header comment")
	}
	if !strings.Contains(string(data), "reconnect_interval: 750ms") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Endpoint != s.Endpoint || loaded.ReconnectInterval != s.ReconnectInterval {
		t.Errorf("Load() = %+v, want %+v", loaded, s)
	}
	if loaded.Origin != s.Origin || loaded.Logging.Level != "debug" {
		t.Errorf("Load() lost optional fields: %+v", loaded)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	t.Setenv(EndpointEnvVar, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nendpoint: ws://127.0.0.1:9000/ws\n"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Endpoint != "ws://127.0.0.1:9000/ws" {
		t.Errorf("Endpoint = %v", s.Endpoint)
	}
	if s.HandshakeTimeout != DefaultHandshakeTimeout {
		t.Errorf("HandshakeTimeout = %v, want default", s.HandshakeTimeout)
	}
	if s.Logging == nil {
		t.Error("Logging should be initialized")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject version 2")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EndpointEnvVar, "ws://10.0.0.2:1323/ws")

	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Endpoint != "ws://10.0.0.2:1323/ws" {
		t.Errorf("Endpoint = %v, want env override", s.Endpoint)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"wss endpoint", func(s *Settings) { s.Endpoint = "wss://example.test/ws" }, false},
		{"http scheme", func(s *Settings) { s.Endpoint = "http://localhost:1323/ws" }, true},
		{"missing host", func(s *Settings) { s.Endpoint = "ws:///ws" }, true},
		{"zero reconnect", func(s *Settings) { s.ReconnectInterval = 0 }, true},
		{"negative handshake", func(s *Settings) { s.HandshakeTimeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
