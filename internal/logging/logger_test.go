package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeSilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	t.Setenv(LogFileEnvVar, "")

	if err := Initialize(Options{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be silent when no level is configured")
	}
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	t.Setenv(LogFileEnvVar, "")

	if err := Initialize(Options{}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer SetLogger(nil)

	core := GetLogger().Core()
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogWebSocketMessage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogWebSocketMessage("ws://localhost:1323/ws", "received", 1, []byte("pong"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["content"] != "pong" {
		t.Errorf("content = %v, want pong", fields["content"])
	}
	if fields["message_type"] != "text" {
		t.Errorf("message_type = %v, want text", fields["message_type"])
	}
	if fields["hex_dump"] != "706f6e67" {
		t.Errorf("hex_dump = %v, want 706f6e67", fields["hex_dump"])
	}
}

func TestDumpHelpers(t *testing.T) {
	if got := asciiDump([]byte{'a', 0x00, 'b', 0x7f}); got != "a.b." {
		t.Errorf("asciiDump() = %q, want %q", got, "a.b.")
	}

	long := make([]byte, dumpLimit+10)
	if got := hexDump(long); !strings.HasSuffix(got, "...") || len(got) != dumpLimit*2+3 {
		t.Errorf("hexDump() did not truncate: len=%d", len(got))
	}

	if got := wsMessageTypeName(42); got != "unknown(42)" {
		t.Errorf("wsMessageTypeName(42) = %q", got)
	}
}
