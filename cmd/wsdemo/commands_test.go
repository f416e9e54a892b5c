package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/muurk/wsdemo/internal/config"
	"github.com/muurk/wsdemo/internal/connection"
	"github.com/muurk/wsdemo/internal/urls"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSettings(endpoint string) *config.Settings {
	s := config.Default()
	s.Endpoint = endpoint
	s.ReconnectInterval = 50 * time.Millisecond
	return s
}

func TestSendAndWait(t *testing.T) {
	srv := echoServer(t)
	conn := newManager(testSettings("ws" + strings.TrimPrefix(srv.URL, "http")))
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	reply, err := sendAndWait(ctx, conn, "ping")
	if err != nil {
		t.Fatalf("sendAndWait() error = %v", err)
	}
	if reply.Data != "ping" {
		t.Errorf("reply = %q, want ping", reply.Data)
	}
	if reply.Seq != 1 {
		t.Errorf("reply seq = %d, want 1", reply.Seq)
	}
}

func TestSendAndWaitTimesOutWithoutServer(t *testing.T) {
	// Nothing listens on this address once the server is closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	conn := newManager(testSettings(endpoint))
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := sendAndWait(ctx, conn, "ping")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("sendAndWait() error = %v, want deadline exceeded", err)
	}
	if !strings.Contains(err.Error(), "did not open") {
		t.Errorf("error %q should say the connection did not open", err)
	}
}

func TestNewManagerUsesSettings(t *testing.T) {
	s := testSettings(config.DefaultEndpoint)
	s.Origin = "http://localhost:3000"

	m := newManager(s)
	if m.URL() != config.DefaultEndpoint {
		t.Errorf("URL() = %q, want %q", m.URL(), config.DefaultEndpoint)
	}
	if m.State() != connection.Uninstantiated {
		t.Errorf("State() = %v, want Uninstantiated", m.State())
	}
}

func TestVersionCommand(t *testing.T) {
	var out strings.Builder
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(out.String(), "wsdemo ") {
		t.Errorf("version output = %q", out.String())
	}
	if !strings.Contains(out.String(), urls.Repository) {
		t.Errorf("version output %q should link the repository", out.String())
	}
}
