package connection

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/wsdemo/internal/logging"
	"github.com/muurk/wsdemo/internal/version"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Outbound texts buffered between Send and the writer goroutine
	sendQueueSize = 16

	// DefaultURL is the endpoint used when nothing else is configured
	DefaultURL = "ws://localhost:1323/ws"

	// DefaultReconnectInterval is the pause between a closure and the next dial
	DefaultReconnectInterval = 5 * time.Second

	// DefaultHandshakeTimeout bounds the opening handshake
	DefaultHandshakeTimeout = 10 * time.Second
)

// Options tunes a Manager. Zero values select the defaults.
type Options struct {
	ReconnectInterval time.Duration
	HandshakeTimeout  time.Duration
	Header            http.Header       // extra handshake headers (Origin, ...)
	Dialer            *websocket.Dialer // overrides the default dialer
}

// Manager owns one duplex WebSocket connection to a fixed URL. It reconnects
// after every closure until Close is called, keeps only the latest inbound
// message and treats Send as fire-and-forget.
type Manager struct {
	url    string
	opts   Options
	dialer *websocket.Dialer

	mu      sync.RWMutex
	state   ReadyState
	last    *Message
	seq     uint64
	started bool
	closed  bool

	outbound chan string // queue of the live connection, nil between connections
	updates  chan struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Manager for url. No network activity happens until Open.
func New(url string, opts Options) *Manager {
	if opts.ReconnectInterval <= 0 {
		opts.ReconnectInterval = DefaultReconnectInterval
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = DefaultHandshakeTimeout
	}

	dialer := opts.Dialer
	if dialer == nil {
		d := *websocket.DefaultDialer
		d.HandshakeTimeout = opts.HandshakeTimeout
		dialer = &d
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		url:      url,
		opts:     opts,
		dialer:   dialer,
		state:    Uninstantiated,
		updates:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// URL returns the endpoint this manager dials.
func (m *Manager) URL() string {
	return m.url
}

// Open starts the connect loop. Calling it again, or after Close, does nothing.
func (m *Manager) Open() {
	m.mu.Lock()
	if m.started || m.closed {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go m.run()
}

// Close stops reconnecting, performs the closing handshake if a connection is
// up and waits for the connection goroutines to exit. It is safe to call more
// than once.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		started := m.started
		m.closed = true
		m.mu.Unlock()

		if started {
			m.transition(Closing, true)
		}
		m.cancel()
		if started {
			<-m.done
		}
		m.transition(Closed, true)
		logging.LogConnection(m.url, "released")
	})
	return nil
}

// Send queues text for delivery as a single text frame. It never blocks and
// never reports failure: texts sent while the connection is not open, or
// while the queue is full, are dropped and logged.
func (m *Manager) Send(text string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state != Open || m.outbound == nil {
		logging.Debug("Send dropped, connection not open",
			zap.String("url", m.url),
			zap.Stringer("state", m.state),
		)
		return
	}

	select {
	case m.outbound <- text:
	default:
		logging.Warn("Send dropped, outbound queue full",
			zap.String("url", m.url),
			zap.Int("queue_size", sendQueueSize),
		)
	}
}

// State returns the current ready state.
func (m *Manager) State() ReadyState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// LastMessage returns the most recent inbound message, if any arrived.
func (m *Manager) LastMessage() (Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return Message{}, false
	}
	return *m.last, true
}

// Snapshot returns the state and latest message read under one lock.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{State: m.state}
	if m.last != nil {
		msg := *m.last
		snap.LastMessage = &msg
	}
	return snap
}

// Updates signals that the state or the latest message changed. Signals
// coalesce: a reader that falls behind sees one pending signal and should
// re-read Snapshot.
func (m *Manager) Updates() <-chan struct{} {
	return m.updates
}

func (m *Manager) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// transition moves to state s. Once Close has begun only forced transitions
// (made by Close itself) are applied.
func (m *Manager) transition(s ReadyState, force bool) {
	m.mu.Lock()
	if m.closed && !force {
		m.mu.Unlock()
		return
	}
	from := m.state
	m.state = s
	m.mu.Unlock()

	if from != s {
		logging.LogStateChange(m.url, from, s)
		m.notify()
	}
}

func (m *Manager) deliver(data string) {
	m.mu.Lock()
	m.seq++
	m.last = &Message{
		Data:       data,
		Seq:        m.seq,
		ReceivedAt: time.Now(),
	}
	m.mu.Unlock()

	m.notify()
}

func (m *Manager) run() {
	defer close(m.done)

	for attempt := 1; ; attempt++ {
		m.transition(Connecting, false)

		conn, err := m.dial()
		if err != nil {
			if m.ctx.Err() != nil {
				return
			}
			logging.Warn("Dial failed, will retry",
				zap.String("url", m.url),
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", m.opts.ReconnectInterval),
				zap.Error(err),
			)
			m.transition(Closed, false)
		} else {
			attempt = 0
			logging.LogConnection(m.url, "opened")
			outbound := m.attach()
			m.transition(Open, false)
			m.serve(conn, outbound)
			m.detach()
			m.discardPending(outbound)
			logging.LogConnection(m.url, "closed")
			if m.ctx.Err() != nil {
				return
			}
			m.transition(Closed, false)
		}

		select {
		case <-m.ctx.Done():
			return
		case <-time.After(m.opts.ReconnectInterval):
		}
	}
}

func (m *Manager) dial() (*websocket.Conn, error) {
	header := m.opts.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", version.UserAgent())
	}

	conn, resp, err := m.dialer.DialContext(m.ctx, m.url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("handshake rejected with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to dial %s: %w", m.url, err)
	}
	return conn, nil
}

// attach creates the send queue for a new connection.
func (m *Manager) attach() chan string {
	outbound := make(chan string, sendQueueSize)
	m.mu.Lock()
	m.outbound = outbound
	m.mu.Unlock()
	return outbound
}

// detach stops Send from queueing onto the connection that just ended.
func (m *Manager) detach() {
	m.mu.Lock()
	m.outbound = nil
	m.mu.Unlock()
}

// serve owns all writes to conn until the connection ends or the manager is
// closed. Reads happen on a separate goroutine, which has exited by the time
// serve returns.
func (m *Manager) serve(conn *websocket.Conn, outbound <-chan string) {
	readErr := make(chan error, 1)
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		m.readLoop(conn, readErr)
	}()

	defer func() {
		_ = conn.Close()
		<-readDone
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case text := <-outbound:
			data := []byte(text)
			if err := m.write(conn, websocket.TextMessage, data); err != nil {
				logging.Warn("Send failed",
					zap.String("url", m.url),
					zap.Error(err),
				)
				return
			}
			logging.LogWebSocketMessage(m.url, "sent", websocket.TextMessage, data)

		case <-ticker.C:
			if err := m.write(conn, websocket.PingMessage, nil); err != nil {
				logging.Info("Ping failed, dropping connection",
					zap.String("url", m.url),
					zap.Error(err),
				)
				return
			}
			logging.Debug("Ping sent", zap.String("url", m.url))

		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed by peer", zap.String("url", m.url))
			} else {
				logging.Info("Connection lost",
					zap.String("url", m.url),
					zap.Error(err),
				)
			}
			return

		case <-m.ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
				logging.Debug("Close frame not sent", zap.String("url", m.url), zap.Error(err))
				return
			}
			// Give the peer a moment to answer the close frame.
			select {
			case <-readErr:
			case <-time.After(time.Second):
			}
			return
		}
	}
}

func (m *Manager) write(conn *websocket.Conn, messageType int, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(messageType, data)
}

func (m *Manager) readLoop(conn *websocket.Conn, errc chan<- error) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			errc <- err
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		logging.LogWebSocketMessage(m.url, "received", messageType, data)
		m.deliver(string(data))
	}
}

// discardPending drops texts queued for a connection that no longer exists.
func (m *Manager) discardPending(outbound <-chan string) {
	for {
		select {
		case text := <-outbound:
			logging.Debug("Discarding unsent text",
				zap.String("url", m.url),
				zap.Int("length", len(text)),
			)
		default:
			return
		}
	}
}
