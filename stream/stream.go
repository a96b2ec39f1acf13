/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package stream receives Bandwidth callbacks over a websocket relay.
//
// Each text frame carries one callback payload, the same JSON object that
// would otherwise be POSTed to the application's callback URL.
package stream

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/tejzpr/bandwidth-go-sdk/events"
	"github.com/tejzpr/bandwidth-go-sdk/rest"
)

// Config holds the configuration for a Listener
type Config struct {
	HandshakeTimeout time.Duration // Timeout for the websocket handshake
	PingInterval     time.Duration // Interval between ping messages
	PongTimeout      time.Duration // Timeout for receiving a pong response
	BackoffTimeMax   time.Duration // Maximum time between connection attempts
	BackoffTimeReset time.Duration // Initial time before the first retry
	MaxRetries       int           // Connection attempts after a failure before giving up, negative retries forever
	Logger           hclog.Logger
}

// DefaultConfig returns the default configuration for a Listener
func DefaultConfig() *Config {
	return &Config{
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     30 * time.Second,
		PongTimeout:      10 * time.Second,
		BackoffTimeMax:   32 * time.Second,
		BackoffTimeReset: 1 * time.Second,
		MaxRetries:       5,
		Logger:           hclog.NewNullLogger(),
	}
}

// Dispatcher receives decoded events. *webhook.Router implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event) error
}

// Listener reads callbacks from a websocket and dispatches them.
type Listener struct {
	url        string
	restClient *rest.Client
	dispatcher Dispatcher
	config     *Config
	logger     hclog.Logger

	mu        sync.Mutex
	connected bool
}

// New creates a new Listener for the websocket at url. When restClient is
// not nil its credentials are sent as basic auth during the handshake.
func New(url string, restClient *rest.Client, dispatcher Dispatcher, config *Config) *Listener {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.PingInterval <= 0 {
		config.PingInterval = defaults.PingInterval
	}
	if config.PongTimeout <= 0 {
		config.PongTimeout = defaults.PongTimeout
	}
	if config.BackoffTimeReset <= 0 {
		config.BackoffTimeReset = defaults.BackoffTimeReset
	}
	if config.BackoffTimeMax < config.BackoffTimeReset {
		config.BackoffTimeMax = config.BackoffTimeReset
	}
	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Listener{
		url:        url,
		restClient: restClient,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger.Named("stream"),
	}
}

// IsConnected returns whether the listener currently holds a connection
func (l *Listener) IsConnected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

// Run connects and dispatches callbacks until ctx is canceled. Dropped
// connections are re-established with exponential backoff; Run returns an
// error once MaxRetries consecutive attempts have failed. A connection that
// drops sooner than BackoffTimeMax after being established counts as a
// failure, so a relay that accepts and immediately closes is not redialed
// in a tight loop.
func (l *Listener) Run(ctx context.Context) error {
	backoff := l.config.BackoffTimeReset
	for {
		conn, err := l.connectWithBackoff(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		connectedAt := time.Now()
		err = l.listen(ctx, conn)
		if ctx.Err() != nil {
			return nil
		}
		if time.Since(connectedAt) >= l.config.BackoffTimeMax {
			backoff = l.config.BackoffTimeReset
			l.logger.Warn("connection lost, reconnecting", "error", err)
			continue
		}

		l.logger.Warn("connection lost shortly after connecting, reconnecting", "error", err, "backoff", backoff)
		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, l.config.BackoffTimeMax)
		case <-ctx.Done():
			return nil
		}
	}
}

// connectWithBackoff dials until it succeeds, retries are exhausted or ctx
// is done.
func (l *Listener) connectWithBackoff(ctx context.Context) (*websocket.Conn, error) {
	backoff := l.config.BackoffTimeReset
	var err error
	for attempt := 0; ; attempt++ {
		var conn *websocket.Conn
		conn, err = l.dial(ctx)
		if err == nil {
			return conn, nil
		}

		if l.config.MaxRetries >= 0 && attempt >= l.config.MaxRetries {
			return nil, fmt.Errorf("failed to connect after %d attempts: %w", attempt+1, err)
		}
		l.logger.Debug("connection attempt failed", "attempt", attempt+1, "backoff", backoff, "error", err)

		select {
		case <-time.After(backoff):
			backoff *= 2
			if backoff > l.config.BackoffTimeMax {
				backoff = l.config.BackoffTimeMax
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// dial establishes a websocket connection with the listener's headers
func (l *Listener) dial(ctx context.Context) (*websocket.Conn, error) {
	headers := http.Header{}
	headers.Set(rest.RequestIDHeader, uuid.New().String())
	if l.restClient != nil {
		username, password := l.restClient.BasicAuth()
		headers.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(username+":"+password)))
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: l.config.HandshakeTimeout,
	}
	if l.restClient != nil {
		if transport, ok := l.restClient.GetHTTPClient().Transport.(*http.Transport); ok {
			dialer.NetDialContext = transport.DialContext
			dialer.TLSClientConfig = transport.TLSClientConfig
		}
	}

	conn, resp, err := dialer.DialContext(ctx, l.url, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to connect to websocket: %s: %w", resp.Status, err)
		}
		return nil, fmt.Errorf("failed to connect to websocket: %w", err)
	}
	return conn, nil
}

// listen reads frames until the connection fails or ctx is done
func (l *Listener) listen(ctx context.Context, conn *websocket.Conn) error {
	l.mu.Lock()
	l.connected = true
	l.mu.Unlock()
	l.logger.Info("connected", "url", l.url)

	done := make(chan struct{})
	defer func() {
		close(done)
		l.mu.Lock()
		l.connected = false
		l.mu.Unlock()
		_ = conn.Close()
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Time{})
	})
	go l.keepAlive(ctx, conn, done)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if messageType != websocket.TextMessage {
			continue
		}
		l.process(ctx, message)
	}
}

// keepAlive pings the peer and closes the connection when ctx is done
func (l *Listener) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(l.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(l.config.PongTimeout)
			if err := conn.SetReadDeadline(deadline); err != nil {
				return
			}
			if err := conn.WriteControl(websocket.PingMessage, []byte(fmt.Sprintf("%d", time.Now().UnixMilli())), deadline); err != nil {
				return
			}
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "listener stopped"),
				time.Now().Add(time.Second))
			_ = conn.Close()
			return
		case <-done:
			return
		}
	}
}

// process decodes one frame and hands it to the dispatcher. Bad frames are
// logged and skipped.
func (l *Listener) process(ctx context.Context, message []byte) {
	event, err := events.Create(message)
	if err != nil {
		l.logger.Warn("skipping frame", "error", err)
		return
	}

	logger := l.logger.With("event_type", event.Type())
	if err := l.dispatcher.Dispatch(hclog.WithContext(ctx, logger), event); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("handler failed", "error", err)
	}
}
