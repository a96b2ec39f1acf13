/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package webhook routes decoded Bandwidth callbacks to application
// handlers, and serves them over HTTP.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/tejzpr/bandwidth-go-sdk/events"
)

// Wildcard registers a handler for every event type.
const Wildcard = "*"

// DefaultMaxBodyBytes caps the size of a callback request body.
const DefaultMaxBodyBytes int64 = 1 << 20

// Handler handles one decoded event.
type Handler func(ctx context.Context, event events.Event) error

// Config holds the configuration for a Router
type Config struct {
	// MaxBodyBytes caps the request body read by ServeHTTP
	MaxBodyBytes int64

	// IgnoreUnknown acknowledges callbacks with an unregistered event type
	// instead of rejecting them
	IgnoreUnknown bool

	Logger hclog.Logger
}

// DefaultConfig returns the default configuration for a Router
func DefaultConfig() *Config {
	return &Config{
		MaxBodyBytes:  DefaultMaxBodyBytes,
		IgnoreUnknown: true,
		Logger:        hclog.NewNullLogger(),
	}
}

// Router dispatches events to the handlers registered for their type.
type Router struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	config   *Config
	logger   hclog.Logger
}

// New creates a new Router
func New(config *Config) *Router {
	if config == nil {
		config = DefaultConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Router{
		handlers: make(map[string][]Handler),
		config:   config,
		logger:   logger.Named("webhook"),
	}
}

// On registers a handler for an event type, or for every type with
// Wildcard. Handlers run in registration order.
func (r *Router) On(eventType string, handler Handler) {
	if handler == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
}

// Off removes all handlers for an event type
func (r *Router) Off(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, eventType)
}

// Handlers returns the number of handlers registered for an event type
func (r *Router) Handlers(eventType string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[eventType])
}

// Dispatch runs every handler registered for the event's type, then the
// wildcard handlers. All handlers run even if one fails; their errors are
// joined.
func (r *Router) Dispatch(ctx context.Context, event events.Event) error {
	r.mu.RLock()
	handlers := make([]Handler, 0, len(r.handlers[event.Type()])+len(r.handlers[Wildcard]))
	handlers = append(handlers, r.handlers[event.Type()]...)
	handlers = append(handlers, r.handlers[Wildcard]...)
	r.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Handle decodes a raw callback body and dispatches the resulting event.
func (r *Router) Handle(ctx context.Context, body []byte) (events.Event, error) {
	event, err := events.Create(body)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With("event_type", event.Type())
	if scoped, ok := event.(events.CallScoped); ok {
		logger = logger.With("call_id", scoped.CallIdentifier())
	}
	if scoped, ok := event.(events.ConferenceScoped); ok {
		logger = logger.With("conference_id", scoped.ConferenceIdentifier())
	}
	logger.Debug("dispatching callback")

	return event, r.Dispatch(hclog.WithContext(ctx, logger), event)
}

// ServeHTTP accepts POSTed callbacks.
//
// Bodies that are not a JSON object are answered with 400, and handler
// failures with 500 so the callback is retried. Unknown event types get 204 when IgnoreUnknown
// is set and 422 otherwise.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxBytes := r.config.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("reading request body: %v", err), http.StatusBadRequest)
		return
	}

	_, err = r.Handle(req.Context(), body)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case events.IsUnknownEvent(err):
		r.logger.Warn("unknown callback", "error", err)
		if r.config.IgnoreUnknown {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case events.IsDecode(err):
		r.logger.Warn("malformed callback", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		r.logger.Error("callback handler failed", "error", err)
		http.Error(w, "callback handler failed", http.StatusInternalServerError)
	}
}
