// Package notify carries user-facing notices (vendor failures and the like)
// from the search orchestration to whichever screen is listening.
package notify

import (
	"context"
	"sync"
	"time"

	"partscout/internal/domain"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Notice struct {
	Level   Level         `json:"level"`
	Vendor  domain.Vendor `json:"vendor,omitempty"`
	Message string        `json:"message"`
	At      time.Time     `json:"at"`
}

type Publisher interface {
	Publish(Notice)
}

// Func adapts a plain callback to a Publisher.
type Func func(Notice)

func (f Func) Publish(n Notice) { f(n) }

// Discard drops every notice.
var Discard Publisher = Func(func(Notice) {})

// Collector keeps every notice published to it. Safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

func (c *Collector) Publish(n Notice) {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	c.mu.Lock()
	c.notices = append(c.notices, n)
	c.mu.Unlock()
}

// Notices returns what has been published so far, oldest first.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Messages is Notices reduced to their text.
func (c *Collector) Messages() []string {
	ns := c.Notices()
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}

type ctxKey struct{}

// WithPublisher scopes p to ctx, typically a single request.
func WithPublisher(ctx context.Context, p Publisher) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the publisher scoped to ctx, or Discard.
func FromContext(ctx context.Context) Publisher {
	if p, ok := ctx.Value(ctxKey{}).(Publisher); ok && p != nil {
		return p
	}
	return Discard
}
