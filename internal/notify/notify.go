// Package notify carries user-facing success and error messages out of the
// hooks layer.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
)

type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Info    Level = "info"
)

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Log writes notifications to the request logger.
type Log struct{}

func (Log) Notify(ctx context.Context, n Notification) {
	l := logging.FromContext(ctx)
	if n.Level == Error {
		l.Warn("notification", "level", string(n.Level), "message", n.Message)
		return
	}
	l.Info("notification", "level", string(n.Level), "message", n.Message)
}

// Buffer holds the most recent notifications until they are drained.
type Buffer struct {
	mu    sync.Mutex
	max   int
	items []Notification
}

func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = 50
	}
	return &Buffer{max: max}
}

func (b *Buffer) Notify(_ context.Context, n Notification) {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, n)
	if over := len(b.items) - b.max; over > 0 {
		b.items = append([]Notification(nil), b.items[over:]...)
	}
}

// Drain returns and forgets the buffered notifications.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Multi fans a notification out to every notifier.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, x := range m {
		x.Notify(ctx, n)
	}
}

func Succeed(ctx context.Context, nt Notifier, msg string) {
	nt.Notify(ctx, Notification{Level: Success, Message: msg, At: time.Now().UTC()})
}

func Fail(ctx context.Context, nt Notifier, msg string) {
	nt.Notify(ctx, Notification{Level: Error, Message: msg, At: time.Now().UTC()})
}
