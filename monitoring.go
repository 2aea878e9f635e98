package obfx

import (
	"context"
	"time"
)

// Hook receives callbacks around each obfuscation request, for operational
// visibility (metrics, tracing, audit). Implementations must be safe for
// concurrent use: the surrounding deployment may run many requests at once.
type Hook interface {
	// OnRequestStart is called after request validation, before RESOLVE.
	OnRequestStart(ctx context.Context, requestID string, req Request)

	// OnRequestComplete is called once per request, on success or failure.
	OnRequestComplete(ctx context.Context, requestID string, req Request, duration time.Duration, err error)
}

// NoOpHook is the default Hook; it does nothing.
type NoOpHook struct{}

func (NoOpHook) OnRequestStart(ctx context.Context, requestID string, req Request) {}
func (NoOpHook) OnRequestComplete(ctx context.Context, requestID string, req Request, duration time.Duration, err error) {
}
