package generator

import (
	"context"
	"time"
)

// Pacer is called between visible generation steps so a host can slow the
// run down for visualization. Returning an error aborts the run.
type Pacer interface {
	Pause(ctx context.Context) error
}

// PacerFunc adapts a function to the Pacer interface
type PacerFunc func(ctx context.Context) error

// Pause calls f
func (f PacerFunc) Pause(ctx context.Context) error {
	return f(ctx)
}

// NoPacing never waits; it only reports cancellation
var NoPacing Pacer = PacerFunc(func(ctx context.Context) error {
	return ctx.Err()
})

// Delay returns a pacer that waits d between steps. A non-positive d behaves
// like NoPacing.
func Delay(d time.Duration) Pacer {
	if d <= 0 {
		return NoPacing
	}
	return PacerFunc(func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	})
}
