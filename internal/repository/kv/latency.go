package kv

import (
	"context"
	"time"
)

type latencyBackend struct {
	next  Backend
	delay time.Duration
}

// WithLatency delays every call by d before reaching next, emulating a remote service.
// A non-positive d returns next unchanged.
func WithLatency(next Backend, d time.Duration) Backend {
	if d <= 0 {
		return next
	}
	return &latencyBackend{next: next, delay: d}
}

func (l *latencyBackend) wait(ctx context.Context) error {
	timer := time.NewTimer(l.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *latencyBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := l.wait(ctx); err != nil {
		return nil, false, err
	}
	return l.next.Get(ctx, key)
}

func (l *latencyBackend) Put(ctx context.Context, key string, payload []byte) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.Put(ctx, key, payload)
}
