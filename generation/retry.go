/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generation

import (
	"context"
	"time"

	"github.com/chainguard-dev/clog"
)

// defaultAttempts is the total number of tries per prompt: one initial
// call plus two retries.
const defaultAttempts = 3

// SleepFunc blocks for d or until ctx is done, whichever comes first.
// Tests substitute a recording fake for the real clock.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryOption tunes the retry wrapper.
type RetryOption func(*retrying)

// WithAttempts overrides the total number of attempts.
func WithAttempts(attempts int) RetryOption {
	return func(r *retrying) {
		if attempts > 0 {
			r.attempts = attempts
		}
	}
}

// WithSleep overrides the delay primitive used between attempts.
func WithSleep(sleep SleepFunc) RetryOption {
	return func(r *retrying) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

type retrying struct {
	next     Client
	attempts int
	sleep    SleepFunc
}

// WithRetry wraps next in the transient-failure retry policy: every
// transport error is retried up to the attempt budget, waiting 2^N
// seconds before retry N. Exhaustion yields an *ExhaustedError carrying
// the last error.
func WithRetry(next Client, opts ...RetryOption) Client {
	r := &retrying{
		next:     next,
		attempts: defaultAttempts,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Complete implements Client.
func (r *retrying) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		out, err := r.next.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt == r.attempts {
			break
		}
		delay := time.Duration(1<<attempt) * time.Second
		clog.FromContext(ctx).With("attempt", attempt).
			With("max_attempts", r.attempts).
			With("backoff", delay).
			With("error", err.Error()).
			Warn("Generation call failed, retrying")
		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", &ExhaustedError{Attempts: r.attempts, Err: lastErr}
}
