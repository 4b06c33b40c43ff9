// Package retry wraps the retry-go package behind a small interface with
// functional options. The default policy is exponential backoff, which suits
// the transient failures this service retries (HTTP fetches against the lake
// data store).
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations with automatic retry on failure.
type Retry interface {
	// Execute runs the given operation, retrying it according to the
	// configured policy when it returns an error.
	//
	// The context controls cancellation: if it is canceled or times out,
	// retrying stops and the context error is returned. The operation must
	// be safe to call multiple times.
	//
	// Execute returns nil once the operation succeeds, or an error when all
	// attempts fail or the context is done.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint          // maximum number of attempts, including the first
	delay       time.Duration // base delay between attempts
	maxDelay    time.Duration // cap on the backoff delay
	lastErrOnly bool          // whether to return only the last error
}

// Option configures the retry mechanism. Options are applied in order.
type Option func(*config)

// retrier implements Retry on top of retry-go.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry configured by the given options.
//
// Defaults: 3 attempts (1 initial + 2 retries), 1s base delay, 5s max delay,
// exponential backoff, only the last error returned.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the maximum number of attempts, including the initial
// one. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay before the first retry; subsequent delays
// grow with the backoff. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the backoff delay between attempts. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether Execute returns only the final
// attempt's error (true, the default) or all attempt errors combined.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
