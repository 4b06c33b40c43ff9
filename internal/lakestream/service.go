// Package lakestream turns a NEAR Lake style block store into an ordered,
// in-process stream of StreamerMessage values. It polls heights sequentially
// starting from a configured block height, retries transient fetch failures,
// and reports heights that remain unfetchable to a failure handler.
package lakestream

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/openlake/socialnotify/internal/pkg/logger"
	"github.com/openlake/socialnotify/internal/pkg/resilience/retry"
	"github.com/openlake/socialnotify/internal/pkg/x/chflow"
)

// ErrServiceAlreadyStarted is returned when Start is called on a service that
// is already running.
var ErrServiceAlreadyStarted = errors.New("service already started")

const (
	// streamChannelBufferSize is deliberately small: the downstream handler
	// must finish a block before the stream advances far past it.
	streamChannelBufferSize       = 1
	fetchFailureChannelBufferSize = 5

	defaultPollInterval     = 500 * time.Millisecond
	defaultGapSkipThreshold = 5
)

// Service exposes the lifecycle of the block stream.
type Service interface {
	// Start begins polling blocks and returns the channel on which streamer
	// messages are delivered in strictly increasing height order. The channel
	// is closed by Close.
	//
	// Returns ErrServiceAlreadyStarted if the service is already running.
	Start(ctx context.Context) (<-chan StreamerMessage, error)

	// Close stops polling and closes the stream channel. It is safe to call
	// Close on a service that was never started.
	Close()
}

type closeFunc func()

// fetchFailureHandler receives heights whose fetch failed past the retry
// policy. The stream skips such heights and moves on.
type fetchFailureHandler func(ctx context.Context, failure BlockFetchFailure)

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	fetcher     Fetcher
	startHeight uint64

	pollInterval        time.Duration
	gapSkipThreshold    int
	retry               retry.Retry
	fetchFailureHandler fetchFailureHandler
}

var _ Service = (*service)(nil)

func (s *service) Start(ctx context.Context) (<-chan StreamerMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return nil, ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	var (
		failureCh = make(chan BlockFetchFailure, fetchFailureChannelBufferSize)
		streamCh  = make(chan StreamerMessage, streamChannelBufferSize)
	)

	s.closeFunc = func() {
		cancel()
		close(streamCh)
		close(failureCh)
	}

	s.startHandleFetchFailures(ctx, failureCh)

	go s.pollBlocks(ctx, streamCh, failureCh)

	s.isStarted = true
	return streamCh, nil
}

func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.isStarted = false
	s.closeFunc = nil
}

// fetchBlock retrieves the block at the given height, applying the retry
// policy to transient errors. ErrBlockNotFound is never retried; gaps and
// chain-tip waits are resolved by the polling loop instead.
//
// A nil slice means success. A non-nil slice preserves the original error
// followed by any retry errors.
func (s *service) fetchBlock(ctx context.Context, height uint64) (StreamerMessage, []error) {
	msg, err := s.fetcher.FetchBlock(ctx, height)
	if err == nil {
		return msg, nil
	}

	if errors.Is(err, ErrBlockNotFound) || s.retry == nil {
		return msg, []error{err}
	}

	errs := []error{err}
	retryErr := s.retry.Execute(ctx, func() error {
		var attemptErr error
		msg, attemptErr = s.fetcher.FetchBlock(ctx, height)
		return attemptErr
	})
	if retryErr != nil {
		return msg, append(errs, retryErr)
	}

	return msg, nil
}

// pollBlocks is the main polling loop. It walks heights sequentially from
// s.startHeight, delivering fetched blocks to streamCh in order. Heights that
// stay empty for gapSkipThreshold consecutive polls are treated as chain gaps
// and skipped; heights that fail past the retry policy are reported to
// failureCh and skipped.
func (s *service) pollBlocks(ctx context.Context, streamCh chan<- StreamerMessage, failureCh chan<- BlockFetchFailure) {
	var (
		height = s.startHeight
		misses = 0
	)

	for {
		msg, errs := s.fetchBlock(ctx, height)
		if len(errs) > 0 {
			if errors.Is(errors.Join(errs...), ErrBlockNotFound) {
				misses++
				if misses >= s.gapSkipThreshold {
					logger.Warn(ctx, "no block at height, assuming chain gap", "block.height", height)
					misses = 0
					height++
					continue
				}

				if ok := s.sleep(ctx); !ok {
					return
				}
				continue
			}

			failure := BlockFetchFailure{Height: height, Errors: errs}
			if ok := chflow.Send(ctx, failureCh, failure); !ok {
				return
			}

			misses = 0
			height++
			continue
		}

		misses = 0
		if ok := chflow.Send(ctx, streamCh, msg); !ok {
			return
		}
		height++
	}
}

// sleep waits one poll interval, returning false if the context is canceled first.
func (s *service) sleep(ctx context.Context) bool {
	timer := time.NewTimer(s.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// handleFetchFailures consumes unrecoverable fetch failures and hands each of
// them to the configured handler. It blocks until failureCh is closed or ctx
// is canceled.
func (s *service) handleFetchFailures(ctx context.Context, failureCh <-chan BlockFetchFailure) {
	for {
		failure, ok := chflow.Receive(ctx, failureCh)
		if !ok {
			return
		}

		if s.fetchFailureHandler != nil {
			s.fetchFailureHandler(ctx, failure)
		}
	}
}

// startHandleFetchFailures launches handleFetchFailures in a background goroutine.
func (s *service) startHandleFetchFailures(ctx context.Context, failureCh <-chan BlockFetchFailure) {
	go s.handleFetchFailures(ctx, failureCh)
}

func defaultOnFetchFailure(ctx context.Context, failure BlockFetchFailure) {
	logger.Error(ctx, "block fetch failure, skipping height",
		"block.height", failure.Height,
		"block.errors", errors.Join(failure.Errors...),
	)
}

type config struct {
	pollInterval        time.Duration
	gapSkipThreshold    int
	retry               retry.Retry
	fetchFailureHandler fetchFailureHandler
}

// Option customizes the stream service.
type Option func(*config)

// WithRetry enables retrying of transient block fetch failures.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithPollInterval sets how long the stream waits before re-polling a height
// that has no block yet. Default: 500ms.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithGapSkipThreshold sets how many consecutive empty polls of a height are
// tolerated before the height is assumed to be a chain gap and skipped.
// Default: 5.
func WithGapSkipThreshold(n int) Option {
	return func(c *config) {
		c.gapSkipThreshold = n
	}
}

// WithFetchFailureHandler overrides the handler invoked for heights that
// could not be fetched. The default handler logs and moves on.
func WithFetchFailureHandler(f fetchFailureHandler) Option {
	return func(c *config) {
		c.fetchFailureHandler = f
	}
}

// New creates a stream service that polls blocks from fetcher, starting at
// startHeight (inclusive).
func New(fetcher Fetcher, startHeight uint64, opts ...Option) *service {
	cfg := config{
		pollInterval:        defaultPollInterval,
		gapSkipThreshold:    defaultGapSkipThreshold,
		retry:               nil,
		fetchFailureHandler: defaultOnFetchFailure,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		fetcher:             fetcher,
		startHeight:         startHeight,
		pollInterval:        cfg.pollInterval,
		gapSkipThreshold:    cfg.gapSkipThreshold,
		retry:               cfg.retry,
		fetchFailureHandler: cfg.fetchFailureHandler,
	}
}
