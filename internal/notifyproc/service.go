// Package notifyproc coordinates the block-level pipeline, wiring the
// lakestream block source into the notifywatch notification workflow.
package notifyproc

import (
	"context"
	"errors"
	"sync"

	"github.com/openlake/socialnotify/internal/lakestream"
	"github.com/openlake/socialnotify/internal/notifywatch"
	"github.com/openlake/socialnotify/internal/pkg/x/chflow"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

// Service defines the pipeline lifecycle entrypoint.
type Service interface {
	// Start launches the block stream and begins handing each streamer
	// message to the notification workflow. Call Close to shut down all
	// background routines.
	//
	// Returns ErrServiceAlreadyStarted if the service is already running.
	Start(ctx context.Context) error

	// Close shuts down the pipeline and cancels all active routines. It is
	// safe to call Close even if the service was never started.
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool
	closeFunc closeFunc

	lakestream  lakestream.Service  // source of streamer messages
	notifywatch notifywatch.Service // notification workflow
}

var _ Service = (*service)(nil)

// handleStreamerMessages consumes the block channel and processes each
// message in arrival order. The stream only advances once the handler for
// the previous block has returned.
func (s *service) handleStreamerMessages(ctx context.Context, blocksCh <-chan lakestream.StreamerMessage) {
	for {
		msg, ok := chflow.Receive(ctx, blocksCh)
		if !ok {
			return
		}

		s.notifywatch.HandleStreamerMessage(ctx, msg)
	}
}

// startHandleStreamerMessages launches handleStreamerMessages in a background
// goroutine, leaving it running until the channel is closed or ctx is canceled.
func (s *service) startHandleStreamerMessages(ctx context.Context, blocksCh <-chan lakestream.StreamerMessage) {
	go s.handleStreamerMessages(ctx, blocksCh)
}

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	blocksCh, err := s.lakestream.Start(ctx)
	if err != nil {
		cancel()
		return err
	}

	s.startHandleStreamerMessages(ctx, blocksCh)

	s.closeFunc = func() {
		cancel()
		s.lakestream.Close()
	}
	s.isStarted = true
	return nil
}

func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

// New wires the lakestream source into the notifywatch workflow.
func New(ls lakestream.Service, nw notifywatch.Service) *service {
	return &service{
		lakestream:  ls,
		notifywatch: nw,
	}
}
