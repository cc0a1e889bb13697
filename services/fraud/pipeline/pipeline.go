package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fraudsight/fraudsight/internal/pkg/logger"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	"github.com/fraudsight/fraudsight/internal/pkg/retry"
	"github.com/fraudsight/fraudsight/services/fraud"
)

// QueueConsumer is the message-queue ingestion path
type QueueConsumer interface {
	Start(ctx context.Context) error
	Stop()
}

// FeedListener is the change-feed ingestion path
type FeedListener interface {
	Start(ctx context.Context) error
	Stop(timeout time.Duration) error
	Done() <-chan struct{}
	Err() error
}

// Supervisor owns the lifetimes of both ingestion paths. It is the only
// component that launches or joins pipeline goroutines.
type Supervisor struct {
	cfg      models.PipelineConfig
	consumer QueueConsumer
	listener FeedListener

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSupervisor creates a pipeline supervisor
func NewSupervisor(cfg models.PipelineConfig, consumer QueueConsumer, listener FeedListener) *Supervisor {
	return &Supervisor{
		cfg:      cfg,
		consumer: consumer,
		listener: listener,
	}
}

// Start launches the queue consumer and the change feed listener. A second
// Start on a running pipeline returns ErrAlreadyStarted.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fraud.ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)

	if err := s.consumer.Start(runCtx); err != nil {
		cancel()
		return err
	}
	if err := s.listener.Start(runCtx); err != nil {
		s.consumer.Stop()
		cancel()
		return err
	}

	s.started = true
	s.cancel = cancel

	s.wg.Add(1)
	go s.superviseListener(runCtx)

	logger.Info("Fraud pipeline started")
	return nil
}

// superviseListener restarts the listener with exponential backoff when its
// watch session dies on a feed failure. ListenerMaxRestarts of zero disables
// restarts; the feed failure is then terminal for the listener but never for
// the process.
func (s *Supervisor) superviseListener(ctx context.Context) {
	defer s.wg.Done()

	retrier := retry.New(retry.Config{
		MaxRetries: s.cfg.ListenerMaxRestarts,
		BaseDelay:  s.cfg.RestartBaseDelay,
		MaxDelay:   time.Minute,
		Multiplier: 2.0,
		Jitter:     true,
	})

	restarts := 0
	for {
		done := s.listener.Done()
		if done == nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-done:
		}

		err := s.listener.Err()
		if err == nil {
			// Clean exit, nothing to supervise.
			return
		}

		if restarts >= s.cfg.ListenerMaxRestarts {
			logger.Error("Change feed listener terminated, restart budget exhausted",
				logger.Int("restarts", restarts),
				logger.Err(err))
			return
		}

		delay := retrier.Delay(restarts)
		restarts++
		logger.Warn("Restarting change feed listener",
			logger.Int("attempt", restarts),
			logger.Duration("delay", delay),
			logger.Err(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if err := s.listener.Start(ctx); err != nil {
			logger.Error("Failed to restart change feed listener", logger.Err(err))
			return
		}
	}
}

// Stop shuts the pipeline down, waiting up to timeout for the listener's
// watch loop to exit. It is idempotent and never blocks past the grace
// period; ErrShutdownTimeout is surfaced as a warning to the caller.
func (s *Supervisor) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	s.consumer.Stop()
	cancel()

	err := s.listener.Stop(timeout)

	joined := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(joined)
	}()
	select {
	case <-joined:
	case <-time.After(timeout):
		if err == nil {
			err = fraud.ErrShutdownTimeout
		}
	}

	if errors.Is(err, fraud.ErrShutdownTimeout) {
		logger.Warn("Pipeline did not stop within grace period, forcing cancellation")
	} else if err != nil {
		logger.Error("Error stopping pipeline", logger.Err(err))
	} else {
		logger.Info("Fraud pipeline stopped")
	}
	return err
}
