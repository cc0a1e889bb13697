package listener

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fraudsight/fraudsight/internal/pkg/logger"
	"github.com/fraudsight/fraudsight/internal/pkg/models"
	"github.com/fraudsight/fraudsight/services/fraud"
)

// State is the lifecycle state of the change feed listener
type State int32

const (
	StateStopped State = iota
	StateStarting
	StateWatching
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateWatching:
		return "watching"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Listener watches the transaction store's change feed and scores every
// newly inserted record, independent of how the record arrived. It runs as a
// single long-lived background goroutine owned by the pipeline supervisor.
type Listener struct {
	feed   fraud.ChangeFeed
	scorer fraud.Scorer
	repo   fraud.TransactionRepo

	state       atomic.Int32
	mu          sync.Mutex
	cancel      context.CancelFunc
	closeCursor func() error
	done        chan struct{}
	err         error
}

// New creates a change feed listener
func New(feed fraud.ChangeFeed, scorer fraud.Scorer, repo fraud.TransactionRepo) *Listener {
	return &Listener{
		feed:   feed,
		scorer: scorer,
		repo:   repo,
	}
}

// State returns the listener's current lifecycle state
func (l *Listener) State() State {
	return State(l.state.Load())
}

// Err returns the terminal error of the last watch session, if any.
// A clean shutdown leaves it nil.
func (l *Listener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Done returns a channel closed when the current watch session exits.
// Returns nil before the first Start.
func (l *Listener) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Start opens the change feed cursor and launches the watch loop.
// Starting an already-running listener returns ErrAlreadyStarted.
func (l *Listener) Start(ctx context.Context) error {
	if !l.state.CompareAndSwap(int32(StateStopped), int32(StateStarting)) {
		return fraud.ErrAlreadyStarted
	}

	watchCtx, cancel := context.WithCancel(ctx)
	cursor, err := l.feed.Open(watchCtx)
	if err != nil {
		cancel()
		l.state.Store(int32(StateStopped))
		return err
	}

	// Both the watch loop and a timed-out Stop may try to close the cursor;
	// the Once makes sure only one of them actually does.
	var closeOnce sync.Once
	var closeErr error
	closeCursor := func() error {
		closeOnce.Do(func() { closeErr = cursor.Close() })
		return closeErr
	}

	l.mu.Lock()
	l.cancel = cancel
	l.closeCursor = closeCursor
	l.done = make(chan struct{})
	l.err = nil
	done := l.done
	l.mu.Unlock()

	l.state.Store(int32(StateWatching))
	logger.Info("Change feed listener started")

	go l.watch(watchCtx, cursor, closeCursor, done)
	return nil
}

// watch is the steady-state loop consuming feed events. It exits on
// shutdown or on cursor failure; it never exits because of a bad event.
func (l *Listener) watch(ctx context.Context, cursor fraud.FeedCursor, closeCursor func() error, done chan struct{}) {
	defer func() {
		if err := closeCursor(); err != nil {
			logger.Warn("Error closing feed cursor", logger.Err(err))
		}
		l.state.Store(int32(StateStopped))
		close(done)
	}()

	for {
		event, err := cursor.Next(ctx)
		if err != nil {
			if l.State() == StateStopping || ctx.Err() != nil {
				return
			}
			logger.Error("Change feed terminated unexpectedly", logger.Err(err))
			l.setErr(err)
			return
		}

		l.handleEvent(ctx, event)
	}
}

// handleEvent scores a single feed event. Errors are contained here so one
// bad document cannot starve the feed.
func (l *Listener) handleEvent(ctx context.Context, event *models.FeedEvent) {
	if event == nil || event.Op != models.FeedOpInsert {
		return
	}
	if event.Document == nil {
		logger.Warn("Skipping insert event without document",
			logger.String("transaction_id", event.TransactionID))
		return
	}

	doc := event.Document
	isFraud, err := l.scorer.Evaluate(ctx, doc)
	if err != nil {
		logger.Error("Error scoring feed document",
			logger.String("transaction_id", doc.TransactionID),
			logger.Err(err))
		return
	}

	if err := l.repo.UpdateVerdict(ctx, doc.TransactionID, isFraud); err != nil {
		logger.Error("Error persisting feed verdict",
			logger.String("transaction_id", doc.TransactionID),
			logger.Err(err))
		return
	}

	logger.Info("Transaction evaluated from change feed",
		logger.String("transaction_id", doc.TransactionID),
		logger.Bool("is_fraud", isFraud))
}

// Stop signals shutdown and waits up to timeout for the watch loop to exit.
// It is idempotent; calling it on a stopped listener returns nil. When the
// grace period elapses the cursor is force-closed and ErrShutdownTimeout is
// returned.
func (l *Listener) Stop(timeout time.Duration) error {
	for !l.state.CompareAndSwap(int32(StateWatching), int32(StateStopping)) {
		switch l.State() {
		case StateStarting:
			// A concurrent Start is still wiring up the session. Wait for
			// it to reach Watching (or bail out to Stopped) so the session
			// it creates cannot outlive this Stop.
			time.Sleep(time.Millisecond)
			continue
		case StateStopping:
			// Another Stop is in flight; wait on its shutdown below.
		default:
			return nil
		}
		break
	}

	l.mu.Lock()
	cancel := l.cancel
	closeCursor := l.closeCursor
	done := l.done
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done == nil {
		l.state.Store(int32(StateStopped))
		return nil
	}

	select {
	case <-done:
		logger.Info("Change feed listener stopped")
		return nil
	case <-time.After(timeout):
		if closeCursor != nil {
			_ = closeCursor()
		}
		return fraud.ErrShutdownTimeout
	}
}

func (l *Listener) setErr(err error) {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}
