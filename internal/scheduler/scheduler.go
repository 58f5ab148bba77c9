package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"autoshot/internal/logging"
)

// DefaultPollQuantum bounds how long a stop request can go unnoticed
// between two invocations.
const DefaultPollQuantum = 50 * time.Millisecond

var (
	ErrAlreadyStarted = errors.New("scheduler already started")
	ErrActionPanicked = errors.New("capture action panicked")
)

// Action is the repeated work. It is never invoked concurrently with itself.
type Action func() error

// Options configure a Scheduler.
type Options struct {
	Clock       func() time.Time
	PollQuantum time.Duration
	Logger      *slog.Logger
}

// Scheduler runs one action repeatedly on its own goroutine until stopped.
// An interval of zero runs the action once and exits. A Scheduler serves a
// single run; create a new one for the next run.
type Scheduler struct {
	action   Action
	interval time.Duration
	clock    func() time.Time
	quantum  time.Duration
	logger   *slog.Logger

	started  atomic.Bool
	running  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	invocations atomic.Int64
	err         error
}

// New validates its arguments and returns a stopped scheduler.
func New(action Action, interval time.Duration, opts Options) (*Scheduler, error) {
	if action == nil {
		return nil, errors.New("action must not be nil")
	}
	if interval < 0 {
		return nil, errors.New("interval must not be negative")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	quantum := opts.PollQuantum
	if quantum <= 0 {
		quantum = DefaultPollQuantum
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{
		action:   action,
		interval: interval,
		clock:    clock,
		quantum:  quantum,
		logger:   logger,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the worker goroutine. The first invocation happens before
// any interval wait.
func (s *Scheduler) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	s.running.Store(true)
	go s.run()
	return nil
}

// Stop asks the worker to exit. It does not interrupt an invocation in
// progress and does not wait for the worker; use Done for that. Calling Stop
// more than once has no further effect.
func (s *Scheduler) Stop() {
	s.running.Store(false)
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Running reports whether the worker has been started and not yet told to
// stop or exited on its own.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Done is closed once the worker goroutine has returned.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Err returns the action error that ended the run, if any. It is only
// meaningful after Done is closed.
func (s *Scheduler) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Invocations counts completed action calls, successful or not.
func (s *Scheduler) Invocations() int64 {
	return s.invocations.Load()
}

func (s *Scheduler) run() {
	defer close(s.done)
	defer s.running.Store(false)

	if err := s.invoke(); err != nil {
		s.err = err
		return
	}
	if s.interval == 0 {
		s.logger.Debug("single shot complete")
		return
	}

	baseline := s.clock()
	for s.running.Load() {
		if s.clock().Sub(baseline) >= s.interval {
			if !s.running.Load() {
				break
			}
			if err := s.invoke(); err != nil {
				s.err = err
				return
			}
			baseline = s.clock()
			continue
		}
		s.wait()
	}
	s.logger.Debug("scheduler stopped", "invocations", s.invocations.Load())
}

func (s *Scheduler) invoke() (err error) {
	defer s.invocations.Add(1)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrActionPanicked, r)
		}
	}()
	if err := s.action(); err != nil {
		s.logger.Warn("capture action failed", "error", err)
		return err
	}
	return nil
}

func (s *Scheduler) wait() {
	timer := time.NewTimer(s.quantum)
	defer timer.Stop()
	select {
	case <-s.stopCh:
	case <-timer.C:
	}
}
