package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"autoshot/internal/capture"
	"autoshot/internal/config"
	"autoshot/internal/logging"
	"autoshot/internal/scheduler"
)

var (
	ErrClosed = errors.New("session controller closed")
	// ErrPreviousRunFinishing is returned when a start is requested while the
	// last stopped run still has a capture in flight.
	ErrPreviousRunFinishing = errors.New("previous capture run is still finishing")
)

// Capturer performs one capture into folder.
type Capturer interface {
	Capture(folder string, format config.Format) (capture.Record, error)
}

// ConfirmFunc asks the user to accept a zero-interval (single capture) run.
type ConfirmFunc func(config.Settings) bool

type Options struct {
	Capturer  Capturer
	Scheduler scheduler.Options
	NewRunID  func() string
	Logger    *slog.Logger
}

// Controller runs at most one capture session at a time and reports its
// progress to the shell through Events.
type Controller struct {
	capturer  Capturer
	schedOpts scheduler.Options
	newRunID  func() string
	logger    *slog.Logger

	// toggleMu serialises ToggleRun and Close.
	toggleMu sync.Mutex

	mu      sync.Mutex
	state   State
	current *run
	latest  *run
	records []capture.Record
	closed  bool

	box *mailbox
}

type run struct {
	id       string
	settings config.Settings
	sched    *scheduler.Scheduler
	seq      int
}

func New(opts Options) (*Controller, error) {
	if opts.Capturer == nil {
		return nil, errors.New("capturer must not be nil")
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	schedOpts := opts.Scheduler
	if schedOpts.Logger == nil {
		schedOpts.Logger = logger
	}
	return &Controller{
		capturer:  opts.Capturer,
		schedOpts: schedOpts,
		newRunID:  newRunID,
		logger:    logger,
		box:       newMailbox(),
	}, nil
}

// Events delivers shell notifications in order. The channel is closed after
// Close once every queued event has been received.
func (c *Controller) Events() <-chan Event {
	return c.box.out
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Records returns the log of the current (or most recent) run.
func (c *Controller) Records() []capture.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]capture.Record(nil), c.records...)
}

// ToggleRun stops the running session, or validates settings and starts a
// new one. With a zero interval, confirm must approve the single capture;
// that capture is taken synchronously and the session ends right after it.
// A refused confirmation returns OutcomeDeclined with config.ErrZeroInterval.
// While a stopped run is still finishing a capture, starting fails with
// ErrPreviousRunFinishing instead of waiting for it.
// A repeating run returns immediately and captures on its own goroutine.
func (c *Controller) ToggleRun(settings config.Settings, confirm ConfirmFunc) (Outcome, error) {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return OutcomeNone, ErrClosed
	}
	if c.state == StateRunning {
		r := c.current
		c.current = nil
		c.state = StateStopped
		c.box.post(Event{Kind: EventStopped, RunID: r.id, Settings: r.settings})
		c.mu.Unlock()

		r.sched.Stop()
		c.logger.Info("capture run stopped", "run_id", r.id, "captures", r.sched.Invocations())
		return OutcomeStopped, nil
	}
	c.mu.Unlock()

	if c.latestBusy() {
		c.logger.Info("capture run start refused, previous run still finishing")
		return OutcomeNone, ErrPreviousRunFinishing
	}
	if err := settings.Validate(); err != nil {
		c.logger.Warn("capture run rejected", "error", err)
		return OutcomeNone, err
	}
	if settings.SingleShot() && (confirm == nil || !confirm(settings)) {
		c.logger.Info("single capture declined")
		return OutcomeDeclined, &config.ValidationError{Reason: config.ErrZeroInterval}
	}

	if settings.SingleShot() {
		return c.singleShot(settings)
	}
	return c.startRepeating(settings)
}

func (c *Controller) singleShot(settings config.Settings) (Outcome, error) {
	r := &run{id: c.newRunID(), settings: settings}
	if !c.begin(r) {
		return OutcomeNone, ErrClosed
	}
	c.logger.Info("single capture", "run_id", r.id, "folder", settings.Folder, "format", settings.Format)

	rec, err := c.capturer.Capture(settings.Folder, settings.Format)
	if err == nil {
		c.deliver(r, rec)
	}

	c.mu.Lock()
	if c.current == r {
		c.current = nil
		c.state = StateStopped
		if !c.closed {
			c.box.post(Event{Kind: EventStopped, RunID: r.id, Settings: settings, Err: err})
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("single capture failed", "run_id", r.id, "error", err)
		return OutcomeNone, err
	}
	return OutcomeSingleShot, nil
}

func (c *Controller) startRepeating(settings config.Settings) (Outcome, error) {
	r := &run{id: c.newRunID(), settings: settings}
	sched, err := scheduler.New(c.action(r), settings.Interval(), c.schedOpts)
	if err != nil {
		return OutcomeNone, fmt.Errorf("create scheduler: %w", err)
	}
	r.sched = sched

	if !c.begin(r) {
		return OutcomeNone, ErrClosed
	}
	if err := sched.Start(); err != nil {
		c.abort(r, err)
		return OutcomeNone, err
	}
	go c.watch(r)

	c.logger.Info("capture run started",
		"run_id", r.id,
		"folder", settings.Folder,
		"interval_seconds", settings.IntervalSeconds,
		"format", settings.Format,
	)
	return OutcomeStarted, nil
}

// begin makes r the running session and clears the previous log.
func (c *Controller) begin(r *run) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.current = r
	c.latest = r
	c.records = nil
	c.state = StateRunning
	c.box.post(Event{Kind: EventStarted, RunID: r.id, Settings: r.settings})
	return true
}

func (c *Controller) abort(r *run, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != r {
		return
	}
	c.current = nil
	c.state = StateStopped
	if !c.closed {
		c.box.post(Event{Kind: EventStopped, RunID: r.id, Settings: r.settings, Err: err})
	}
}

func (c *Controller) action(r *run) scheduler.Action {
	folder, format := r.settings.Folder, r.settings.Format
	return func() error {
		rec, err := c.capturer.Capture(folder, format)
		if err != nil {
			return err
		}
		c.deliver(r, rec)
		return nil
	}
}

// deliver appends rec to the log and forwards it to the shell. It runs on
// whichever goroutine took the capture.
func (c *Controller) deliver(r *run, rec capture.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.latest != r {
		return
	}
	r.seq++
	rec.RunID = r.id
	rec.Seq = r.seq
	c.records = append(c.records, rec)
	c.box.post(Event{Kind: EventCaptured, RunID: r.id, Settings: r.settings, Record: rec})
	c.logger.Debug("capture recorded", "run_id", r.id, "seq", rec.Seq, "file", rec.FileName)
}

// watch waits for the worker of r to exit and reports a capture failure.
func (c *Controller) watch(r *run) {
	<-r.sched.Done()
	err := r.sched.Err()
	if err == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.current == r {
		c.logger.Error("capture run failed", "run_id", r.id, "error", err)
		c.current = nil
		c.state = StateStopped
		c.box.post(Event{Kind: EventStopped, RunID: r.id, Settings: r.settings, Err: err})
		return
	}
	c.logger.Error("in-flight capture failed after stop", "run_id", r.id, "error", err)
	c.box.post(Event{Kind: EventFailed, RunID: r.id, Settings: r.settings, Err: err})
}

// latestBusy reports whether the most recent run's worker has not exited
// yet. It never blocks.
func (c *Controller) latestBusy() bool {
	c.mu.Lock()
	r := c.latest
	c.mu.Unlock()
	if r == nil || r.sched == nil {
		return false
	}
	select {
	case <-r.sched.Done():
		return false
	default:
		return true
	}
}

// Close stops any running session and waits, at most until ctx is done, for
// an in-flight capture to finish. Events is closed once drained.
func (c *Controller) Close(ctx context.Context) error {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	r := c.latest
	c.current = nil
	c.state = StateStopped
	c.box.close()
	c.mu.Unlock()

	if r == nil || r.sched == nil {
		return nil
	}
	r.sched.Stop()
	select {
	case <-r.sched.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for capture worker: %w", ctx.Err())
	}
}
