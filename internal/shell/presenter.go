// Package shell holds the presentation logic of the desktop shell,
// independent of the widget toolkit that renders it.
package shell

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"autoshot/internal/capture"
	"autoshot/internal/config"
	"autoshot/internal/logging"
	"autoshot/internal/session"
)

// DefaultConfirmWindow is how long a declined zero-interval start stays armed;
// a second Start click inside it confirms the single capture.
const DefaultConfirmWindow = 10 * time.Second

// View is the widget surface the presenter drives. All calls come from the
// presenter's goroutine.
type View interface {
	SetRunning(running bool)
	SetSettingsEnabled(enabled bool)
	SetSettings(settings config.Settings)
	ClearLog()
	AppendLog(rec capture.Record)
	ShowNotice(text string)
	ShowError(text string)
}

// Toggler starts and stops capture runs.
type Toggler interface {
	ToggleRun(settings config.Settings, confirm session.ConfirmFunc) (session.Outcome, error)
}

// EventSink receives every session event after the view has been updated.
type EventSink interface {
	Apply(ev session.Event)
}

type PresenterOptions struct {
	Settings      config.Settings
	Labels        config.Labels
	Toggler       Toggler
	View          View
	Sink          EventSink
	ConfirmWindow time.Duration
	Clock         func() time.Time
	Logger        *slog.Logger
}

// Presenter holds the shell state. It is not safe for concurrent use; the
// tray loop owns it.
type Presenter struct {
	labels  config.Labels
	toggler Toggler
	view    View
	sink    EventSink
	window  time.Duration
	clock   func() time.Time
	logger  *slog.Logger

	settings   config.Settings
	running    bool
	runID      string
	captures   int
	armedUntil time.Time
}

func NewPresenter(opts PresenterOptions) *Presenter {
	window := opts.ConfirmWindow
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Presenter{
		labels:   opts.Labels,
		toggler:  opts.Toggler,
		view:     opts.View,
		sink:     opts.Sink,
		window:   window,
		clock:    clock,
		logger:   logger,
		settings: opts.Settings,
	}
	p.view.SetSettings(p.settings)
	p.view.SetRunning(false)
	p.view.SetSettingsEnabled(true)
	return p
}

func (p *Presenter) Settings() config.Settings {
	return p.settings
}

func (p *Presenter) Running() bool {
	return p.running
}

// Toggle handles a click on the start/stop item.
func (p *Presenter) Toggle() {
	outcome, err := p.toggler.ToggleRun(p.settings, p.confirm)
	p.logger.Debug("toggle", "outcome", outcome, "error", err)
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, config.ErrZeroInterval):
		p.view.ShowNotice(p.labels.ZeroInterval)
	case errors.Is(err, config.ErrEmptyFolder):
		p.view.ShowError(p.labels.EmptyFolder)
	case errors.Is(err, session.ErrPreviousRunFinishing):
		p.view.ShowNotice(p.labels.Finishing)
	default:
		p.view.ShowError(err.Error())
	}
}

// confirm accepts a zero-interval start only when it was armed by a
// previous, declined click that is still recent.
func (p *Presenter) confirm(config.Settings) bool {
	now := p.clock()
	if !p.armedUntil.IsZero() && now.Before(p.armedUntil) {
		p.armedUntil = time.Time{}
		return true
	}
	p.armedUntil = now.Add(p.window)
	return false
}

func (p *Presenter) SetInterval(seconds int) {
	if p.running || seconds < 0 || seconds > config.MaxIntervalSeconds {
		return
	}
	p.settings.IntervalSeconds = seconds
	p.armedUntil = time.Time{}
	p.view.SetSettings(p.settings)
}

// SetFolder switches the save folder. An empty folder (a cancelled picker)
// leaves the settings alone, as does any change while a run is active.
func (p *Presenter) SetFolder(folder string) {
	if p.running || folder == "" || folder == p.settings.Folder {
		return
	}
	if err := config.ValidateFolder(folder); err != nil {
		p.logger.Warn("folder rejected", "folder", folder, "error", err)
		p.view.ShowError(err.Error())
		return
	}
	p.settings.Folder = folder
	p.view.SetSettings(p.settings)
}

func (p *Presenter) SetFormat(format config.Format) {
	if p.running || !format.Valid() {
		return
	}
	p.settings.Format = format
	p.view.SetSettings(p.settings)
}

// Handle applies one session event to the view.
func (p *Presenter) Handle(ev session.Event) {
	switch ev.Kind {
	case session.EventStarted:
		p.running = true
		p.runID = ev.RunID
		p.captures = 0
		p.view.ClearLog()
		p.view.SetSettingsEnabled(false)
		p.view.SetRunning(true)
	case session.EventCaptured:
		p.captures++
		p.view.AppendLog(ev.Record)
	case session.EventStopped:
		p.running = false
		p.view.SetRunning(false)
		p.view.SetSettingsEnabled(true)
		if ev.Err != nil {
			p.view.ShowError(ev.Err.Error())
		} else {
			p.view.ShowNotice(p.labels.StoppedNotice)
		}
	case session.EventFailed:
		if ev.RunID != p.runID {
			p.logger.Warn("capture of an earlier run failed", "run_id", ev.RunID, "error", ev.Err)
			break
		}
		if ev.Err != nil {
			p.view.ShowError(ev.Err.Error())
		}
	}
	if p.sink != nil {
		p.sink.Apply(ev)
	}
}

// Captures counts log entries of the current run.
func (p *Presenter) Captures() int {
	return p.captures
}

// IntervalTitle renders an interval for a menu entry.
func IntervalTitle(seconds int) string {
	switch {
	case seconds == 0:
		return "Once (0s)"
	case seconds%3600 == 0:
		return strconv.Itoa(seconds/3600) + "h"
	case seconds%60 == 0:
		return strconv.Itoa(seconds/60) + "m"
	default:
		return strconv.Itoa(seconds) + "s"
	}
}
