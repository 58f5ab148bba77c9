// Package tray renders the shell as a system-tray menu.
package tray

import (
	"log/slog"

	"github.com/getlantern/systray"

	"autoshot/internal/assets"
	"autoshot/internal/config"
	"autoshot/internal/desktop"
	"autoshot/internal/logging"
	"autoshot/internal/session"
	"autoshot/internal/shell"
	"autoshot/internal/startup"
)

// Controller is the part of the session the tray needs.
type Controller interface {
	shell.Toggler
	Events() <-chan session.Event
}

type Options struct {
	Config     *config.Config
	Controller Controller
	Sink       shell.EventSink
	// LogURL is opened by "View Log"; empty hides the item.
	LogURL string
	Logger *slog.Logger
	// OnExit runs after the menu loop has ended.
	OnExit func()
}

type Tray struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options) *Tray {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tray{opts: opts, logger: logger}
}

// Run blocks until the user quits. It must be called from the main goroutine.
func (s *Tray) Run() {
	systray.Run(s.onReady, s.onExit)
}

func (s *Tray) onReady() {
	cfg := s.opts.Config
	if icon, err := assets.IconData(); err != nil {
		s.logger.Warn("failed to build tray icon", "error", err)
	} else {
		systray.SetIcon(icon)
	}

	m := newMenu(cfg.Labels, cfg.Settings, startup.IsEnabled())
	if s.opts.LogURL == "" {
		m.viewLog.Hide()
	}

	p := shell.NewPresenter(shell.PresenterOptions{
		Settings: cfg.Settings,
		Labels:   cfg.Labels,
		Toggler:  s.opts.Controller,
		View:     m,
		Sink:     s.opts.Sink,
		Logger:   s.logger,
	})

	// Submenu items are created at runtime, so their clicks are funnelled
	// into one channel the loop below can select on.
	picks := make(chan func(), 8)
	for _, it := range m.intervals {
		go forward(it.item.ClickedCh, picks, func() { p.SetInterval(it.seconds) })
	}
	for _, it := range m.formats {
		go forward(it.item.ClickedCh, picks, func() { p.SetFormat(it.format) })
	}

	go s.loop(m, p, picks)
}

func forward(clicked <-chan struct{}, picks chan<- func(), fn func()) {
	for range clicked {
		picks <- fn
	}
}

func (s *Tray) loop(m *menu, p *shell.Presenter, picks chan func()) {
	events := s.opts.Controller.Events()
	picking := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			p.Handle(ev)
		case fn := <-picks:
			fn()
		case <-m.toggle.ClickedCh:
			p.Toggle()
		case <-m.chooseFolder.ClickedCh:
			if picking || p.Running() {
				continue
			}
			picking = true
			go s.pickFolder(p.Settings().Folder, picks, func(dir string) {
				picking = false
				p.SetFolder(dir)
			})
		case <-m.openFolder.ClickedCh:
			if err := desktop.Open(p.Settings().Folder); err != nil {
				s.logger.Warn("failed to open folder", "error", err)
			}
		case <-m.viewLog.ClickedCh:
			if err := desktop.Open(s.opts.LogURL); err != nil {
				s.logger.Warn("failed to open log view", "error", err)
			}
		case <-m.startup.ClickedCh:
			s.toggleStartup(m)
		case <-m.quit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

// pickFolder runs the blocking folder dialog off the menu loop and hands the
// result back through picks. apply runs on the loop with "" on cancel.
func (s *Tray) pickFolder(start string, picks chan<- func(), apply func(dir string)) {
	dir, err := chooseFolder(s.opts.Config.Labels.ChooseFolder, start)
	if err != nil {
		s.logger.Warn("folder dialog failed", "error", err)
		dir = ""
	}
	picks <- func() { apply(dir) }
}

func (s *Tray) toggleStartup(m *menu) {
	if m.startup.Checked() {
		if err := startup.Disable(); err != nil {
			s.logger.Warn("failed to disable start on login", "error", err)
			return
		}
		m.startup.Uncheck()
		return
	}
	if err := startup.Enable(); err != nil {
		s.logger.Warn("failed to enable start on login", "error", err)
		return
	}
	m.startup.Check()
}

func (s *Tray) onExit() {
	if s.opts.OnExit != nil {
		s.opts.OnExit()
	}
}
