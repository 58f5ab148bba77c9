package tray

import (
	"fmt"
	"slices"

	"github.com/getlantern/systray"

	"autoshot/internal/capture"
	"autoshot/internal/config"
	"autoshot/internal/shell"
)

// IntervalPresets are the intervals offered in the menu, in seconds.
var IntervalPresets = []int{0, 5, 10, 30, 60, 300, 600, 1800, 3600}

type intervalItem struct {
	seconds int
	item    *systray.MenuItem
}

type formatItem struct {
	format config.Format
	item   *systray.MenuItem
}

// menu is the systray implementation of shell.View.
type menu struct {
	labels config.Labels

	status       *systray.MenuItem
	folder       *systray.MenuItem
	chooseFolder *systray.MenuItem
	openFolder   *systray.MenuItem
	interval     *systray.MenuItem
	intervals    []intervalItem
	format       *systray.MenuItem
	formats      []formatItem
	toggle       *systray.MenuItem
	lastShot     *systray.MenuItem
	viewLog      *systray.MenuItem
	startup      *systray.MenuItem
	quit         *systray.MenuItem

	captures int
}

func newMenu(labels config.Labels, settings config.Settings, startupEnabled bool) *menu {
	m := &menu{labels: labels}

	systray.SetTitle(labels.Title)
	systray.SetTooltip(labels.Title)

	m.status = systray.AddMenuItem(labels.Title, "Status")
	m.status.Disable()
	systray.AddSeparator()

	m.folder = systray.AddMenuItem("Folder: "+settings.Folder, "Screenshots are saved here")
	m.folder.Disable()
	m.chooseFolder = systray.AddMenuItem("Choose Folder…", labels.ChooseFolder)
	m.openFolder = systray.AddMenuItem("Open Folder", "Open the save folder")

	m.interval = systray.AddMenuItem("Interval", "Seconds between screenshots")
	presets := IntervalPresets
	if !slices.Contains(presets, settings.IntervalSeconds) {
		presets = append(slices.Clone(presets), settings.IntervalSeconds)
		slices.Sort(presets)
	}
	for _, seconds := range presets {
		item := m.interval.AddSubMenuItemCheckbox(shell.IntervalTitle(seconds), "", seconds == settings.IntervalSeconds)
		m.intervals = append(m.intervals, intervalItem{seconds: seconds, item: item})
	}

	m.format = systray.AddMenuItem("Format", "Image format of saved screenshots")
	for _, f := range labels.Formats {
		item := m.format.AddSubMenuItemCheckbox(string(f), "", f == settings.Format)
		m.formats = append(m.formats, formatItem{format: f, item: item})
	}
	systray.AddSeparator()

	m.toggle = systray.AddMenuItem(labels.StartButton, "Start or stop taking screenshots")
	m.lastShot = systray.AddMenuItem("No screenshots yet", "Last saved screenshot")
	m.lastShot.Disable()
	m.viewLog = systray.AddMenuItem("View Log", "Open the capture log in the browser")
	systray.AddSeparator()

	m.startup = systray.AddMenuItemCheckbox("Start on Login", "Start AutoShot when you log in", startupEnabled)
	systray.AddSeparator()

	m.quit = systray.AddMenuItem("Quit", "Quit AutoShot")
	return m
}

func (m *menu) SetRunning(running bool) {
	if running {
		m.toggle.SetTitle(m.labels.StopButton)
		systray.SetTitle(m.labels.Title + " ●")
		systray.SetTooltip(m.labels.Title + " - capturing")
		m.status.SetTitle("Capturing...")
		return
	}
	m.toggle.SetTitle(m.labels.StartButton)
	systray.SetTitle(m.labels.Title)
	systray.SetTooltip(m.labels.Title)
	m.status.SetTitle("Idle")
}

func (m *menu) SetSettingsEnabled(enabled bool) {
	for _, item := range []*systray.MenuItem{m.chooseFolder, m.interval, m.format} {
		if enabled {
			item.Enable()
		} else {
			item.Disable()
		}
	}
}

func (m *menu) SetSettings(settings config.Settings) {
	m.folder.SetTitle("Folder: " + settings.Folder)
	m.interval.SetTitle("Interval: " + shell.IntervalTitle(settings.IntervalSeconds))
	for _, it := range m.intervals {
		setChecked(it.item, it.seconds == settings.IntervalSeconds)
	}
	m.format.SetTitle("Format: " + string(settings.Format))
	for _, it := range m.formats {
		setChecked(it.item, it.format == settings.Format)
	}
}

func (m *menu) ClearLog() {
	m.captures = 0
	m.lastShot.SetTitle("No screenshots yet")
}

func (m *menu) AppendLog(rec capture.Record) {
	m.captures++
	m.lastShot.SetTitle(fmt.Sprintf("#%d %s", m.captures, rec.FileName))
	systray.SetTooltip(m.labels.Title + " - " + rec.FileName)
}

func (m *menu) ShowNotice(text string) {
	m.status.SetTitle(text)
	systray.SetTooltip(text)
}

func (m *menu) ShowError(text string) {
	m.status.SetTitle("Error: " + text)
	systray.SetTooltip("Error: " + text)
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}
