package tui

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/yurukusa/cc-project-stats/internal/report"
	"github.com/yurukusa/cc-project-stats/internal/sessions"
	"github.com/yurukusa/cc-project-stats/pkg/models"
)

// Options configures the interactive view.
type Options struct {
	SessionsDir string
	Days        int
	AllTime     bool
}

type scanDoneMsg struct {
	report models.Report
	err    error
}

type fsChangeMsg struct{}

type tickMsg time.Time

type model struct {
	opts      Options
	allTime   bool
	viewport  viewport.Model
	indicator *LoadingIndicator
	watcher   *fsnotify.Watcher
	report    models.Report
	loading   bool
	// pendingScan queues a rescan for a filesystem change that arrived
	// while a scan was already running.
	pendingScan bool
	ready       bool
	err       error
	width     int
	height    int
}

func initialModel(opts Options, watcher *fsnotify.Watcher) model {
	return model{
		opts:      opts,
		allTime:   opts.AllTime,
		watcher:   watcher,
		loading:   true,
		indicator: NewLoadingIndicator("Scanning sessions..."),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), m.waitForChange(), tickCmd())
}

// scanCmd runs the whole pipeline off the UI loop and reports back.
func (m model) scanCmd() tea.Cmd {
	opts := m.opts
	allTime := m.allTime
	return func() tea.Msg {
		rep, err := sessions.Scan(opts.SessionsDir, sessions.NewFilters(opts.Days, allTime, time.Now()))
		return scanDoneMsg{report: rep, err: err}
	}
}

// waitForChange blocks on the next filesystem event under the sessions root.
func (m model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	watcher := m.watcher
	return func() tea.Msg {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				return fsChangeMsg{}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 3
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "r":
			if !m.loading {
				m.loading = true
				m.indicator.SetMessage("Scanning sessions...")
				cmds = append(cmds, m.scanCmd())
			}

		case "a":
			m.allTime = !m.allTime
			m.loading = true
			m.indicator.SetMessage("Rescanning...")
			cmds = append(cmds, m.scanCmd())
		}

	case scanDoneMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
		}
		m.updateViewport()
		if m.pendingScan {
			m.pendingScan = false
			m.loading = true
			m.indicator.SetMessage("Sessions changed, rescanning...")
			cmds = append(cmds, m.scanCmd())
		}

	case fsChangeMsg:
		// Session files changed on disk. If a scan is already running, queue
		// one more so the change is not lost.
		if m.loading {
			m.pendingScan = true
		} else {
			m.loading = true
			m.indicator.SetMessage("Sessions changed, rescanning...")
			cmds = append(cmds, m.scanCmd())
		}
		cmds = append(cmds, m.waitForChange())

	case tickMsg:
		if m.loading {
			m.indicator.Tick()
		}
		cmds = append(cmds, tickCmd())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(report.RenderTable(m.report))
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		return "\n  " + errStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}

func (m model) renderHeader() string {
	title := "Claude Code Time"
	if m.allTime {
		title += " - all time"
	}
	if m.loading {
		title += "  " + m.indicator.View()
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "r: refresh • a: toggle all-time • ↑/↓: scroll • q: quit"
	if m.watcher != nil {
		info += " • live"
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

// Run starts the interactive view and blocks until the user quits.
func Run(opts Options) error {
	watcher := newWatcher(opts.SessionsDir)
	if watcher != nil {
		defer watcher.Close()
	}

	p := tea.NewProgram(
		initialModel(opts, watcher),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}

// newWatcher watches the sessions root and each project directory. Watching
// is best effort: when it fails the view still works with manual refresh.
func newWatcher(root string) *fsnotify.Watcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return nil
	}
	if entries, err := os.ReadDir(root); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				_ = watcher.Add(filepath.Join(root, entry.Name()))
			}
		}
	}
	return watcher
}
