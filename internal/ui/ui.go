// Package ui is the interactive terminal front-end. It renders the
// orchestrator's results and a live view of the memory directory; it
// never mutates orchestrator state.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"memchat/internal/app"
	"memchat/internal/orchestrator"
)

const sidebarWidth = 28

type runDoneMsg struct {
	res orchestrator.Result
}

type filesMsg struct {
	files []string
	err   error
}

type memChangedMsg struct{}

// Model is the bubbletea model for the memchat TUI.
type Model struct {
	app      *app.App
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	watcher  *memoryWatcher

	files   []string
	history []string
	running bool
	status  string
	width   int
	height  int
	ready   bool
}

// Run starts the TUI and blocks until it exits.
func Run(a *app.App) error {
	p := tea.NewProgram(newModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask something about your memory files…"
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Enumerate first so the root exists before the watcher attaches.
	files, _ := a.Store.Enumerate()

	return Model{
		app:     a,
		input:   ti,
		spin:    sp,
		files:   files,
		watcher: newMemoryWatcher(a.Store.Root()),
		status:  "Ready",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.watcher != nil {
				m.watcher.close()
			}
			return m, tea.Quit
		case "enter":
			prompt := m.input.Value()
			if m.running || prompt == "" {
				return m, nil
			}
			m.running = true
			m.status = "Running baseline and augmented calls…"
			m.input.SetValue("")
			return m, tea.Batch(m.spin.Tick, m.runPrompt(prompt))
		}

	case runDoneMsg:
		m.running = false
		m.status = "Ready"
		m.history = append(m.history, renderResult(msg.res, m.contentWidth()))
		m.refreshViewport()
		return m, m.loadFiles()

	case filesMsg:
		if msg.err == nil {
			m.files = msg.files
		}
		return m, nil

	case memChangedMsg:
		cmds := []tea.Cmd{m.loadFiles()}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.wait())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) layout() {
	contentHeight := m.height - 4 // title, input, status
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.viewport = viewport.New(m.contentWidth(), contentHeight)
	m.input.Width = m.width - 4
	m.refreshViewport()
}

func (m *Model) contentWidth() int {
	w := m.width - sidebarWidth - 3
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) refreshViewport() {
	var body string
	if len(m.history) == 0 {
		body = welcomeText(m.app.Config.Model, m.app.Store.Root())
	} else {
		for i, block := range m.history {
			if i > 0 {
				body += "\n\n"
			}
			body += block
		}
	}
	m.viewport.SetContent(body)
	m.viewport.GotoBottom()
}

func (m Model) runPrompt(prompt string) tea.Cmd {
	return func() tea.Msg {
		return runDoneMsg{res: m.app.Orchestrator.Run(context.Background(), prompt)}
	}
}

func (m Model) loadFiles() tea.Cmd {
	store := m.app.Store
	return func() tea.Msg {
		files, err := store.Enumerate()
		return filesMsg{files: files, err: err}
	}
}
