package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxgo/internal/domain"
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("ctrl+c", "q"))
	keyHelp    = key.NewBinding(key.WithKeys("?"))
	keyBack    = key.NewBinding(key.WithKeys("esc"))
	keyNextTab = key.NewBinding(key.WithKeys("tab"))
	keyPrevTab = key.NewBinding(key.WithKeys("shift+tab"))
	keySummary = key.NewBinding(key.WithKeys("1"))
	keyLog     = key.NewBinding(key.WithKeys("2"))
	keyNotes   = key.NewBinding(key.WithKeys("3"))
	keyOld     = key.NewBinding(key.WithKeys("o"))
	keyNew     = key.NewBinding(key.WithKeys("n"))
	keyReload  = key.NewBinding(key.WithKeys("r"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ProfileLoadedMsg:
		m.profile = msg.Profile
		m.loadingMessage = "Calculating both regimes..."
		return m, compareCmd(m.engine, msg.Profile)

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compSet = msg.Set
		m.refreshLog()
		m.notes.SetContent(m.notesContent())
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil && !key.Matches(msg, keyQuit) {
		// any key dismisses an error
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keyQuit):
		return m, tea.Quit

	case key.Matches(msg, keyHelp):
		return m, navigate(SceneHelp)

	case key.Matches(msg, keyBack):
		if m.currentScene != SceneSummary {
			return m, navigate(m.previousScene)
		}
		return m, nil

	case key.Matches(msg, keyNextTab):
		return m, navigate(m.adjacentTab(1))

	case key.Matches(msg, keyPrevTab):
		return m, navigate(m.adjacentTab(-1))

	case key.Matches(msg, keySummary):
		return m, navigate(SceneSummary)

	case key.Matches(msg, keyLog):
		return m, navigate(SceneLog)

	case key.Matches(msg, keyNotes):
		return m, navigate(SceneNotes)

	case key.Matches(msg, keyReload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Reloading profile..."
		return m, loadProfileCmd(m.profilePath)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's component
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneLog:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(k, keyOld):
				m.logRegime = domain.RegimeOld
				m.refreshLog()
				return m, nil
			case key.Matches(k, keyNew):
				m.logRegime = domain.RegimeNew
				m.refreshLog()
				return m, nil
			}
		}
		m.logTable, cmd = m.logTable.Update(msg)
	case SceneNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m Model) adjacentTab(step int) Scene {
	idx := 0
	for i, s := range tabs {
		if s == m.currentScene {
			idx = i
			break
		}
	}
	idx = (idx + step + len(tabs)) % len(tabs)
	return tabs[idx]
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}
