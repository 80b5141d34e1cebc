package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/cardfeed/app"
	"github.com/CrestNiraj12/cardfeed/infra/config"
	"github.com/CrestNiraj12/cardfeed/tui/common"
	"github.com/CrestNiraj12/cardfeed/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Source    app.PostSource
	PageSize  int
	Category  int
	StatePath string
}

// prefsSavedMsg reports the outcome of persisting UI preferences.
type prefsSavedMsg struct {
	Err error
}

// App is the root Bubble Tea model. It owns the feed and the status bar.
type App struct {
	deps   Deps
	feed   feed.Model
	keys   common.KeyMap
	status string // Transient status message (e.g. "Preferences saved.")
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps: deps,
		feed: feed.New(deps.Source, deps.PageSize, deps.Category),
		keys: common.DefaultKeyMap(),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles global messages and forwards the rest to the feed.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a.quit()
		}
		if key.Matches(msg, a.keys.Quit) && !a.feed.IsInDetailView() && !a.feed.IsCapturingInput() {
			return a.quit()
		}
		a.status = ""

	case feed.PrefsChangedMsg:
		return a, a.savePrefs(msg.Category)

	case prefsSavedMsg:
		if msg.Err != nil {
			a.status = "Could not save preferences: " + msg.Err.Error()
		}
		return a, nil
	}

	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.feed = a.feed.Teardown()
	return a, tea.Quit
}

func (a App) savePrefs(category int) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		err := config.SaveUIState(path, config.UIState{Category: category})
		if err != nil {
			slog.Warn("tui: saving ui state failed", "path", path, "err", err)
		}
		return prefsSavedMsg{Err: err}
	}
}

// View renders the feed with the transient status line.
func (a App) View() string {
	s := a.feed.View()
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}
	return s
}
