package feed

import (
	"context"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchPage(page, gen int) tea.Cmd {
	source := m.source
	size := m.pageSize
	return func() tea.Msg {
		posts, err := source.FetchPage(context.Background(), page, size)
		if err != nil {
			return PageErrorMsg{Page: page, Gen: gen, Err: err}
		}
		return PageLoadedMsg{Page: page, Gen: gen, Posts: posts}
	}
}

func (m Model) emitPrefsChanged() tea.Cmd {
	category := m.category
	return func() tea.Msg {
		return PrefsChangedMsg{Category: category}
	}
}

// browserCommand is swapped out in tests.
var browserCommand = func(rawURL string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}

func openURL(rawURL string) tea.Cmd {
	if !isSafeExternalURL(rawURL) {
		return nil
	}
	return func() tea.Msg {
		if err := browserCommand(rawURL).Start(); err != nil {
			slog.Warn("feed: opening browser failed", "url", rawURL, "err", err)
		}
		return nil
	}
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
