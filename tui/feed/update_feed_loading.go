package feed

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/cardfeed/domain"
)

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if m.closed || msg.Gen != m.gen {
			slog.Debug("feed: dropping stale page", "page", msg.Page, "gen", msg.Gen, "current", m.gen)
			return m, nil
		}
		m.inflight = max(m.inflight-1, 0)
		m.loading = false

		if len(msg.Posts) == 0 {
			m.exhausted = true
			if len(m.posts) > 0 {
				m.notice = "End of posts reached."
			}
			m.sentinel.Observe(false)
			return m, nil
		}

		var anchorID int
		anchored := len(m.posts) > 0
		if anchored {
			m.clampCursor()
			anchorID = m.posts[m.cursor].ID
		}
		before := len(m.posts)
		m.posts = domain.Merge(m.posts, msg.Posts)
		slog.Debug("feed: merged page", "page", msg.Page, "received", len(msg.Posts), "added", len(m.posts)-before)
		if anchored {
			if idx := m.posts.Index(anchorID); idx >= 0 {
				m.cursor = idx
			}
		}
		m.ensureCursorVisible()
		// A landed page consumes the crossing, so a marker that is still on
		// screen asks for the next page.
		m.sentinel.Reset()
		return m, m.observeSentinel()

	case PageErrorMsg:
		if m.closed || msg.Gen != m.gen {
			return m, nil
		}
		m.inflight = max(m.inflight-1, 0)
		m.loading = false
		m.err = msg.Err
		m.sentinel.Observe(false)
		slog.Error("feed: page fetch failed", "page", msg.Page, "err", msg.Err)
		return m, nil
	}

	return m, nil
}
