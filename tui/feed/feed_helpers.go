package feed

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return fallbackWidth
	}
	return m.width
}

func (m Model) viewHeight() int {
	if m.height <= 0 {
		return fallbackHeight
	}
	return m.height
}

// columns returns how many cards fit side by side.
func (m Model) columns() int {
	if m.viewWidth() >= twoColumnMinWidth {
		return 2
	}
	return 1
}

// columnWidth is the outer width of one card, border included.
func (m Model) columnWidth() int {
	w := (m.viewWidth() - 2*gridLeft) / m.columns()
	return max(w, minCardWidth)
}

func (m Model) totalRows() int {
	if len(m.posts) == 0 {
		return 0
	}
	cols := m.columns()
	return (len(m.posts) + cols - 1) / cols
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func (m Model) headerLines() int {
	return lineCount(m.headerView())
}

func (m Model) footerLines() int {
	// One extra row for the app-level status bar rendered outside feed.View().
	return lineCount(m.footerView()) + 1
}

// feedViewportHeight is the number of lines available to the grid.
func (m Model) feedViewportHeight() int {
	h := m.viewHeight() - m.headerLines() - m.footerLines()
	return max(h, cardHeight+1)
}

// visibleRows is how many whole card rows fit in the viewport.
func (m Model) visibleRows() int {
	return max(m.feedViewportHeight()/cardHeight, 1)
}

// maxStartRow is the deepest scroll position: the last row sits at the
// bottom with the sentinel line still in view.
func (m Model) maxStartRow() int {
	fit := max((m.feedViewportHeight()-1)/cardHeight, 1)
	return max(m.totalRows()-fit, 0)
}

func (m *Model) clampCursor() {
	if len(m.posts) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.posts) {
		m.cursor = len(m.posts) - 1
	}
}

// ensureCursorVisible scrolls the grid so the focused card is in view.
func (m *Model) ensureCursorVisible() {
	m.clampCursor()
	if len(m.posts) == 0 {
		m.startRow = 0
		return
	}
	row := m.cursor / m.columns()
	if row < m.startRow {
		m.startRow = row
	}
	if last := m.startRow + m.visibleRows() - 1; row > last {
		m.startRow = row - m.visibleRows() + 1
	}
	if row == m.totalRows()-1 {
		m.startRow = max(m.startRow, m.maxStartRow())
	}
	m.startRow = min(max(m.startRow, 0), m.maxStartRow())
}

// scrollBy moves the viewport by delta rows and drags the cursor along so
// it stays on screen.
func (m *Model) scrollBy(delta int) {
	if len(m.posts) == 0 {
		return
	}
	m.startRow = min(max(m.startRow+delta, 0), m.maxStartRow())
	cols := m.columns()
	row, col := m.cursor/cols, m.cursor%cols
	if row < m.startRow {
		row = m.startRow
	}
	if last := m.startRow + m.visibleRows() - 1; row > last {
		row = last
	}
	m.cursor = row*cols + col
	m.clampCursor()
}

// sentinelVisible reports whether the "loading more" marker under the
// last row is inside the viewport. A halted or empty feed reports false.
func (m Model) sentinelVisible() bool {
	if m.closed || m.loading || m.err != nil || m.exhausted || len(m.posts) == 0 {
		return false
	}
	return (m.totalRows()-m.startRow)*cardHeight < m.feedViewportHeight()
}

// observeSentinel feeds the current marker visibility to the sentinel and
// starts the next page fetch on a threshold crossing. Nothing is observed
// before the first layout or while the overlay holds the scroll lock.
func (m *Model) observeSentinel() tea.Cmd {
	if m.height <= 0 || m.scroll.Locked() {
		return nil
	}
	if !m.sentinel.Observe(m.sentinelVisible()) {
		return nil
	}
	page := m.pages.Advance()
	m.inflight++
	slog.Debug("feed: sentinel reached", "page", page, "posts", len(m.posts))
	return m.fetchPage(page, m.gen)
}

// cardAt maps a screen cell to the index of the card drawn there.
func (m Model) cardAt(x, y int) (int, bool) {
	top := m.headerLines()
	line := y - top
	if line < 0 || line >= m.feedViewportHeight() || x < gridLeft {
		return 0, false
	}
	cols := m.columns()
	col := (x - gridLeft) / m.columnWidth()
	if col >= cols {
		return 0, false
	}
	row := m.startRow + line/cardHeight
	idx := row*cols + col
	if idx < 0 || idx >= len(m.posts) {
		return 0, false
	}
	return idx, true
}

// resetFeed starts a fresh list at page 1 under a new generation.
func (m *Model) resetFeed() tea.Cmd {
	m.gen++
	m.posts = nil
	m.pages.Reset()
	m.sentinel.Reset()
	m.cursor = 0
	m.startRow = 0
	m.err = nil
	m.notice = ""
	m.exhausted = false
	m.loading = true
	m.inflight = 1
	return m.fetchPage(m.pages.Page(), m.gen)
}
