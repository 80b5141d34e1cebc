package feed

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/cardfeed/app"
)

const maxCategoryDigits = 9

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showAllHints {
		if key.Matches(msg, m.keys.ToggleHints) || key.Matches(msg, m.keys.Escape) || msg.String() == "enter" {
			m.showAllHints = false
		}
		return m, nil
	}
	if m.selection.IsOpen() {
		return m.handleDetailKey(msg)
	}
	if m.categoryInput {
		return m.handleCategoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = true
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.resetFeed()

	case key.Matches(msg, m.keys.Category):
		m.categoryInput = true
		m.categoryBuffer = ""
		if m.category > 0 {
			m.categoryBuffer = strconv.Itoa(m.category)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if len(m.posts) == 0 {
			return m, nil
		}
		m.clampCursor()
		m.openDetail(m.cursor)
		return m, nil

	case key.Matches(msg, m.keys.OpenLink):
		if len(m.posts) == 0 {
			return m, nil
		}
		m.clampCursor()
		return m, openURL(m.posts[m.cursor].Link)
	}

	return m.handleGridNavigation(msg)
}

// handleGridNavigation moves the focused card. It is only reached while
// the scroll lock is free.
func (m Model) handleGridNavigation(msg tea.KeyMsg) (Model, tea.Cmd) {
	if len(m.posts) == 0 || m.scroll.Locked() {
		return m, nil
	}
	cols := m.columns()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < len(m.posts) {
			m.cursor += cols
		} else if m.cursor/cols < m.totalRows()-1 {
			// Partial last row: drop to its last card.
			m.cursor = len(m.posts) - 1
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor%cols > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor%cols < cols-1 && m.cursor+1 < len(m.posts) {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = max(m.cursor-cols*m.visibleRows(), m.cursor%cols)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = min(m.cursor+cols*m.visibleRows(), len(m.posts)-1)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.posts) - 1
	default:
		return m, nil
	}
	m.ensureCursorVisible()
	return m, m.observeSentinel()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeDetail(CloseEscape)
		return m, m.observeSentinel()
	case key.Matches(msg, m.keys.Close):
		m.closeDetail(CloseControl)
		return m, m.observeSentinel()
	case key.Matches(msg, m.keys.OpenLink):
		if p, ok := m.selection.Current(); ok {
			return m, openURL(p.Link)
		}
	case key.Matches(msg, m.keys.Up):
		m.detailScroll--
		m.clampDetailScroll()
	case key.Matches(msg, m.keys.Down):
		m.detailScroll++
		m.clampDetailScroll()
	case key.Matches(msg, m.keys.Home):
		m.detailScroll = 0
	case key.Matches(msg, m.keys.End):
		m.detailScroll = m.maxDetailScroll()
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = true
	}
	return m, nil
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.categoryInput = false
		m.categoryBuffer = ""
		return m, nil
	case tea.KeyEnter:
		m.categoryInput = false
		raw := strings.TrimSpace(m.categoryBuffer)
		m.categoryBuffer = ""
		category := 0
		if raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				m.notice = "Invalid category: " + raw
				return m, nil
			}
			category = n
		}
		return m.applyCategory(category)
	case tea.KeyBackspace:
		if m.categoryBuffer != "" {
			m.categoryBuffer = m.categoryBuffer[:len(m.categoryBuffer)-1]
		}
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(m.categoryBuffer) < maxCategoryDigits {
				m.categoryBuffer += string(r)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) applyCategory(category int) (Model, tea.Cmd) {
	if category == m.category {
		return m, nil
	}
	filter, ok := m.source.(app.CategoryFilter)
	if !ok {
		m.notice = "This source cannot filter by category."
		return m, nil
	}
	m.source = filter.ForCategory(category)
	m.category = category
	fetch := m.resetFeed()
	m.notice = m.categoryLabel()
	return m, tea.Batch(fetch, m.emitPrefsChanged())
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	// The hints screen covers the grid, so card hit-testing does not apply.
	if m.showAllHints {
		return m, nil
	}
	if m.selection.IsOpen() {
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.detailScroll--
			m.clampDetailScroll()
		case msg.Button == tea.MouseButtonWheelDown:
			m.detailScroll++
			m.clampDetailScroll()
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			r := m.overlayRect()
			if m.onCloseControl(msg.X, msg.Y) {
				m.closeDetail(CloseControl)
				return m, m.observeSentinel()
			}
			if !r.contains(msg.X, msg.Y) {
				m.closeDetail(CloseOutsideClick)
				return m, m.observeSentinel()
			}
		}
		return m, nil
	}

	if m.scroll.Locked() || m.categoryInput {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-1)
		return m, m.observeSentinel()
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(1)
		return m, m.observeSentinel()
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if idx, ok := m.cardAt(msg.X, msg.Y); ok {
			m.cursor = idx
			m.openDetail(idx)
		}
	}
	return m, nil
}

func (m *Model) openDetail(idx int) {
	if idx < 0 || idx >= len(m.posts) {
		return
	}
	m.selection.Open(m.posts[idx])
	m.detailScroll = 0
}

func (m *Model) closeDetail(reason CloseReason) {
	if m.selection.Close(reason) {
		m.detailScroll = 0
	}
}
