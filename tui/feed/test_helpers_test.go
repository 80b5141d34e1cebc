package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/cardfeed/app"
	"github.com/CrestNiraj12/cardfeed/domain"
)

// stubSource serves canned pages. Pages missing from the map are empty.
type stubSource struct {
	pages      map[int][]domain.Post
	errs       map[int]error
	calls      []int
	categories []int
}

func (s *stubSource) FetchPage(_ context.Context, page, _ int) ([]domain.Post, error) {
	s.calls = append(s.calls, page)
	if err := s.errs[page]; err != nil {
		return nil, err
	}
	return s.pages[page], nil
}

func (s *stubSource) ForCategory(category int) app.PostSource {
	s.categories = append(s.categories, category)
	return s
}

// plainSource has no category support.
type plainSource struct {
	posts []domain.Post
}

func (p plainSource) FetchPage(_ context.Context, page, _ int) ([]domain.Post, error) {
	if page == 1 {
		return p.posts, nil
	}
	return nil, nil
}

func makePosts(from, to int) []domain.Post {
	out := make([]domain.Post, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, domain.Post{
			ID:          id,
			Title:       fmt.Sprintf("Post %d", id),
			Description: fmt.Sprintf("Description of post %d.", id),
			Author:      "Author",
			Date:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Link:        fmt.Sprintf("https://example.com/?p=%d", id),
			Images: []domain.Image{
				{Width: 1200, Height: 630, URL: fmt.Sprintf("https://example.com/%d.jpg", id), Type: "image/jpeg"},
			},
		})
	}
	return out
}

func ids(posts []domain.Post) []int {
	out := make([]int, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func rangeIDs(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for id := from; id <= to; id++ {
		out = append(out, id)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// collect runs cmd and returns the messages it produces, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			out = append(out, msg)
		}
	}
	return out
}

// drain feeds every message produced by cmd back into m until the model
// settles. Spinner ticks and preference messages are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, PrefsChangedMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

// press sends a key and drains the resulting commands.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	m, cmd := m.Update(keyMsg(k))
	return drain(t, m, cmd)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func wheel(down bool) tea.MouseMsg {
	b := tea.MouseButtonWheelUp
	if down {
		b = tea.MouseButtonWheelDown
	}
	return tea.MouseMsg{Button: b, Action: tea.MouseActionPress}
}

// started returns a sized model with its first page loaded.
func started(t *testing.T, src app.PostSource, w, h int) Model {
	t.Helper()
	m := New(src, 10, 0)
	m = drain(t, m, m.Init())
	m, cmd := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return drain(t, m, cmd)
}
