package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/cardfeed/app"
	"github.com/CrestNiraj12/cardfeed/domain"
	"github.com/CrestNiraj12/cardfeed/tui/common"
)

const (
	defaultPageSize   = 10
	cardContentLines  = 7
	cardHeight        = cardContentLines + 2 // rounded border
	descriptionLines  = 4
	twoColumnMinWidth = 96
	gridLeft          = 1 // left margin of the grid, in cells
	minCardWidth      = 24
)

// PageLoadedMsg is sent when a page fetch completes successfully.
type PageLoadedMsg struct {
	Page  int
	Gen   int
	Posts []domain.Post
}

// PageErrorMsg is sent when a page fetch fails.
type PageErrorMsg struct {
	Page int
	Gen  int
	Err  error
}

// PrefsChangedMsg asks the root model to persist feed preferences.
type PrefsChangedMsg struct {
	Category int
}

// --- Model ---

type feedState struct {
	posts     domain.PostList
	pages     domain.PageCursor
	pageSize  int
	category  int
	gen       int // bumped on refresh and teardown; older responses are dropped
	inflight  int // page fetches of the current generation still pending
	loading   bool
	exhausted bool
	err       error
	notice    string
	closed    bool
}

type uiState struct {
	keys         common.KeyMap
	spinner      spinner.Model
	width        int // Terminal width
	height       int // Terminal height
	cursor       int // Index of the focused card
	startRow     int // First visible grid row
	showAllHints bool
}

type detailState struct {
	sentinel     Sentinel
	scroll       *ScrollLock
	selection    Selection
	detailScroll int // Line offset of the overlay body
}

type categoryState struct {
	categoryInput  bool
	categoryBuffer string
}

// Model holds the state for the card grid and its detail overlay.
type Model struct {
	source app.PostSource
	feedState
	uiState
	detailState
	categoryState
}

// New creates a feed model. pageSize below 1 falls back to the default;
// category 0 shows all posts.
func New(source app.PostSource, pageSize, category int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if category < 0 {
		category = 0
	}
	lock := &ScrollLock{}

	return Model{
		source: source,
		feedState: feedState{
			pages:    domain.NewPageCursor(),
			pageSize: pageSize,
			category: category,
			loading:  true,
			inflight: 1,
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
		detailState: detailState{
			scroll:    lock,
			selection: NewSelection(lock),
		},
	}
}

// Init starts the first page fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPage(m.pages.Page(), m.gen),
		m.spinner.Tick,
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Teardown unmounts the feed: the overlay is closed, the scroll lock is
// released, and responses still in flight are ignored from now on.
func (m Model) Teardown() Model {
	m.selection.Close(CloseUnmount)
	m.closed = true
	m.gen++
	m.inflight = 0
	return m
}

// Posts returns the accumulated posts in display order.
func (m Model) Posts() domain.PostList {
	return m.posts
}

// Page returns the page cursor's current page.
func (m Model) Page() int {
	return m.pages.Page()
}

// Err returns the error that halted pagination, if any.
func (m Model) Err() error {
	return m.err
}

// Selected returns the post shown in the detail overlay, if open.
func (m Model) Selected() (domain.Post, bool) {
	return m.selection.Current()
}

// IsInDetailView reports whether the detail overlay is open.
func (m Model) IsInDetailView() bool {
	return m.selection.IsOpen()
}

// IsCapturingInput reports whether keystrokes are going to a text prompt.
func (m Model) IsCapturingInput() bool {
	return m.categoryInput
}

// ScrollLocked reports whether grid scrolling is suppressed.
func (m Model) ScrollLocked() bool {
	return m.scroll.Locked()
}
