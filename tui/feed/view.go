package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/cardfeed/domain"
	"github.com/CrestNiraj12/cardfeed/tui/common"
)

// View renders the feed as a string.
func (m Model) View() string {
	if m.showAllHints {
		return m.renderAllHints()
	}
	if m.selection.IsOpen() {
		return m.renderDetailView()
	}
	return m.headerView() + "\n" + m.gridView() + "\n" + m.footerView()
}

func (m Model) categoryLabel() string {
	if m.category > 0 {
		return "Category #" + strconv.Itoa(m.category)
	}
	return "All posts"
}

func (m Model) headerView() string {
	title := common.AppTitleStyle.Render("▦ cardfeed") + common.TaglineStyle.Render("<latest posts, one card at a time>")
	badge := common.CategoryStyle.Render(m.categoryLabel())
	return title + "\n" + badge + "\n"
}

func (m Model) gridView() string {
	vh := m.feedViewportHeight()
	var lines []string

	switch {
	case m.loading && len(m.posts) == 0:
		lines = append(lines, fmt.Sprintf("  %s Loading posts...", m.spinner.View()))
	case len(m.posts) == 0 && m.err != nil:
		lines = append(lines, "  Could not load posts.")
	case len(m.posts) == 0:
		lines = append(lines, "  No posts yet.")
	default:
		lines = m.gridLines(vh)
	}

	if len(lines) > vh {
		lines = lines[:vh]
	}
	for len(lines) < vh {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// gridLines renders the visible card rows followed by the sentinel line
// once the last row is reached.
func (m Model) gridLines(vh int) []string {
	cols := m.columns()
	colWidth := m.columnWidth()
	rows := m.totalRows()
	end := min(rows, m.startRow+vh/cardHeight+1)
	pad := strings.Repeat(" ", gridLeft)
	now := time.Now()

	var lines []string
	for row := m.startRow; row < end; row++ {
		cards := make([]string, 0, cols)
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= len(m.posts) {
				break
			}
			cards = append(cards, renderCard(m.posts[idx], idx == m.cursor, colWidth, now))
		}
		for _, ln := range strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cards...), "\n") {
			lines = append(lines, pad+ln)
		}
	}
	if end == rows {
		lines = append(lines, m.sentinelLine())
	}
	return lines
}

func (m Model) sentinelLine() string {
	switch {
	case m.err != nil:
		return ""
	case m.exhausted:
		return lipgloss.PlaceHorizontal(m.viewWidth(), lipgloss.Center, common.NoticeStyle.Render("· end ·"))
	case m.inflight > 0:
		return lipgloss.PlaceHorizontal(m.viewWidth(), lipgloss.Center, m.spinner.View()+" Loading more...")
	default:
		return lipgloss.PlaceHorizontal(m.viewWidth(), lipgloss.Center, common.StatusBarStyle.Render("↓ more below"))
	}
}

func renderCard(p domain.Post, selected bool, outerWidth int, now time.Time) string {
	inner := max(outerWidth-4, 8)

	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	lines := make([]string, 0, cardContentLines)
	lines = append(lines, common.TitleStyle.Render(common.Truncate(title, inner)))
	lines = append(lines, metaLine(p, inner, now))
	lines = append(lines, common.MediaStyle.Render(common.Truncate(leadImageSummary(p), inner)))

	desc := common.Clamp(p.Description, inner, descriptionLines)
	for i := 0; i < descriptionLines; i++ {
		ln := ""
		if i < len(desc) {
			ln = desc[i]
		}
		lines = append(lines, common.ContentStyle.Render(ln))
	}

	style := common.CardStyle
	if selected {
		style = common.SelectedCardStyle
	}
	return style.Width(outerWidth - 2).Height(cardContentLines).Render(strings.Join(lines, "\n"))
}

func metaLine(p domain.Post, width int, now time.Time) string {
	author := p.Author
	if author == "" {
		author = "unknown author"
	}
	when := common.RelativeTime(p.Date, now)
	if when == "" {
		return common.AuthorStyle.Render(common.Truncate(author, width))
	}
	sep := " · "
	room := width - lipgloss.Width(sep) - lipgloss.Width(when)
	if room < 4 {
		return common.AuthorStyle.Render(common.Truncate(author, width))
	}
	return common.AuthorStyle.Render(common.Truncate(author, room)) + common.TimestampStyle.Render(sep+when)
}

func imageSummary(img domain.Image) string {
	kind := strings.TrimPrefix(img.Type, "image/")
	if kind == "" {
		kind = "image"
	}
	if img.Width > 0 && img.Height > 0 {
		return fmt.Sprintf("▣ %d×%d %s", img.Width, img.Height, kind)
	}
	return "▣ " + kind
}

func leadImageSummary(p domain.Post) string {
	img, ok := p.LeadImage()
	if !ok {
		return "▢ no image"
	}
	s := imageSummary(img)
	if extra := len(p.Images) - 1; extra > 0 {
		s += fmt.Sprintf(" (+%d)", extra)
	}
	return s
}

func (m Model) statusLine() string {
	switch {
	case m.categoryInput:
		return common.CategoryStyle.UnsetMarginLeft().Render("  Category ID: "+m.categoryBuffer+"█") +
			common.StatusBarStyle.Render("  enter apply (empty = all) • esc cancel")
	case m.err != nil:
		return common.ErrorStyle.Render(common.Truncate(fmt.Sprintf("  Error: %v", m.err), m.viewWidth())) +
			common.StatusBarStyle.Render("  r retry")
	case m.notice != "":
		return common.NoticeStyle.Render("  " + m.notice)
	}
	return ""
}

func (m Model) footerView() string {
	return m.statusLine() + "\n" + m.helpView()
}

func (m Model) helpView() string {
	var items []string
	if len(m.posts) > 0 {
		items = []string{
			"←↑↓→/hjkl: move",
			"enter: expand",
			"o: open",
			"c: category",
			"r: refresh",
			"?: all keys",
			"q: quit",
		}
	} else {
		items = []string{
			"c: category",
			"r: refresh",
			"q: quit",
		}
	}
	return common.StatusBarStyle.Render(common.Truncate("  "+strings.Join(items, " • "), m.viewWidth()))
}

func (m Model) renderAllHints() string {
	rows := [][2]string{
		{"↑/k ↓/j ←/h →/l", "move between cards"},
		{"pgup / pgdown", "jump a screen"},
		{"g / G", "first / last card"},
		{"enter / click", "expand the focused card"},
		{"esc / x / click outside", "close the expanded card"},
		{"o", "open the post in a browser"},
		{"c", "filter by category ID"},
		{"r", "reload from the first page"},
		{"wheel", "scroll"},
		{"q / ctrl+c", "quit"},
	}
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		b.WriteString("  " + common.AuthorStyle.Render(common.PadRight(r[0], 26)) + common.ContentStyle.Render(r[1]) + "\n")
	}
	b.WriteString("\n" + common.StatusBarStyle.Render("  ? / esc to close"))
	return b.String()
}
