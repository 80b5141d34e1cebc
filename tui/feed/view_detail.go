package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/CrestNiraj12/cardfeed/domain"
	"github.com/CrestNiraj12/cardfeed/tui/common"
)

const (
	maxOverlayWidth = 84
	minOverlayWidth = 30
	closeControl    = "[x]"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// overlayWidth is the outer width of the detail box, border included.
func (m Model) overlayWidth() int {
	return min(max(m.viewWidth()-4, minOverlayWidth), maxOverlayWidth)
}

// overlayInnerWidth is the text width inside border and padding.
func (m Model) overlayInnerWidth() int {
	return m.overlayWidth() - 4
}

// overlayBodyHeight is how many body lines fit between the title and hint rows.
func (m Model) overlayBodyHeight() int {
	// One blank row above and below, two border rows, title and hint rows.
	return max(m.viewHeight()-2-2-2, 3)
}

func (m Model) detailBody() []string {
	p, ok := m.selection.Current()
	if !ok {
		return nil
	}
	return detailBodyLines(p, m.overlayInnerWidth(), time.Now())
}

func detailBodyLines(p domain.Post, width int, now time.Time) []string {
	var lines []string

	author := p.Author
	if author == "" {
		author = "unknown author"
	}
	meta := common.AuthorStyle.Render(common.Truncate(author, width))
	if !p.Date.IsZero() {
		when := p.Date.Local().Format("Jan 02, 2006 15:04") + " (" + common.RelativeTime(p.Date, now) + ")"
		meta = common.AuthorStyle.Render(author) + common.TimestampStyle.Render(" · "+when)
		meta = common.Truncate(meta, width)
	}
	lines = append(lines, meta, "")

	if len(p.Images) == 0 {
		lines = append(lines, common.MediaStyle.Render("▢ no image"))
	}
	for _, img := range p.Images {
		lines = append(lines, common.MediaStyle.Render(common.Truncate(imageSummary(img)+"  "+img.URL, width)))
	}
	lines = append(lines, "")

	desc := p.Description
	if desc == "" {
		desc = "(no description)"
	}
	for _, ln := range common.Wrap(desc, width) {
		lines = append(lines, common.ContentStyle.Render(ln))
	}

	if p.Link != "" {
		lines = append(lines, "", common.TimestampStyle.Render(common.Truncate("↗ "+p.Link, width)))
	}
	return lines
}

func (m Model) maxDetailScroll() int {
	return max(len(m.detailBody())-m.overlayBodyHeight(), 0)
}

func (m *Model) clampDetailScroll() {
	if !m.selection.IsOpen() {
		m.detailScroll = 0
		return
	}
	m.detailScroll = min(max(m.detailScroll, 0), m.maxDetailScroll())
}

// overlayRect is the screen area covered by the detail box.
func (m Model) overlayRect() rect {
	w := m.overlayWidth()
	body := min(len(m.detailBody()), m.overlayBodyHeight())
	h := body + 2 + 2 // title and hint rows, top and bottom border
	return rect{
		x: max((m.viewWidth()-w)/2, 0),
		y: max((m.viewHeight()-h)/2, 0),
		w: w,
		h: h,
	}
}

// onCloseControl reports whether a cell lies on the [x] control drawn at
// the right end of the title row.
func (m Model) onCloseControl(x, y int) bool {
	r := m.overlayRect()
	if y != r.y+1 {
		return false
	}
	right := r.x + r.w - 3 // last cell before padding and border
	return x >= right-len(closeControl)+1 && x <= right
}

func (m Model) renderDetailView() string {
	p, ok := m.selection.Current()
	if !ok {
		return "No post selected."
	}
	r := m.overlayRect()
	inner := m.overlayInnerWidth()

	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	header := common.TitleStyle.Render(common.PadRight(title, inner-len(closeControl)-1)) +
		" " + common.CloseControlStyle.Render(closeControl)

	body := m.detailBody()
	start := min(max(m.detailScroll, 0), max(len(body)-m.overlayBodyHeight(), 0))
	end := min(start+m.overlayBodyHeight(), len(body))
	visible := body[start:end]

	hint := "esc/x close • o open link"
	if len(body) > m.overlayBodyHeight() {
		hint += fmt.Sprintf(" • ↑/↓ scroll %d/%d", end, len(body))
	}

	content := make([]string, 0, len(visible)+2)
	content = append(content, header)
	content = append(content, visible...)
	content = append(content, common.StatusBarStyle.Render(common.Truncate(hint, inner)))

	box := common.OverlayStyle.Width(r.w - 2).Render(strings.Join(content, "\n"))

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", r.y))
	pad := strings.Repeat(" ", r.x)
	for i, ln := range strings.Split(box, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(pad + ln)
	}
	return b.String()
}
