package common

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// Truncate cuts s to at most width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width cells, truncating if needed.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// Wrap word-wraps s to width cells, hard-breaking words that do not fit.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		wrapped := ansi.Hardwrap(ansi.Wordwrap(para, width, ""), width, true)
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	return out
}

// Clamp wraps s and keeps at most maxLines lines, ending the last kept
// line with an ellipsis when text was dropped.
func Clamp(s string, width, maxLines int) []string {
	lines := Wrap(s, width)
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := strings.TrimRight(lines[maxLines-1], " ")
	if ansi.StringWidth(last)+1 > width {
		last = ansi.Truncate(last, width-1, "")
	}
	lines[maxLines-1] = last + "…"
	return lines
}

// RelativeTime renders t relative to now, e.g. "3 days ago". Zero times
// render as an empty string.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
