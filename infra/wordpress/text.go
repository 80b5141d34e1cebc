package wordpress

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/x/ansi"
)

var (
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
	spaceRunRe  = regexp.MustCompile(`[ \t\p{Zs}]+`)
)

// plainText turns an HTML fragment from the API into terminal-safe text.
// Paragraph ends and <br> become newlines; everything else is flattened.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		s = lineBreakRe.ReplaceAllString(s, "\n")
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err != nil {
			s = html.UnescapeString(s)
		} else {
			s = doc.Text()
		}
	}
	return collapseSpace(sanitizeForTerminal(s))
}

// sanitizeForTerminal drops escape sequences and control characters so
// remote content cannot drive the terminal.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r == '\x1b' || unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func collapseSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, ln := range lines {
		ln = strings.TrimSpace(spaceRunRe.ReplaceAllString(ln, " "))
		if ln == "" {
			continue
		}
		out = append(out, ln)
	}
	return strings.Join(out, "\n")
}
