package wordpress

import (
	"strings"
	"testing"
)

func TestPlainText_DecodesEntitiesAndStripsTags(t *testing.T) {
	in := `<p>Hello &lt;world&gt; &amp; crew</p><br/>line&nbsp;2 &#8211; end`
	got := plainText(in)
	if strings.Contains(got, "<p>") || strings.Contains(got, "<br") {
		t.Fatalf("expected HTML tags stripped: %q", got)
	}
	if !strings.Contains(got, "<world>") || !strings.Contains(got, "&") {
		t.Fatalf("expected html entities decoded: %q", got)
	}
	if !strings.Contains(got, "\nline 2 – end") {
		t.Fatalf("expected line break and dash retained: %q", got)
	}
}

func TestPlainText_PlainInputUntouched(t *testing.T) {
	if got := plainText("  Just a title  "); got != "Just a title" {
		t.Fatalf("unexpected plain text: %q", got)
	}
	if got := plainText(""); got != "" {
		t.Fatalf("empty input should stay empty: %q", got)
	}
}

func TestSanitizeForTerminal_RemovesEscapesAndControls(t *testing.T) {
	in := "ok\x1b[31mred\x1b[0m\x1b]8;;http://x\x07bad\x01\x02"
	got := sanitizeForTerminal(in)
	if strings.Contains(got, "\x1b") {
		t.Fatalf("expected ansi removed: %q", got)
	}
	if strings.ContainsRune(got, '\x01') || strings.ContainsRune(got, '\x02') {
		t.Fatalf("expected controls removed: %q", got)
	}
	if !strings.Contains(got, "ok") || !strings.Contains(got, "red") {
		t.Fatalf("expected plain text preserved: %q", got)
	}
}

func TestCollapseSpace_DropsBlankLines(t *testing.T) {
	got := collapseSpace("a   b\n\n  \nc\t\td")
	if got != "a b\nc d" {
		t.Fatalf("unexpected collapsed text: %q", got)
	}
}
