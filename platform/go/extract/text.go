package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// SummaryLimit is the maximum rune length of a service summary.
const SummaryLimit = 200

const ellipsis = "..."

var firstParagraph = regexp.MustCompile(`<p>([^<]+)<`)

// FirstParagraph returns the trimmed text of the first <p> up to the next tag, or "".
func FirstParagraph(html string) string {
	m := firstParagraph.FindStringSubmatch(html)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Truncate shortens s to limit runes, replacing the tail with "..." when it overflows.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(s)
	return string(runes[:keep]) + ellipsis
}

// PlainText strips markup and collapses whitespace. Malformed markup yields whatever
// text the parser recovers.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	var parts []string
	doc.Find("p, li, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, strings.Join(strings.Fields(t), " "))
		}
	})
	if len(parts) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " ")
	}
	return strings.Join(parts, " ")
}
