package feed

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankLines      = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText converts markup into plain text. Images and link targets are
// dropped, link text is kept, and paragraphs become blank-line separated.
func HTMLToText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}

	doc.Find("img, script, style, span.invisible").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, blockquote").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}

	text := strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
