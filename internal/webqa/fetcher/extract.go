package fetcher

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	noiseSelector = "script, style, noscript, nav, header, footer, aside, form"
	// minContentRunes 主内容候选的最小长度
	minContentRunes = 100
)

// contentSelectors are tried in order before falling back to <body>.
var contentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".content",
	"#content",
	".post",
	".entry-content",
	".article-body",
}

// ExtractText returns the readable text of an HTML page with whitespace
// collapsed to single spaces. It is empty when the page has no text.
func ExtractText(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	doc.Find(noiseSelector).Remove()

	for _, sel := range contentSelectors {
		text := textOf(doc.Find(sel).First())
		if utf8.RuneCountInString(text) > minContentRunes {
			return text, nil
		}
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return textOf(body), nil
	}
	return textOf(doc.Selection), nil
}

// textOf joins the text nodes under s so adjacent blocks do not run together.
func textOf(s *goquery.Selection) string {
	var sb strings.Builder
	collectText(s, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			sb.WriteString(c.Text())
			sb.WriteByte(' ')
			return
		}
		collectText(c, sb)
	})
}
