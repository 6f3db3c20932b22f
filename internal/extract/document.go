package extract

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"newsletter_digest/internal/classifier"
	"newsletter_digest/internal/domain"
)

const strippedSelector = "script, style, noscript, meta, link, img, svg, picture, source, video, audio, iframe, object, embed"

// readability resolves relative links against the page URL; newsletter HTML has none.
var documentBase = &url.URL{Scheme: "https", Host: "newsletter.invalid"}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "table": true, "section": true, "article": true,
	"blockquote": true, "pre": true, "header": true, "footer": true, "hr": true,
}

type DocumentExtractor struct {
	minChars int
	logger   *slog.Logger
}

func NewDocumentExtractor(minChars int, logger *slog.Logger) *DocumentExtractor {
	return &DocumentExtractor{
		minChars: minChars,
		logger:   logger.With("strategy", "document"),
	}
}

func (e *DocumentExtractor) Extract(_ context.Context, item domain.RawItem, _ classifier.Classification) Result {
	enough := MinChars(e.minChars)
	if !enough(item.HTMLBody) {
		return Result{Content: strings.TrimSpace(item.TextBody)}
	}

	title, readable := e.readable(item.HTMLBody)
	picked := First(enough, strings.TrimSpace(item.TextBody),
		Candidate{Source: "readability", Value: readable},
		Candidate{Source: "text_body", Value: strings.TrimSpace(item.TextBody)},
		Candidate{Source: "stripped_html", Value: stripped(item.HTMLBody)},
	)

	e.logger.Debug("document content selected", "external_id", item.ExternalID, "source", picked.Source)

	return Result{Title: title, Content: picked.Value}
}

func (e *DocumentExtractor) readable(raw string) (string, string) {
	article, err := readability.FromReader(strings.NewReader(raw), documentBase)
	if err != nil || article.Node == nil {
		if err != nil {
			e.logger.Debug("readability failed", "error", err)
		}
		return "", ""
	}
	doc := goquery.NewDocumentFromNode(article.Node)
	return strings.TrimSpace(article.Title()), PlainText(doc.Selection)
}

func stripped(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	return PlainText(doc.Find("body"))
}

// PlainText drops script, style and media elements from sel and flattens the
// rest to trimmed, non-empty lines.
func PlainText(sel *goquery.Selection) string {
	sel.Find(strippedSelector).Remove()

	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}
