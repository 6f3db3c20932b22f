package notion

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jomei/notionapi"
)

// maxTextLen is the Notion limit for a single rich text object.
const maxTextLen = 2000

// Text returns plain rich text, split into chunks Notion accepts.
func Text(s string) []notionapi.RichText {
	return styled(s, nil)
}

func Bold(s string) []notionapi.RichText {
	return styled(s, &notionapi.Annotations{Bold: true})
}

func Italic(s string) []notionapi.RichText {
	return styled(s, &notionapi.Annotations{Italic: true})
}

func styled(s string, a *notionapi.Annotations) []notionapi.RichText {
	var out []notionapi.RichText
	for _, chunk := range chunks(s, maxTextLen) {
		out = append(out, notionapi.RichText{
			Type:        "text",
			Text:        &notionapi.Text{Content: chunk},
			Annotations: a,
		})
	}
	return out
}

func basic(kind string) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: "block", Type: notionapi.BlockType(kind)}
}

func Paragraph(rt ...[]notionapi.RichText) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: basic("paragraph"),
		Paragraph:  notionapi.Paragraph{RichText: concat(rt)},
	}
}

func Heading(level int, s string) notionapi.Block {
	h := notionapi.Heading{RichText: Text(s)}
	switch level {
	case 1:
		return &notionapi.Heading1Block{BasicBlock: basic("heading_1"), Heading1: h}
	case 2:
		return &notionapi.Heading2Block{BasicBlock: basic("heading_2"), Heading2: h}
	default:
		return &notionapi.Heading3Block{BasicBlock: basic("heading_3"), Heading3: h}
	}
}

func Bullet(rt ...[]notionapi.RichText) notionapi.Block {
	return &notionapi.BulletedListItemBlock{
		BasicBlock:       basic("bulleted_list_item"),
		BulletedListItem: notionapi.ListItem{RichText: concat(rt)},
	}
}

func Numbered(rt ...[]notionapi.RichText) notionapi.Block {
	return &notionapi.NumberedListItemBlock{
		BasicBlock:       basic("numbered_list_item"),
		NumberedListItem: notionapi.ListItem{RichText: concat(rt)},
	}
}

func Quote(rt ...[]notionapi.RichText) notionapi.Block {
	return &notionapi.QuoteBlock{
		BasicBlock: basic("quote"),
		Quote:      notionapi.Quote{RichText: concat(rt)},
	}
}

func Callout(emoji, color string, rt ...[]notionapi.RichText) notionapi.Block {
	icon := notionapi.Emoji(emoji)
	return &notionapi.CalloutBlock{
		BasicBlock: basic("callout"),
		Callout: notionapi.Callout{
			RichText: concat(rt),
			Icon:     &notionapi.Icon{Type: "emoji", Emoji: &icon},
			Color:    color,
		},
	}
}

func ToDo(s string) notionapi.Block {
	return &notionapi.ToDoBlock{
		BasicBlock: basic("to_do"),
		ToDo:       notionapi.ToDo{RichText: Text(s)},
	}
}

func Divider() notionapi.Block {
	return &notionapi.DividerBlock{BasicBlock: basic("divider"), Divider: notionapi.Divider{}}
}

var (
	numberedPrefix = regexp.MustCompile(`^\d+[.)]\s+`)
	boldSpan       = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Markdown converts the simple Markdown produced by the model into blocks:
// headings, bullets, numbered items, quotes, dividers and paragraphs with
// **bold** spans. Blank lines are dropped.
func Markdown(md string) []notionapi.Block {
	var blocks []notionapi.Block
	for _, line := range strings.Split(md, "\n") {
		s := strings.TrimSpace(line)
		switch {
		case s == "":
		case s == "---" || s == "***":
			blocks = append(blocks, Divider())
		case strings.HasPrefix(s, "### "):
			blocks = append(blocks, Heading(3, stripBold(s[4:])))
		case strings.HasPrefix(s, "## "):
			blocks = append(blocks, Heading(2, stripBold(s[3:])))
		case strings.HasPrefix(s, "# "):
			blocks = append(blocks, Heading(1, stripBold(s[2:])))
		case strings.HasPrefix(s, "- "), strings.HasPrefix(s, "* "), strings.HasPrefix(s, "• "):
			_, rest, _ := strings.Cut(s, " ")
			blocks = append(blocks, Bullet(Inline(rest)))
		case numberedPrefix.MatchString(s):
			blocks = append(blocks, Numbered(Inline(numberedPrefix.ReplaceAllString(s, ""))))
		case strings.HasPrefix(s, "> "):
			blocks = append(blocks, Quote(Inline(s[2:])))
		default:
			blocks = append(blocks, Paragraph(Inline(s)))
		}
	}
	return blocks
}

// Inline splits text on **bold** spans.
func Inline(s string) []notionapi.RichText {
	var out []notionapi.RichText
	last := 0
	for _, m := range boldSpan.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			out = append(out, Text(s[last:m[0]])...)
		}
		out = append(out, Bold(s[m[2]:m[3]])...)
		last = m[1]
	}
	if last < len(s) {
		out = append(out, Text(s[last:])...)
	}
	return out
}

func stripBold(s string) string {
	return boldSpan.ReplaceAllString(s, "$1")
}

func concat(parts [][]notionapi.RichText) []notionapi.RichText {
	out := []notionapi.RichText{}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// chunks splits s into pieces of at most n runes.
func chunks(s string, n int) []string {
	if utf8.RuneCountInString(s) <= n {
		return []string{s}
	}
	var out []string
	runes := []rune(s)
	for len(runes) > n {
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// PlainText joins the text of the given blocks, one line per block. Blocks
// without rich text (dividers, images) are skipped.
func PlainText(blocks []notionapi.Block) string {
	var lines []string
	for _, b := range blocks {
		if line := blockText(b); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

type textView struct {
	PlainText string `json:"plain_text"`
	Text      *struct {
		Content string `json:"content"`
	} `json:"text"`
}

func (t textView) String() string {
	if t.PlainText != "" {
		return t.PlainText
	}
	if t.Text != nil {
		return t.Text.Content
	}
	return ""
}

func joinText(rt []textView) string {
	var b strings.Builder
	for _, t := range rt {
		b.WriteString(t.String())
	}
	return strings.TrimSpace(b.String())
}

// blockText reads the rich text of any block type through its JSON form,
// where the payload sits under a key named after the type.
func blockText(b notionapi.Block) string {
	raw, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	var body struct {
		RichText []textView `json:"rich_text"`
	}
	if err := json.Unmarshal(fields[string(b.GetType())], &body); err != nil {
		return ""
	}
	return joinText(body.RichText)
}
