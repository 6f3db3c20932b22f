package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"newsletter_digest/internal/domain"
)

type WorkspaceConfig struct {
	DigestsPageID   string
	IdeasDatabaseID string
	Members         []domain.BoardMember
}

// Workspace renders ideas and digests into Notion pages.
type Workspace struct {
	client  *Client
	cfg     WorkspaceConfig
	columns map[string]string
}

func NewWorkspace(client *Client, cfg WorkspaceConfig) *Workspace {
	columns := make(map[string]string, len(cfg.Members))
	for _, m := range cfg.Members {
		columns[m.ID] = m.Column
	}
	return &Workspace{client: client, cfg: cfg, columns: columns}
}

func (w *Workspace) PublishIdea(ctx context.Context, d domain.IdeaDossier) (string, error) {
	page, err := w.client.CreatePage(ctx,
		Parent{DatabaseID: w.cfg.IdeasDatabaseID},
		w.IdeaProperties(d),
		IdeaBlocks(d),
	)
	if err != nil {
		return "", fmt.Errorf("publish idea %q: %w", d.Idea.Name, err)
	}
	return page.URL, nil
}

func (w *Workspace) PublishDigest(ctx context.Context, key domain.WeekKey, payload domain.DigestPayload) (string, error) {
	props := notionapi.Properties{
		"title": notionapi.TitleProperty{Title: Text(DigestTitle(key))},
	}

	page, err := w.client.CreatePage(ctx, Parent{PageID: w.cfg.DigestsPageID}, props, DigestBlocks(payload))
	if err != nil {
		return "", fmt.Errorf("publish digest %s: %w", key, err)
	}
	return page.URL, nil
}

// RepublishDigest replaces the content of an existing digest page.
func (w *Workspace) RepublishDigest(ctx context.Context, docRef string, payload domain.DigestPayload) error {
	pageID, err := PageIDFromURL(docRef)
	if err != nil {
		return err
	}

	deleted, err := w.client.DeleteChildren(ctx, pageID)
	if err != nil {
		return fmt.Errorf("clear digest page: %w", err)
	}
	w.client.logger.Info("cleared digest page", "page_id", pageID, "blocks", deleted)

	if err := w.client.AppendBlocks(ctx, pageID, DigestBlocks(payload)); err != nil {
		return fmt.Errorf("rewrite digest page: %w", err)
	}
	return nil
}

func DigestTitle(key domain.WeekKey) string {
	return fmt.Sprintf("Digest Week %d — %d", key.Week, key.Year)
}

// DigestMarkdown lays the digest payload out as Markdown.
func DigestMarkdown(p domain.DigestPayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Week summary\n\n%s\n\n---\n\n", p.WeekSummary)

	b.WriteString("## Top Insights\n\n")
	for i, in := range p.TopInsights {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, in.Insight)
		fmt.Fprintf(&b, "**Source:** %s\n\n", in.Source)
		if in.DeepDive != "" {
			fmt.Fprintf(&b, "%s\n\n", in.DeepDive)
		}
		if in.AdvisorAngle != "" {
			fmt.Fprintf(&b, "**Advisory angle:** %s\n\n", in.AdvisorAngle)
		}
	}

	if len(p.RecurringThemes) > 0 {
		b.WriteString("---\n\n## Recurring themes\n\n")
		for _, t := range p.RecurringThemes {
			fmt.Fprintf(&b, "### %s\n", t.Theme)
			for _, s := range t.Signals {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			fmt.Fprintf(&b, "\n%s\n\n", t.Thesis)
		}
	}

	fmt.Fprintf(&b, "---\n\n## Advisor playbook\n\n%s\n\n", p.AdvisorPlaybook)

	if len(p.TopIdeas) > 0 {
		b.WriteString("---\n\n## Startup ideas\n\n")
		for _, idea := range p.TopIdeas {
			fmt.Fprintf(&b, "### %s (%s)\n%s\n", idea.Name, idea.ConvictionLevel, idea.OneLiner)
			if idea.QuickTake != "" {
				fmt.Fprintf(&b, "\n%s\n\n", idea.QuickTake)
			}
		}
	}

	b.WriteString("\n---\n\n## Sources analysed this week\n\n")
	for _, s := range p.Sources {
		fmt.Fprintf(&b, "- %s — %s\n", s.Origin, s.Title)
	}

	return b.String()
}

func DigestBlocks(p domain.DigestPayload) []notionapi.Block {
	return Markdown(DigestMarkdown(p))
}

func (w *Workspace) IdeaProperties(d domain.IdeaDossier) notionapi.Properties {
	props := notionapi.Properties{
		"title": notionapi.TitleProperty{Title: Text(Truncate(d.Idea.Name, maxTextLen))},
	}
	if d.Idea.TLDR != "" {
		props["TLDR"] = notionapi.RichTextProperty{RichText: Text(Truncate(d.Idea.TLDR, maxTextLen))}
	}
	if tags := domain.FilterTags(d.Idea.Tags); len(tags) > 0 {
		props["Tags"] = tagProperty(tags)
	}
	if d.SourceLabel != "" {
		props["Source"] = notionapi.RichTextProperty{RichText: Text(Truncate(d.SourceLabel, maxTextLen))}
	}
	if d.WeekLabel != "" {
		props["Semaine"] = notionapi.RichTextProperty{RichText: Text(d.WeekLabel)}
	}
	props["Status"] = notionapi.SelectProperty{Select: notionapi.Option{Name: statusNew}}

	for column, prop := range w.memberProperties(d) {
		props[column] = prop
	}
	return props
}

const statusNew = "Nouveau"

// memberProperties maps each scored board verdict to its member column.
func (w *Workspace) memberProperties(d domain.IdeaDossier) notionapi.Properties {
	props := notionapi.Properties{}
	for _, v := range d.Board.Verdicts {
		column, ok := w.columns[v.MemberID]
		if !ok || v.Score == nil {
			continue
		}
		props[column] = notionapi.NumberProperty{Number: float64(*v.Score)}
	}
	return props
}

// ClassificationProperties is the property patch for a classified page.
func ClassificationProperties(c domain.IdeaClassification) notionapi.Properties {
	props := notionapi.Properties{
		"TLDR":   notionapi.RichTextProperty{RichText: Text(Truncate(c.TLDR, maxTextLen))},
		"Tags":   tagProperty(domain.FilterTags(c.Tags)),
		"Source": notionapi.RichTextProperty{RichText: Text(Truncate(c.Source, maxTextLen))},
		"Status": notionapi.SelectProperty{Select: notionapi.Option{Name: statusNew}},
	}
	if c.Score != nil {
		props["Score"] = notionapi.NumberProperty{Number: float64(*c.Score)}
	}
	return props
}

func tagProperty(tags []string) notionapi.MultiSelectProperty {
	options := make([]notionapi.Option, 0, len(tags))
	for _, t := range tags {
		options = append(options, notionapi.Option{Name: t})
	}
	return notionapi.MultiSelectProperty{MultiSelect: options}
}

// ListIdeaPages reads every page of the ideas database.
func (w *Workspace) ListIdeaPages(ctx context.Context) ([]domain.IdeaPage, error) {
	pages, err := w.client.QueryDatabase(ctx, w.cfg.IdeasDatabaseID)
	if err != nil {
		return nil, fmt.Errorf("list idea pages: %w", err)
	}

	out := make([]domain.IdeaPage, 0, len(pages))
	for _, p := range pages {
		page, err := ideaPage(p)
		if err != nil {
			return nil, err
		}
		out = append(out, page)
	}
	return out, nil
}

// PageText returns the text of the top-level blocks of a page.
func (w *Workspace) PageText(ctx context.Context, pageID string) (string, error) {
	blocks, err := w.client.Children(ctx, pageID)
	if err != nil {
		return "", fmt.Errorf("read page %s: %w", pageID, err)
	}
	return PlainText(blocks), nil
}

// RewriteIdea replaces the body of an idea page with a freshly expanded
// dossier and refreshes the member score columns.
func (w *Workspace) RewriteIdea(ctx context.Context, pageID string, d domain.IdeaDossier) error {
	deleted, err := w.client.DeleteChildren(ctx, pageID)
	if err != nil {
		return fmt.Errorf("clear idea page: %w", err)
	}
	w.client.logger.Info("cleared idea page", "page_id", pageID, "blocks", deleted)

	if err := w.client.AppendBlocks(ctx, pageID, IdeaBlocks(d)); err != nil {
		return fmt.Errorf("rewrite idea page: %w", err)
	}

	if props := w.memberProperties(d); len(props) > 0 {
		if err := w.client.UpdateProperties(ctx, pageID, props); err != nil {
			return fmt.Errorf("update member scores: %w", err)
		}
	}
	return nil
}

func (w *Workspace) ClassifyIdea(ctx context.Context, pageID string, c domain.IdeaClassification) error {
	if err := w.client.UpdateProperties(ctx, pageID, ClassificationProperties(c)); err != nil {
		return fmt.Errorf("classify idea page: %w", err)
	}
	return nil
}

type propertyView struct {
	Type        string     `json:"type"`
	Title       []textView `json:"title"`
	RichText    []textView `json:"rich_text"`
	Number      *float64   `json:"number"`
	MultiSelect []struct {
		Name string `json:"name"`
	} `json:"multi_select"`
}

// ideaPage reads the columns the idea commands care about. Properties are
// read through their JSON form so every property type decodes the same way.
// The title is found by type since its column name is free.
func ideaPage(p notionapi.Page) (domain.IdeaPage, error) {
	raw, err := json.Marshal(p.Properties)
	if err != nil {
		return domain.IdeaPage{}, fmt.Errorf("encode properties of %s: %w", p.ID, err)
	}
	var props map[string]propertyView
	if err := json.Unmarshal(raw, &props); err != nil {
		return domain.IdeaPage{}, fmt.Errorf("decode properties of %s: %w", p.ID, err)
	}

	page := domain.IdeaPage{ID: string(p.ID)}
	for name, prop := range props {
		if prop.Type == "title" {
			page.Title = joinText(prop.Title)
			continue
		}
		switch name {
		case "TLDR":
			page.TLDR = joinText(prop.RichText)
		case "Source":
			page.Source = joinText(prop.RichText)
		case "Score":
			// An empty number column decodes to 0 and counts as unscored.
			page.HasScore = prop.Number != nil && *prop.Number != 0
		case "Tags":
			for _, o := range prop.MultiSelect {
				page.Tags = append(page.Tags, o.Name)
			}
		}
	}
	return page, nil
}

var (
	consensusEmoji = map[string]string{"invest": "✅", "pass": "❌", "no_consensus": "🔍"}
	verdictEmoji   = map[string]string{"invest": "✅", "pass": "❌", "dig_deeper": "🔍"}
	verdictColor   = map[string]string{"invest": "green_background", "pass": "red_background", "dig_deeper": "blue_background"}
	threatEmoji    = map[string]string{"high": "🔴", "medium": "🟡", "low": "🟢"}
)

// IdeaBlocks orders the idea page: score callout, board verdict, member
// opinions, deck with sources, competitive scan.
func IdeaBlocks(d domain.IdeaDossier) []notionapi.Block {
	var blocks []notionapi.Block

	score := d.DisplayScore()
	if d.Idea.TLDR != "" || score != nil {
		var parts []string
		if score != nil {
			parts = append(parts, fmt.Sprintf("%d/10", *score))
		}
		if d.Idea.TLDR != "" {
			parts = append(parts, d.Idea.TLDR)
		}
		blocks = append(blocks,
			Callout("💡", "yellow_background", Text(strings.Join(parts, "  —  "))),
			Divider(),
		)
	}

	if len(d.Board.Verdicts) > 0 {
		blocks = append(blocks, verdictBlocks(d.Board.Synthesis)...)
		blocks = append(blocks, memberBlocks(d.Board.Verdicts)...)
	}

	deck := d.Deck
	if len(d.SourceURLs) > 0 {
		deck += "\n\n---\n\n## Sources\n\n"
		for _, u := range d.SourceURLs {
			deck += "- " + u + "\n"
		}
	}
	blocks = append(blocks, Markdown(deck)...)

	return append(blocks, competitorBlocks(d.Competitors)...)
}

func verdictBlocks(s *domain.BoardSynthesis) []notionapi.Block {
	if s == nil {
		return nil
	}

	emoji, ok := consensusEmoji[s.Consensus]
	if !ok {
		emoji = "❓"
	}
	blocks := []notionapi.Block{
		Divider(),
		Heading(2, fmt.Sprintf("Board verdict — %s %s (%d/10)", emoji, s.Consensus, s.FinalScore)),
	}
	if s.Synthesis != "" {
		blocks = append(blocks, Callout("📋", "purple_background", Text(s.Synthesis)))
	}
	if s.KeyDebatePoint != "" {
		blocks = append(blocks, Paragraph(Bold("Point of friction: "), Text(s.KeyDebatePoint)))
	}
	if len(s.NextSteps) > 0 {
		blocks = append(blocks, Heading(3, "Next steps"))
		for _, step := range s.NextSteps {
			blocks = append(blocks, ToDo(step))
		}
	}
	return blocks
}

func memberBlocks(verdicts []domain.BoardVerdict) []notionapi.Block {
	blocks := []notionapi.Block{Divider(), Heading(2, "Board opinions")}

	for _, v := range verdicts {
		emoji, ok := verdictEmoji[v.Verdict]
		if !ok {
			emoji = "❓"
		}
		color, ok := verdictColor[v.Verdict]
		if !ok {
			color = "gray_background"
		}
		score := "?"
		if v.Score != nil {
			score = fmt.Sprint(int(*v.Score))
		}

		blocks = append(blocks,
			Heading(3, fmt.Sprintf("%s — %s %s (%s/10)", v.MemberName, emoji, v.Verdict, score)),
			Callout(emoji, color, Text("Conviction: "+v.Conviction)),
		)
		if v.ArgumentFor != "" {
			blocks = append(blocks, Paragraph(Bold("For: "), Text(v.ArgumentFor)))
		}
		if v.ArgumentAgainst != "" {
			blocks = append(blocks, Paragraph(Bold("Against: "), Text(v.ArgumentAgainst)))
		}
		if v.KeyQuestion != "" {
			blocks = append(blocks, Paragraph(Bold("Key question: "), Italic(v.KeyQuestion)))
		}
		if v.StartupAlternative != "" {
			blocks = append(blocks, Callout("🚀", "yellow_background", Bold("My startup: "), Text(v.StartupAlternative)))
		}
	}
	return blocks
}

func competitorBlocks(scan domain.CompetitiveScan) []notionapi.Block {
	if len(scan.Competitors) == 0 {
		return nil
	}

	blocks := []notionapi.Block{Divider(), Heading(2, "Competitive landscape")}
	if scan.MarketInsight != "" {
		blocks = append(blocks, Callout("🏟️", "blue_background",
			Bold("Market: "+scan.MarketMaturity+"\n"), Text(scan.MarketInsight)))
	}

	for _, c := range scan.Competitors {
		emoji, ok := threatEmoji[c.ThreatLevel]
		if !ok {
			emoji = "⚪"
		}
		header := fmt.Sprintf("%s %s — %s", emoji, c.Name, c.Type)
		if c.URL != "" {
			header = fmt.Sprintf("%s %s (%s) — %s", emoji, c.Name, c.URL, c.Type)
		}
		blocks = append(blocks, Heading(3, header))

		var body []string
		if c.Description != "" {
			body = append(body, c.Description)
		}
		if c.Funding != "" {
			body = append(body, "Funding: "+c.Funding)
		}
		if c.Differentiation != "" {
			body = append(body, "Our edge: "+c.Differentiation)
		}
		if len(body) > 0 {
			blocks = append(blocks, Paragraph(Text(strings.Join(body, "\n"))))
		}
	}

	if scan.MoatAssessment != "" {
		blocks = append(blocks, Callout("🏰", "green_background", Bold("Moat: "), Text(scan.MoatAssessment)))
	}
	return blocks
}
