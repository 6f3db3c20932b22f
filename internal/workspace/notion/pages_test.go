package notion

import (
	"context"
	"strings"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter_digest/internal/domain"
)

func TestMarkdown(t *testing.T) {
	blocks := Markdown(strings.Join([]string{
		"# Deck",
		"## Problem",
		"",
		"Users **really** hate this.",
		"- first",
		"* second",
		"1. step",
		"> quoted",
		"---",
		"### Sizing",
	}, "\n"))

	types := make([]string, len(blocks))
	for i, b := range blocks {
		types[i] = string(b.GetType())
	}
	assert.Equal(t, []string{
		"heading_1", "heading_2", "paragraph", "bulleted_list_item", "bulleted_list_item",
		"numbered_list_item", "quote", "divider", "heading_3",
	}, types)

	rt := blocks[2].(*notionapi.ParagraphBlock).Paragraph.RichText
	require.Len(t, rt, 3)
	assert.Equal(t, "Users ", rt[0].Text.Content)
	assert.Equal(t, "really", rt[1].Text.Content)
	assert.True(t, rt[1].Annotations.Bold)
	assert.Equal(t, " hate this.", rt[2].Text.Content)
	assert.Equal(t, "step", blocks[5].(*notionapi.NumberedListItemBlock).NumberedListItem.RichText[0].Text.Content)
}

func TestText_SplitsLongContent(t *testing.T) {
	rt := Text(strings.Repeat("é", 4500))

	require.Len(t, rt, 3)
	assert.Len(t, []rune(rt[0].Text.Content), 2000)
	assert.Len(t, []rune(rt[2].Text.Content), 500)
}

func TestDigestMarkdown(t *testing.T) {
	md := DigestMarkdown(domain.DigestPayload{
		WeekSummary:     "A busy week.",
		TopInsights:     []domain.Insight{{Insight: "Agents", Source: "AI Weekly", AdvisorAngle: "Sell shovels"}},
		RecurringThemes: []domain.Theme{{Theme: "Inference", Signals: []string{"cheaper"}, Thesis: "margins"}},
		TopIdeas:        []domain.ShortlistedIdea{{Name: "AgentOps", ConvictionLevel: "high", OneLiner: "Ops for agents"}},
		Sources:         []domain.SourceRef{{Origin: "AI Weekly", Title: "Issue 12"}},
	})

	assert.Contains(t, md, "## Week summary\n\nA busy week.")
	assert.Contains(t, md, "### 1. Agents\n**Source:** AI Weekly")
	assert.Contains(t, md, "**Advisory angle:** Sell shovels")
	assert.Contains(t, md, "- cheaper")
	assert.Contains(t, md, "### AgentOps (high)")
	assert.Contains(t, md, "- AI Weekly — Issue 12")
	assert.Equal(t, "Digest Week 7 — 2026", DigestTitle(domain.WeekKey{Week: 7, Year: 2026}))
}

func score(v int) *domain.Score {
	s := domain.Score(v)
	return &s
}

func TestIdeaPropertiesAndBlocks(t *testing.T) {
	w := NewWorkspace(nil, WorkspaceConfig{Members: []domain.BoardMember{
		{ID: "steve_jobs", Column: "Steve"},
		{ID: "jdlr", Column: "Jean"},
	}})

	d := domain.IdeaDossier{
		Idea: domain.Idea{
			Name:  "AgentOps",
			TLDR:  "Observability for agents",
			Score: score(6),
			Tags:  domain.TagList{"SaaS", "MadeUpTag"},
		},
		Deck: "## Problem\nAgents fail silently.",
		Board: domain.Boardroom{
			Verdicts: []domain.BoardVerdict{
				{MemberID: "steve_jobs", MemberName: "Steve Jobs", Verdict: "invest", Score: score(8)},
				{MemberID: "jdlr", MemberName: "Jean", Verdict: "pass"},
			},
			Synthesis: &domain.BoardSynthesis{FinalScore: 7, Consensus: "invest", NextSteps: []string{"Talk to 10 teams"}},
		},
		SourceLabel: "AI Weekly",
		SourceURLs:  []string{"https://youtu.be/abc"},
		WeekLabel:   "Semaine 7",
	}

	props := w.IdeaProperties(d)
	assert.Equal(t, notionapi.MultiSelectProperty{MultiSelect: []notionapi.Option{{Name: "SaaS"}}}, props["Tags"])
	assert.Equal(t, notionapi.NumberProperty{Number: 8}, props["Steve"])
	assert.NotContains(t, props, "Jean")
	assert.Equal(t, notionapi.SelectProperty{Select: notionapi.Option{Name: "Nouveau"}}, props["Status"])
	assert.Contains(t, props, "Semaine")

	blocks := IdeaBlocks(d)
	require.NotEmpty(t, blocks)
	callout, ok := blocks[0].(*notionapi.CalloutBlock)
	require.True(t, ok)
	assert.Equal(t, "7/10  —  Observability for agents", callout.Callout.RichText[0].Text.Content)
	assert.Equal(t, "yellow_background", callout.Callout.Color)

	var todo, sources bool
	for _, b := range blocks {
		switch b := b.(type) {
		case *notionapi.ToDoBlock:
			todo = true
			assert.False(t, b.ToDo.Checked)
		case *notionapi.BulletedListItemBlock:
			if b.BulletedListItem.RichText[0].Text.Content == "https://youtu.be/abc" {
				sources = true
			}
		}
	}
	assert.True(t, todo)
	assert.True(t, sources)
}

func TestWorkspace_RepublishDigest(t *testing.T) {
	fake := &fakeNotion{children: []fakeBlock{{id: "old-1"}, {id: "old-2"}, {id: "old-3"}}}
	w := NewWorkspace(newTestClient(t, fake), WorkspaceConfig{DigestsPageID: "parent"})

	err := w.RepublishDigest(context.Background(),
		"https://www.notion.so/Digest-Week-7-2026-0123456789abcdef0123456789abcdef",
		domain.DigestPayload{WeekSummary: "rewritten"})

	require.NoError(t, err)
	assert.Equal(t, []string{"old-1", "old-2", "old-3"}, fake.deleted)
	require.Len(t, fake.appended, 1)
	assert.Equal(t, "heading_2", fake.appended[0][0]["type"])
	assert.Contains(t, fake.requests, "PATCH /blocks/01234567-89ab-cdef-0123-456789abcdef/children")
}

func TestWorkspace_PublishDigest(t *testing.T) {
	fake := &fakeNotion{}
	w := NewWorkspace(newTestClient(t, fake), WorkspaceConfig{DigestsPageID: "digests"})

	url, err := w.PublishDigest(context.Background(), domain.WeekKey{Week: 7, Year: 2026}, domain.DigestPayload{WeekSummary: "s"})

	require.NoError(t, err)
	assert.Contains(t, url, "notion.so")
	assert.Equal(t, "digests", fake.created["parent"].(map[string]any)["page_id"])
	assert.Contains(t, fake.created["properties"], "title")
}

func TestWorkspace_RewriteIdea(t *testing.T) {
	fake := &fakeNotion{children: []fakeBlock{{id: "old-1"}, {id: "old-2", ghost: true}}}
	w := NewWorkspace(newTestClient(t, fake), WorkspaceConfig{Members: []domain.BoardMember{
		{ID: "steve_jobs", Column: "Steve"},
		{ID: "ann", Column: "Ann"},
	}})

	err := w.RewriteIdea(context.Background(), "idea-page", domain.IdeaDossier{
		Idea: domain.Idea{Name: "AgentOps", TLDR: "Observability for agents"},
		Deck: "## Problem\nAgents fail silently.",
		Board: domain.Boardroom{Verdicts: []domain.BoardVerdict{
			{MemberID: "steve_jobs", MemberName: "Steve Jobs", Verdict: "invest", Score: score(8)},
			{MemberID: "ann", MemberName: "Ann", Verdict: "pass", Score: score(3)},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"old-1"}, fake.deleted)
	require.Len(t, fake.appended, 1)
	assert.Equal(t, "callout", fake.appended[0][0]["type"])

	props := fake.updated["idea-page"]
	require.Len(t, props, 2)
	assert.Equal(t, float64(8), props["Steve"].(map[string]any)["number"])
	assert.Equal(t, float64(3), props["Ann"].(map[string]any)["number"])
}

func TestWorkspace_RewriteIdeaWithoutScoresSkipsPropertyUpdate(t *testing.T) {
	fake := &fakeNotion{}
	w := NewWorkspace(newTestClient(t, fake), WorkspaceConfig{})

	err := w.RewriteIdea(context.Background(), "idea-page", domain.IdeaDossier{Deck: "plain deck"})

	require.NoError(t, err)
	assert.Empty(t, fake.updated)
	assert.NotContains(t, fake.requests, "PATCH /pages/idea-page")
}

func TestWorkspace_ListIdeaPages(t *testing.T) {
	title := func(s string) map[string]any {
		return map[string]any{"id": "title", "type": "title", "title": []any{
			map[string]any{"type": "text", "text": map[string]any{"content": s}, "plain_text": s},
		}}
	}
	richText := func(id, s string) map[string]any {
		rt := []any{}
		if s != "" {
			rt = append(rt, map[string]any{"type": "text", "text": map[string]any{"content": s}, "plain_text": s})
		}
		return map[string]any{"id": id, "type": "rich_text", "rich_text": rt}
	}
	fake := &fakeNotion{pages: []map[string]any{
		pageJSON("p1", "", map[string]any{
			"Name":   title("AgentOps"),
			"TLDR":   richText("t1", "Observability for agents"),
			"Source": richText("s1", "AI Weekly — Issue 12"),
			"Score":  map[string]any{"id": "sc", "type": "number", "number": 7},
			"Tags": map[string]any{"id": "tg", "type": "multi_select", "multi_select": []any{
				map[string]any{"name": "SaaS"}, map[string]any{"name": "B2B"},
			}},
		}),
		pageJSON("p2", "", map[string]any{
			"Idée":  title("Hand written"),
			"TLDR":  richText("t1", ""),
			"Score": map[string]any{"id": "sc", "type": "number", "number": nil},
		}),
		pageJSON("p3", "", map[string]any{"Name": title("Third")}),
	}}
	w := NewWorkspace(newTestClient(t, fake), WorkspaceConfig{IdeasDatabaseID: "ideas-db"})

	pages, err := w.ListIdeaPages(context.Background())

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, domain.IdeaPage{
		ID:       "p1",
		Title:    "AgentOps",
		TLDR:     "Observability for agents",
		Source:   "AI Weekly — Issue 12",
		HasScore: true,
		Tags:     []string{"SaaS", "B2B"},
	}, pages[0])
	assert.Equal(t, "Hand written", pages[1].Title)
	assert.True(t, pages[1].NeedsClassification())
	assert.Equal(t, "Third", pages[2].Title)
	assert.Contains(t, fake.requests, "POST /databases/ideas-db/query")
}

func TestWorkspace_PageText(t *testing.T) {
	fake := &fakeNotion{children: []fakeBlock{{id: "b1", text: "An idea written by hand"}, {id: "b2", text: "with two lines"}}}
	w := NewWorkspace(newTestClient(t, fake), WorkspaceConfig{})

	text, err := w.PageText(context.Background(), "idea-page")

	require.NoError(t, err)
	assert.Equal(t, "An idea written by hand\nwith two lines", text)
}

func TestWorkspace_ClassifyIdea(t *testing.T) {
	fake := &fakeNotion{}
	w := NewWorkspace(newTestClient(t, fake), WorkspaceConfig{})

	err := w.ClassifyIdea(context.Background(), "idea-page", domain.IdeaClassification{
		Score:  score(6),
		TLDR:   "Short pitch",
		Tags:   domain.TagList{"SaaS", "Unknown"},
		Source: "Newsletter Digest Agent",
	})

	require.NoError(t, err)
	props := fake.updated["idea-page"]
	assert.Equal(t, float64(6), props["Score"].(map[string]any)["number"])
	assert.Equal(t, "Nouveau", props["Status"].(map[string]any)["select"].(map[string]any)["name"])
	tags := props["Tags"].(map[string]any)["multi_select"].([]any)
	require.Len(t, tags, 1)
	assert.Equal(t, "SaaS", tags[0].(map[string]any)["name"])
	assert.Contains(t, props, "TLDR")
	assert.Contains(t, props, "Source")
}

func TestClassificationProperties_WithoutScore(t *testing.T) {
	props := ClassificationProperties(domain.IdeaClassification{TLDR: "t", Source: "s"})

	assert.NotContains(t, props, "Score")
	assert.Equal(t, notionapi.MultiSelectProperty{MultiSelect: []notionapi.Option{}}, props["Tags"])
}
