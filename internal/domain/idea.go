package domain

import "strings"

type BoardMember struct {
	ID        string
	Name      string
	Column    string
	Role      string
	Lens      string
	Style     string
	Framework string
}

type BoardVerdict struct {
	MemberID           string `json:"-"`
	MemberName         string `json:"-"`
	Verdict            string `json:"verdict"`
	Conviction         string `json:"conviction"`
	Score              *Score `json:"score,omitempty"`
	ArgumentFor        string `json:"argument_for"`
	ArgumentAgainst    string `json:"argument_against"`
	KeyQuestion        string `json:"key_question"`
	StartupAlternative string `json:"startup_alternative"`
}

type BoardSynthesis struct {
	FinalScore     int      `json:"final_score"`
	Consensus      string   `json:"consensus"`
	Synthesis      string   `json:"synthesis"`
	KeyDebatePoint string   `json:"key_debate_point"`
	NextSteps      []string `json:"next_steps"`
}

type Boardroom struct {
	Verdicts  []BoardVerdict
	Synthesis *BoardSynthesis
}

type Competitor struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	Funding         string `json:"funding"`
	ThreatLevel     string `json:"threat_level"`
	Differentiation string `json:"differentiation"`
}

type CompetitiveScan struct {
	Competitors    []Competitor `json:"competitors"`
	MarketMaturity string       `json:"market_maturity"`
	MarketInsight  string       `json:"market_insight"`
	MoatAssessment string       `json:"moat_assessment"`
}

// IdeaDossier is an idea expanded by the follow-up model calls, ready to be
// published as a workspace page.
type IdeaDossier struct {
	Idea        Idea
	Deck        string
	Board       Boardroom
	Competitors CompetitiveScan
	SourceLabel string
	SourceURLs  []string
	WeekLabel   string
}

// DisplayScore prefers the board's final score over the analyst score.
func (d IdeaDossier) DisplayScore() *int {
	if d.Board.Synthesis != nil && d.Board.Synthesis.FinalScore > 0 {
		s := d.Board.Synthesis.FinalScore
		return &s
	}
	if d.Idea.Score != nil {
		s := int(*d.Idea.Score)
		return &s
	}
	return nil
}

// StoredIdea is an idea as persisted with its analysis, together with the
// item it was extracted from.
type StoredIdea struct {
	Idea    Idea
	Origin  string
	Title   string
	RawText string
	URL     *string
}

// SourceLabel names the item an idea came from, as shown on its page.
func SourceLabel(origin, title string) string {
	return origin + " — " + title
}

// IdeaPage is an existing page of the ideas database.
type IdeaPage struct {
	ID       string
	Title    string
	TLDR     string
	Source   string
	HasScore bool
	Tags     []string
}

// NeedsClassification reports whether the page lacks any of score, TLDR or tags.
func (p IdeaPage) NeedsClassification() bool {
	return !p.HasScore || p.TLDR == "" || len(p.Tags) == 0
}

// IdeaClassification is the short profile the model assigns to a page that
// was filled in by hand.
type IdeaClassification struct {
	Score  *Score  `json:"score"`
	TLDR   string  `json:"tldr"`
	Tags   TagList `json:"tags"`
	Source string  `json:"source"`
}

const DefaultIdeaSource = "Newsletter Digest Agent"

// Normalize drops out-of-range scores and unknown tags and fills the source.
func (c *IdeaClassification) Normalize() {
	if c.Score != nil && !c.Score.Valid() {
		c.Score = nil
	}
	c.Tags = FilterTags(c.Tags)
	c.TLDR = strings.TrimSpace(c.TLDR)
	c.Source = strings.TrimSpace(c.Source)
	if c.Source == "" {
		c.Source = DefaultIdeaSource
	}
}
