package domain

import (
	"errors"
	"fmt"
	"time"
)

// WeekKey is the natural key of a digest: ISO-8601 week number and ISO year.
type WeekKey struct {
	Week int
	Year int
}

func WeekOf(t time.Time) WeekKey {
	year, week := t.ISOWeek()
	return WeekKey{Week: week, Year: year}
}

func (k WeekKey) String() string {
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}

// Monday returns the first day of the week in loc.
func (k WeekKey) Monday(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	// January 4th always falls in ISO week 1.
	jan4 := time.Date(k.Year, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(k.Week-1)*7)
}

type Insight struct {
	Insight      string `json:"insight"`
	Source       string `json:"source"`
	DeepDive     string `json:"deep_dive"`
	AdvisorAngle string `json:"advisor_angle"`
}

type Theme struct {
	Theme   string   `json:"theme"`
	Signals []string `json:"signals"`
	Thesis  string   `json:"thesis"`
}

type ShortlistedIdea struct {
	Name            string   `json:"name"`
	OneLiner        string   `json:"one_liner"`
	Sources         []string `json:"sources"`
	ConvictionLevel string   `json:"conviction_level"`
	QuickTake       string   `json:"quick_take"`
}

// SourceRef names one item that fed a digest.
type SourceRef struct {
	Origin string `json:"origin"`
	Title  string `json:"title"`
}

type DigestPayload struct {
	WeekSummary     string            `json:"week_summary"`
	TopInsights     []Insight         `json:"top_insights"`
	RecurringThemes []Theme           `json:"recurring_themes"`
	AdvisorPlaybook string            `json:"advisor_playbook"`
	TopIdeas        []ShortlistedIdea `json:"top_ideas"`
	Sources         []SourceRef       `json:"sources,omitempty"`
}

type DigestRecord struct {
	ID        int64
	Key       WeekKey
	Payload   DigestPayload
	DocRef    string
	SentAt    *time.Time
	CreatedAt time.Time
}

// WindowEntry pairs an item with its analysis. Analysis is nil for items that
// were persisted without one.
type WindowEntry struct {
	Item     InboundItem
	Analysis *AnalysisResult
}

var ErrNotFound = errors.New("not found")
