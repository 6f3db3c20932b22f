package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type SignalStrength string

const (
	SignalStrong SignalStrength = "strong"
	SignalMedium SignalStrength = "medium"
	SignalWeak   SignalStrength = "weak"
)

// ParseSignal maps free model output onto the three tiers. Anything unrecognised is weak.
func ParseSignal(s string) SignalStrength {
	switch SignalStrength(strings.ToLower(strings.TrimSpace(s))) {
	case SignalStrong:
		return SignalStrong
	case SignalMedium:
		return SignalMedium
	default:
		return SignalWeak
	}
}

// Vocabulary is the controlled set of idea category tags.
var Vocabulary = []string{
	"SaaS", "Marketplace", "AI Agency", "AI-Powered Agency",
	"Platform", "Infrastructure", "B2B", "B2C",
	"HealthTech", "EdTech", "Gaming", "FinTech", "SpaceTech", "DeepTech",
}

var vocabularySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Vocabulary))
	for _, t := range Vocabulary {
		m[t] = struct{}{}
	}
	return m
}()

// FilterTags keeps the tags that belong to the vocabulary, in order, without duplicates.
func FilterTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := vocabularySet[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

const (
	MinScore = 0
	MaxScore = 10
)

// Score is an idea score as returned by the model. It accepts JSON numbers and
// numeric strings; anything else decodes to an out-of-range value that
// Normalize discards.
type Score int

const invalidScore Score = -1

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != math.Trunc(f) {
		*s = invalidScore
		return nil
	}
	*s = Score(f)
	return nil
}

func (s Score) Valid() bool {
	return s >= MinScore && s <= MaxScore
}

// TagList decodes either a JSON array of strings or a single string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*t = nil
		} else {
			*t = TagList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		*t = nil
		return nil
	}
	*t = many
	return nil
}

type Idea struct {
	Name     string  `json:"name"`
	OneLiner string  `json:"one_liner"`
	WhyNow   string  `json:"why_now"`
	TLDR     string  `json:"tldr"`
	Score    *Score  `json:"score,omitempty"`
	Tags     TagList `json:"tags"`
}

type AnalysisResult struct {
	ID         int64          `json:"-"`
	ItemID     int64          `json:"-"`
	Takeaways  []string       `json:"takeaways"`
	Advisory   string         `json:"so_what_advisor"`
	Ideas      []Idea         `json:"ideas"`
	Signal     SignalStrength `json:"signal_strength"`
	Topics     []string       `json:"topics"`
	AnalyzedAt time.Time      `json:"-"`
}

// Normalize enforces the persisted invariants: known signal tier, vocabulary
// tags only, scores within [0,10] or absent.
func (r *AnalysisResult) Normalize() {
	r.Signal = ParseSignal(string(r.Signal))
	if r.Takeaways == nil {
		r.Takeaways = []string{}
	}
	if r.Topics == nil {
		r.Topics = []string{}
	}
	if r.Ideas == nil {
		r.Ideas = []Idea{}
	}
	for i := range r.Ideas {
		idea := &r.Ideas[i]
		idea.Tags = FilterTags(idea.Tags)
		if idea.Score != nil && !idea.Score.Valid() {
			idea.Score = nil
		}
	}
}
