// Package analysis holds the language-model call sites of the pipeline and the
// placeholder results substituted when a response cannot be decoded.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsletter_digest/internal/domain"
	"newsletter_digest/internal/gateway"
	"newsletter_digest/internal/pacing"
)

// Generator is the subset of *gateway.Gateway the call sites use.
type Generator interface {
	Text(ctx context.Context, prompt string) (string, error)
	JSON(ctx context.Context, prompt string, out any) error
}

type Config struct {
	MaxContentChars    int
	MemberContextChars int
	Delay              time.Duration
}

type ItemInput struct {
	Title   string
	Origin  string
	Type    domain.ContentType
	Content string
}

// IdeaSource describes where an idea came from.
type IdeaSource struct {
	Label     string
	URLs      []string
	Content   string
	WeekLabel string
}

type Analyzer struct {
	gen     Generator
	cfg     Config
	members []domain.BoardMember
	sleep   func(ctx context.Context, d time.Duration) error
	logger  *slog.Logger
}

func New(gen Generator, cfg Config, members []domain.BoardMember, logger *slog.Logger) *Analyzer {
	if members == nil {
		members = Board
	}
	return &Analyzer{
		gen:     gen,
		cfg:     cfg,
		members: members,
		sleep:   pacing.Sleep,
		logger:  logger.With("component", "analysis"),
	}
}

// AnalyzeItem returns the structured analysis of one item. A malformed
// response yields a placeholder result; other gateway failures are returned.
func (a *Analyzer) AnalyzeItem(ctx context.Context, in ItemInput) (*domain.AnalysisResult, error) {
	in.Content = truncate(in.Content, a.cfg.MaxContentChars)
	prompt, err := render(itemPrompt, in)
	if err != nil {
		return nil, fmt.Errorf("render item prompt: %w", err)
	}

	var result domain.AnalysisResult
	if err := a.gen.JSON(ctx, prompt, &result); err != nil {
		if !errors.Is(err, gateway.ErrMalformedResponse) {
			return nil, err
		}
		a.logger.Warn("malformed analysis response", "title", in.Title, "error", err)
		return PlaceholderAnalysis(err), nil
	}

	result.Normalize()
	return &result, nil
}

func PlaceholderAnalysis(err error) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Takeaways: []string{fmt.Sprintf("[analysis error: %v]", err)},
		Ideas:     []domain.Idea{},
		Signal:    domain.SignalWeak,
		Topics:    []string{},
	}
}

// ExpandIdea runs the board debate, the competitive scan and the deck
// generation for one idea, one call at a time. Only context cancellation is
// returned as an error; every other failure degrades to a placeholder.
func (a *Analyzer) ExpandIdea(ctx context.Context, idea domain.Idea, src IdeaSource) (domain.IdeaDossier, error) {
	dossier := domain.IdeaDossier{
		Idea:        idea,
		SourceLabel: src.Label,
		SourceURLs:  src.URLs,
		WeekLabel:   src.WeekLabel,
	}

	board, err := a.Boardroom(ctx, idea, src.Content)
	if err != nil {
		return dossier, err
	}
	dossier.Board = board

	if err := a.sleep(ctx, a.cfg.Delay); err != nil {
		return dossier, err
	}
	dossier.Competitors = a.Competitors(ctx, idea)

	if err := a.sleep(ctx, a.cfg.Delay); err != nil {
		return dossier, err
	}
	dossier.Deck = a.Deck(ctx, idea, src.Label)

	return dossier, nil
}

// classifyContentChars bounds the page text sent with a classification prompt.
const classifyContentChars = 2000

// ClassifyIdea scores, summarises and tags an idea page written outside the
// pipeline. Any failure is returned; the caller leaves the page untouched.
func (a *Analyzer) ClassifyIdea(ctx context.Context, title, content string) (*domain.IdeaClassification, error) {
	prompt, err := render(classifyPrompt, struct {
		Title         string
		Content       string
		DefaultSource string
	}{title, truncate(content, classifyContentChars), domain.DefaultIdeaSource})
	if err != nil {
		return nil, fmt.Errorf("render classify prompt: %w", err)
	}

	var c domain.IdeaClassification
	if err := a.gen.JSON(ctx, prompt, &c); err != nil {
		return nil, fmt.Errorf("classify idea %q: %w", title, err)
	}
	c.Normalize()
	return &c, nil
}

func (a *Analyzer) Deck(ctx context.Context, idea domain.Idea, sources string) string {
	prompt, err := render(deckPrompt, struct {
		domain.Idea
		Sources string
	}{idea, sources})
	if err == nil {
		var text string
		if text, err = a.gen.Text(ctx, prompt); err == nil {
			return strings.TrimSpace(text)
		}
	}
	a.logger.Warn("deck generation failed", "idea", idea.Name, "error", err)
	return fmt.Sprintf("[deck generation error: %v]", err)
}

// Boardroom asks every member for a verdict, then synthesises the surviving
// verdicts. Members whose call fails are skipped.
func (a *Analyzer) Boardroom(ctx context.Context, idea domain.Idea, sourceContext string) (domain.Boardroom, error) {
	var board domain.Boardroom
	sourceContext = truncate(sourceContext, a.cfg.MemberContextChars)

	for i, m := range a.members {
		if i > 0 {
			if err := a.sleep(ctx, a.cfg.Delay); err != nil {
				return board, err
			}
		}
		v, err := a.verdict(ctx, m, idea, sourceContext)
		if err != nil {
			a.logger.Warn("board member verdict failed", "member", m.ID, "idea", idea.Name, "error", err)
			continue
		}
		board.Verdicts = append(board.Verdicts, v)
	}

	if len(board.Verdicts) == 0 {
		return board, nil
	}

	if err := a.sleep(ctx, a.cfg.Delay); err != nil {
		return board, err
	}
	synthesis := a.synthesize(ctx, idea, board.Verdicts)
	board.Synthesis = &synthesis
	return board, nil
}

func (a *Analyzer) verdict(ctx context.Context, m domain.BoardMember, idea domain.Idea, sourceContext string) (domain.BoardVerdict, error) {
	prompt, err := render(memberPrompt, struct {
		Member  domain.BoardMember
		Idea    domain.Idea
		Context string
	}{m, idea, sourceContext})
	if err != nil {
		return domain.BoardVerdict{}, err
	}

	var v domain.BoardVerdict
	if err := a.gen.JSON(ctx, prompt, &v); err != nil {
		return domain.BoardVerdict{}, err
	}
	if v.Score != nil && !v.Score.Valid() {
		v.Score = nil
	}
	v.MemberID = m.ID
	v.MemberName = m.Name
	return v, nil
}

func (a *Analyzer) synthesize(ctx context.Context, idea domain.Idea, verdicts []domain.BoardVerdict) domain.BoardSynthesis {
	prompt, err := render(synthesisPrompt, struct {
		Idea     domain.Idea
		Verdicts []domain.BoardVerdict
	}{idea, verdicts})
	if err == nil {
		var s domain.BoardSynthesis
		if err = a.gen.JSON(ctx, prompt, &s); err == nil {
			s.FinalScore = clamp(s.FinalScore, domain.MinScore, domain.MaxScore)
			return s
		}
	}
	a.logger.Warn("board synthesis failed", "idea", idea.Name, "error", err)
	return domain.BoardSynthesis{
		FinalScore: 0,
		Consensus:  "no_consensus",
		Synthesis:  fmt.Sprintf("[synthesis error: %v]", err),
		NextSteps:  []string{},
	}
}

func (a *Analyzer) Competitors(ctx context.Context, idea domain.Idea) domain.CompetitiveScan {
	prompt, err := render(competitorsPrompt, idea)
	if err == nil {
		var scan domain.CompetitiveScan
		if err = a.gen.JSON(ctx, prompt, &scan); err == nil {
			return scan
		}
	}
	a.logger.Warn("competitive scan failed", "idea", idea.Name, "error", err)
	return domain.CompetitiveScan{
		Competitors:    []domain.Competitor{},
		MarketMaturity: "unknown",
		MarketInsight:  fmt.Sprintf("[competitive analysis error: %v]", err),
	}
}

// SynthesizeDigest makes the single cross-item call of a digest run.
// A malformed response yields a placeholder payload; other failures are returned.
func (a *Analyzer) SynthesizeDigest(ctx context.Context, entries []domain.WindowEntry) (*domain.DigestPayload, error) {
	prompt, err := render(digestPrompt, FormatWindow(entries))
	if err != nil {
		return nil, fmt.Errorf("render digest prompt: %w", err)
	}

	var payload domain.DigestPayload
	if err := a.gen.JSON(ctx, prompt, &payload); err != nil {
		if !errors.Is(err, gateway.ErrMalformedResponse) {
			return nil, err
		}
		a.logger.Warn("malformed digest response", "entries", len(entries), "error", err)
		return PlaceholderDigest(err), nil
	}
	return &payload, nil
}

func PlaceholderDigest(err error) *domain.DigestPayload {
	return &domain.DigestPayload{
		WeekSummary:     fmt.Sprintf("[digest error: %v]", err),
		TopInsights:     []domain.Insight{},
		RecurringThemes: []domain.Theme{},
		TopIdeas:        []domain.ShortlistedIdea{},
	}
}

// FormatWindow renders window entries as the text block fed to the digest prompt.
func FormatWindow(entries []domain.WindowEntry) string {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "--- Item %d ---\n", i+1)
		fmt.Fprintf(&b, "Source: %s\nTitle: %s\nType: %s\n", e.Item.Origin, e.Item.Title, e.Item.ContentType)
		if e.Item.URL != nil {
			fmt.Fprintf(&b, "URL: %s\n", *e.Item.URL)
		}
		if e.Analysis == nil {
			b.WriteString("Signal: none (not analysed)\n\n")
			continue
		}
		fmt.Fprintf(&b, "Signal: %s\n", e.Analysis.Signal)
		if len(e.Analysis.Takeaways) > 0 {
			b.WriteString("Takeaways:\n")
			for _, t := range e.Analysis.Takeaways {
				fmt.Fprintf(&b, "- %s\n", t)
			}
		}
		if e.Analysis.Advisory != "" {
			fmt.Fprintf(&b, "Advisory: %s\n", e.Analysis.Advisory)
		}
		for _, idea := range e.Analysis.Ideas {
			fmt.Fprintf(&b, "Idea: %s: %s\n", idea.Name, idea.OneLiner)
		}
		if len(e.Analysis.Topics) > 0 {
			fmt.Fprintf(&b, "Topics: %s\n", strings.Join(e.Analysis.Topics, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
