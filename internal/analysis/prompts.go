package analysis

import (
	"strings"
	"text/template"

	"newsletter_digest/internal/domain"
)

var funcs = template.FuncMap{
	"join": strings.Join,
	"vocabulary": func() string {
		return strings.Join(domain.Vocabulary, ", ")
	},
}

func mustPrompt(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

var itemPrompt = mustPrompt("item", `You advise pre-seed to series B founders. Analyse the content below.

Source: {{.Origin}}
Type: {{.Type}}
Title: {{.Title}}

Content:
{{.Content}}

Answer with JSON only, using exactly this shape:
{
  "takeaways": ["3 to 5 short, concrete takeaways"],
  "so_what_advisor": "2-3 sentences: what changes for an early-stage advisor",
  "ideas": [
    {
      "name": "short idea name",
      "one_liner": "one sentence opportunity",
      "why_now": "why this is possible now",
      "tldr": "50 words max pitch",
      "score": 7,
      "tags": ["one or more of: {{vocabulary}}"]
    }
  ],
  "signal_strength": "strong|medium|weak",
  "topics": ["topic1", "topic2"]
}
Return an empty ideas list when the content suggests no startup idea.`)

var deckPrompt = mustPrompt("deck", `Write a one-page startup mini-deck in Markdown for the idea below.
Use "## " headings for: Problem, Solution, Why now, Market, Business model, Go-to-market, Risks.
Use "- " bullets, keep each section short.

Idea: {{.Name}}
One-liner: {{.OneLiner}}
Why now: {{.WhyNow}}
Sources: {{.Sources}}`)

var memberPrompt = mustPrompt("member", `You are {{.Member.Name}}, {{.Member.Role}} of an investment board.
Lens: {{.Member.Lens}}
Style: {{.Member.Style}}
Framework: {{.Member.Framework}}

Evaluate this startup idea.
Idea: {{.Idea.Name}}
One-liner: {{.Idea.OneLiner}}
Why now: {{.Idea.WhyNow}}

Source context:
{{.Context}}

Answer with JSON only:
{
  "verdict": "invest|pass|dig_deeper",
  "conviction": "high|medium|low",
  "score": 7,
  "argument_for": "best argument for, 2-3 sentences",
  "argument_against": "best argument against, 2-3 sentences",
  "key_question": "the one question to answer first",
  "startup_alternative": "the company you would build on the same problem, 3-4 sentences"
}`)

var synthesisPrompt = mustPrompt("synthesis", `You chair an investment board. Summarise the debate on "{{.Idea.Name}}" ({{.Idea.OneLiner}}).

Verdicts:
{{range .Verdicts}}
### {{.MemberName}}
- Verdict: {{.Verdict}} (conviction: {{.Conviction}})
- Score: {{if .Score}}{{.Score}}{{else}}?{{end}}/10
- For: {{.ArgumentFor}}
- Against: {{.ArgumentAgainst}}
- Key question: {{.KeyQuestion}}
{{end}}
Answer with JSON only:
{
  "final_score": 7,
  "consensus": "invest|pass|no_consensus",
  "synthesis": "3-4 sentences",
  "key_debate_point": "main point of disagreement",
  "next_steps": ["action 1", "action 2", "action 3"]
}`)

var competitorsPrompt = mustPrompt("competitors", `List 3 to 5 existing competitors for this startup idea.

Idea: {{.Name}}
One-liner: {{.OneLiner}}
Why now: {{.WhyNow}}

Answer with JSON only:
{
  "competitors": [
    {
      "name": "company",
      "url": "https://...",
      "type": "direct|indirect|adjacent",
      "description": "1-2 sentences",
      "funding": "stage or amount raised",
      "threat_level": "high|medium|low",
      "differentiation": "how the idea differs, 1-2 sentences"
    }
  ],
  "market_maturity": "nascent|emerging|growing|mature|saturated",
  "market_insight": "2-3 sentences",
  "moat_assessment": "2-3 sentences"
}`)

var digestPrompt = mustPrompt("digest", `Below are this week's analysed newsletters, videos and podcasts, strongest signals first.
Write the weekly digest for an early-stage advisor.

{{.}}

Answer with JSON only:
{
  "week_summary": "3-5 sentences: the thesis of the week",
  "top_insights": [
    {"insight": "one sentence", "source": "source name", "deep_dive": "4-6 sentences", "advisor_angle": "2-3 specific sentences"}
  ],
  "recurring_themes": [
    {"theme": "name", "signals": ["signal (source)"], "thesis": "3-4 sentences"}
  ],
  "advisor_playbook": "8-12 sentences grouped by situation",
  "top_ideas": [
    {"name": "idea", "one_liner": "one sentence", "sources": ["source"], "conviction_level": "high|medium|low", "quick_take": "2-3 sentences"}
  ]
}`)

var classifyPrompt = mustPrompt("classify", `You screen startup ideas for an early-stage advisor.
Classify the idea page below.

Title: {{.Title}}

Content:
{{.Content}}

Answer with JSON only:
{
  "score": 7,
  "tldr": "pitch in 50 words max",
  "tags": ["2 to 4 of: {{vocabulary}}"],
  "source": "where the idea comes from, or \"{{.DefaultSource}}\" when unknown"
}
The score goes from 0 to 10 and rates the potential of the idea.`)
