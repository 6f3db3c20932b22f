package analysis

import "newsletter_digest/internal/domain"

// Board is the default four-member investment board. Column names match the
// score properties of the ideas database.
var Board = []domain.BoardMember{
	{
		ID:        "steve_jobs",
		Name:      "Steve Jobs",
		Column:    "Steve",
		Role:      "Chief Product Officer",
		Lens:      "Product, UX, simplicity",
		Style:     "Blunt, obsessed with the end-user experience, rejects anything that is not insanely great.",
		Framework: "Is the product ten times better? Can it be explained in one sentence? Would people love it, not just use it?",
	},
	{
		ID:        "ann_miura_ko",
		Name:      "Ann Miura-Ko",
		Column:    "Ann",
		Role:      "Contrarian-in-Chief",
		Lens:      "Thunder lizards, hidden potential, contrarian bets",
		Style:     "Looks for ideas that seem small or strange today and could dominate a market tomorrow.",
		Framework: "What secret does the founder know? Is there a non-obvious wedge? Can it become a category leader?",
	},
	{
		ID:        "ben_horowitz",
		Name:      "Ben Horowitz",
		Column:    "Ben",
		Role:      "Chief Reality Officer",
		Lens:      "Execution, hard things, scaling",
		Style:     "Pragmatic, focused on what breaks when the company grows and on the quality of the team.",
		Framework: "What is the hardest operational problem? Who can execute it? What does the path to 100 people look like?",
	},
	{
		ID:        "jdlr",
		Name:      "Jean de La Rochebrochard",
		Column:    "Jean",
		Role:      "Chief Pattern Matcher",
		Lens:      "Founders, timing, market",
		Style:     "Fast pattern matching on founder-market fit and timing, thinks in terms of the European ecosystem.",
		Framework: "Why this team? Why now? Is the market big enough to return the fund?",
	},
}
