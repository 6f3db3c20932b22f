package domain

import "time"

type ItemFailure struct {
	ExternalID string
	Name       string
	Err        string
}

// IngestStats holds statistics about one ingest run.
type IngestStats struct {
	RunID          string
	SourceID       string
	Listed         int
	Skipped        int
	Persisted      int
	Analyzed       int
	Empty          int
	IdeasPublished int
	Published      int
	Failures       []ItemFailure
	Duration       time.Duration
}

type DigestStatus string

const (
	DigestCompiled DigestStatus = "compiled"
	DigestExists   DigestStatus = "exists"
	DigestEmpty    DigestStatus = "empty"
)

type DigestOutcome struct {
	Key     WeekKey
	Status  DigestStatus
	Entries int
	DocRef  string
}

// IdeaRunStats holds statistics about one pass over the ideas database.
type IdeaRunStats struct {
	Pages     int
	Planned   int
	FromStore int
	Updated   int
	Skipped   int
	Failures  []ItemFailure
	Duration  time.Duration
}
