package domain

import "time"

// RunInfo identifies one pipeline run.
type RunInfo struct {
	// ID is a unique run identifier.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Backend names the classification backend selected for the run.
	Backend string
}

// RunSummary describes a stored run, as listed by the results store.
type RunSummary struct {
	RunInfo

	// Records is the number of classified records stored for the run.
	Records int

	// Suitable is the number of records with a positive verdict.
	Suitable int
}

// CrawlReport summarises the stage counts of a completed run.
type CrawlReport struct {
	Run RunInfo

	// Discovered is the number of raw search hits across all queries.
	Discovered int

	// Unique is the number of repositories left after deduplication.
	Unique int

	// Filtered is the number of repositories that survived keyword filtering.
	Filtered int

	// Records are the classified repositories, in ranked order.
	Records []ClassifiedRecord

	// CheckpointFailures counts batch checkpoints that could not be written.
	CheckpointFailures int
}
