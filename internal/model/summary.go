package model

import "time"

// BatchSummary captures metrics from a single screening run.
type BatchSummary struct {
	FilePath         string
	FileSHA256       string
	BatchID          string
	ProfilesRead     int64
	ProfilesRejected int64
	RowsWritten      int64
	EligibleByScheme map[string]int64
	DurationEvaluate time.Duration
	DurationFinalize time.Duration
	DurationTotal    time.Duration
	AlreadyScreened  bool
}
