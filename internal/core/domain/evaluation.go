package domain

import "time"

// EvalResult records the outcome of answering one evaluation question
// through the retrieval pipeline.
type EvalResult struct {
	// ID is the unique identifier for this row.
	ID string

	// RunID groups all results produced by one evaluation run.
	RunID string

	// Question is the evaluated question text.
	Question string

	// Answer is the retrieval-augmented answer, empty if answering failed.
	Answer string

	// FactualAccuracy is the judge's 0-2 accuracy score.
	// Nil when judging was disabled or failed.
	FactualAccuracy *int

	// Completeness is the judge's 0-2 completeness score.
	// Nil when judging was disabled or failed.
	Completeness *int

	// Notes carries the error text for failed questions, otherwise empty.
	Notes string

	// CreatedAt is when the result was recorded.
	CreatedAt time.Time
}

// EvalRun summarises one evaluation run.
type EvalRun struct {
	// ID is the run identifier.
	ID string

	// QuestionsPath is the questions file the run was driven by.
	QuestionsPath string

	// Answered is the number of questions answered successfully.
	Answered int

	// Failed is the number of questions that produced an error.
	Failed int

	// StartedAt is when the run began.
	StartedAt time.Time
}
