package model

import (
	"encoding/json"
	"time"
)

// SubjectScore is the derived score for one subject in a session.
// Computed fresh at submission time, never stored in the session.
type SubjectScore struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// TestResult is one persisted submission row. A session produces one
// result per subject present in its question set.
type TestResult struct {
	ID       int       `json:"id,omitempty"`
	Email    string    `json:"email"`
	TestTime time.Time `json:"test_time"`
	Subject  string    `json:"subject"`
	// Questions and Answers are JSON snapshots of exactly the
	// subject's slice of the session, preserving original data.
	Questions       json.RawMessage `json:"questions"`
	Answers         json.RawMessage `json:"answers"`
	Score           int             `json:"score"`
	DurationSeconds int             `json:"duration_seconds"`
}
