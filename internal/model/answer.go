package model

import "github.com/google/uuid"

// AnswerRecord tracks a user's interaction with one question during an
// active test session. One record exists per selected question, in the
// same order as the session's question sequence.
type AnswerRecord struct {
	QuestionID uuid.UUID `json:"question_id"`
	// Selected is the chosen option index, nil while unanswered.
	Selected     *int `json:"selected"`
	TimeSpentSec int  `json:"time_spent_seconds"`
	Marked       bool `json:"marked_for_review"`
}

// Answered reports whether an option has been selected.
func (a AnswerRecord) Answered() bool {
	return a.Selected != nil
}
