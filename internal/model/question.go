package model

import (
	"github.com/google/uuid"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Difficulty tiers a question by expected hardness.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single multiple-choice question. Immutable once loaded
// into a test session.
type Question struct {
	ID           uuid.UUID  `json:"id"`
	Subject      string     `json:"subject"`
	Prompt       string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correct_answer"`
	Difficulty   Difficulty `json:"difficulty"`
}

// Valid reports whether the question is well-formed: exactly four
// options and a correct index referencing one of them.
func (q Question) Valid() bool {
	return len(q.Options) == OptionCount &&
		q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// CreateQuestionRequest is the payload for adding a question to the bank.
type CreateQuestionRequest struct {
	Subject    string   `json:"subject" binding:"required,min=2,max=100"`
	Prompt     string   `json:"question" binding:"required,min=1,max=2000"`
	Options    []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	Correct    int      `json:"correct_answer" binding:"min=0,max=3"`
	Difficulty string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
}
