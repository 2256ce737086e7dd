// Package session implements the in-memory test-taking core: question
// selection with fallback, the per-user session state machine, subject
// scoring, and result submission. It performs no I/O of its own beyond
// the injected QuestionSource and ResultStore capabilities, and it is
// strictly single-writer: callers serialize access per session.
package session

import (
	"time"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/google/uuid"
)

// Session is one user's active (or just-ended) test attempt. Questions
// and Answers are parallel sequences: same length, same order, with
// Answers[i].QuestionID == Questions[i].ID at all times. The sequences
// are fixed at Start; only answer-record fields, the cursor and the
// remaining-time counter mutate afterwards.
//
// The zero value is an inactive, empty session. An ended session keeps
// its questions, answers and cursor for post-mortem inspection.
type Session struct {
	Questions    []model.Question
	Answers      []model.AnswerRecord
	Current      int
	RemainingSec int
	StartedAt    time.Time

	active bool
}

// IsActive reports whether the session accepts mutations.
func (s *Session) IsActive() bool {
	return s.active
}

// End transitions the session to inactive. Questions, answers and the
// cursor are left untouched. Safe to call repeatedly.
func (s *Session) End() {
	s.active = false
}

// SelectAnswer records the chosen option for the given question. The
// option index is validated against the question's option list; an
// unknown question id is a silent no-op.
func (s *Session) SelectAnswer(questionID uuid.UUID, option int) error {
	if !s.active {
		return ErrNotActive
	}
	for i := range s.Answers {
		if s.Answers[i].QuestionID != questionID {
			continue
		}
		if option < 0 || option >= len(s.Questions[i].Options) {
			return ErrOptionOutOfRange
		}
		opt := option
		s.Answers[i].Selected = &opt
		return nil
	}
	return nil
}

// ToggleMark flips the marked-for-review flag for the given question
// and returns the new flag value. Toggling twice restores the prior
// state. Unknown question ids report false.
func (s *Session) ToggleMark(questionID uuid.UUID) (bool, error) {
	if !s.active {
		return false, ErrNotActive
	}
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			s.Answers[i].Marked = !s.Answers[i].Marked
			return s.Answers[i].Marked, nil
		}
	}
	return false, nil
}

// NavigateTo moves the cursor to the given index. Out-of-range targets
// are rejected rather than stored verbatim.
func (s *Session) NavigateTo(index int) error {
	if !s.active {
		return ErrNotActive
	}
	if index < 0 || index >= len(s.Questions) {
		return ErrIndexOutOfRange
	}
	s.Current = index
	return nil
}

// Next advances the cursor by one, clamping at the last question. No
// wraparound.
func (s *Session) Next() {
	if !s.active {
		return
	}
	if s.Current < len(s.Questions)-1 {
		s.Current++
	}
}

// Prev moves the cursor back by one, clamping at zero. No wraparound.
func (s *Session) Prev() {
	if !s.active {
		return
	}
	if s.Current > 0 {
		s.Current--
	}
}

// Tick is the entry point for the external timer collaborator: it
// burns one second from the remaining-time budget, accrues that second
// onto the current question's answer record, and ends the session when
// the budget reaches zero. Returns true if this tick ended the session.
func (s *Session) Tick() bool {
	if !s.active {
		return false
	}
	if s.Current >= 0 && s.Current < len(s.Answers) {
		s.Answers[s.Current].TimeSpentSec++
	}
	if s.RemainingSec > 0 {
		s.RemainingSec--
	}
	if s.RemainingSec <= 0 {
		s.End()
		return true
	}
	return false
}

// CurrentQuestion returns the question under the cursor, or nil for an
// empty session.
func (s *Session) CurrentQuestion() *model.Question {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Current]
}

// AnsweredCount returns how many questions have a selected option.
func (s *Session) AnsweredCount() int {
	n := 0
	for i := range s.Answers {
		if s.Answers[i].Answered() {
			n++
		}
	}
	return n
}
