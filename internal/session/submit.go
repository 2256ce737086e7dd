package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/edumetrics/assess-backend/internal/model"
)

// ResultStore persists submission rows. One batch write covers all
// subjects of a session; implementations decide their own timeout and
// retry policy, the submitter has none.
type ResultStore interface {
	InsertBatch(ctx context.Context, results []model.TestResult) error
}

// Submitter packages a finished session into per-subject result rows
// and persists them.
type Submitter struct {
	store ResultStore
}

// NewSubmitter creates a Submitter backed by the given store.
func NewSubmitter(store ResultStore) *Submitter {
	return &Submitter{store: store}
}

// Submit scores the session, builds one TestResult per subject present
// in its question set and writes them in a single batch.
//
// A nil identity or an identity without an email fails with
// ErrAuthRequired before anything is built. A store failure propagates
// to the caller and leaves the session active so it may retry. Only a
// successful write ends the session.
func (s *Submitter) Submit(ctx context.Context, identity *model.Identity, sess *Session) ([]model.TestResult, error) {
	if identity == nil || identity.Email == "" {
		return nil, ErrAuthRequired
	}

	duration := 0
	if !sess.StartedAt.IsZero() {
		duration = int(time.Since(sess.StartedAt).Seconds())
	}

	scores := ScoreBySubject(sess.Questions, sess.Answers)

	// Subjects ordered by first appearance in the question sequence
	// so the batch is deterministic.
	var subjects []string
	seen := make(map[string]bool)
	for i := range sess.Questions {
		if !seen[sess.Questions[i].Subject] {
			seen[sess.Questions[i].Subject] = true
			subjects = append(subjects, sess.Questions[i].Subject)
		}
	}

	results := make([]model.TestResult, 0, len(subjects))
	for _, subject := range subjects {
		var qs []model.Question
		var as []model.AnswerRecord
		for i := range sess.Questions {
			if sess.Questions[i].Subject == subject {
				qs = append(qs, sess.Questions[i])
				as = append(as, sess.Answers[i])
			}
		}

		qsRaw, err := json.Marshal(qs)
		if err != nil {
			return nil, fmt.Errorf("marshal questions: %w", err)
		}
		asRaw, err := json.Marshal(as)
		if err != nil {
			return nil, fmt.Errorf("marshal answers: %w", err)
		}

		results = append(results, model.TestResult{
			Email:           identity.Email,
			TestTime:        sess.StartedAt,
			Subject:         subject,
			Questions:       qsRaw,
			Answers:         asRaw,
			Score:           scores[subject].Percentage,
			DurationSeconds: duration,
		})
	}

	if err := s.store.InsertBatch(ctx, results); err != nil {
		return nil, fmt.Errorf("persist results: %w", err)
	}

	sess.End()
	return results, nil
}
