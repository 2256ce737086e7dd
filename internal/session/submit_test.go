package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/edumetrics/assess-backend/internal/model"
)

type fakeStore struct {
	inserted [][]model.TestResult
	err      error
}

func (f *fakeStore) InsertBatch(_ context.Context, results []model.TestResult) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, results)
	return nil
}

func startMixedSession(t *testing.T) *Session {
	t.Helper()
	qs := append(makeQuestions(3, "Mathematics"), makeQuestions(3, "Physics")...)
	return mustStart(t, &staticSource{questions: qs}, Config{PoolLimit: 10, Size: 6, DurationSec: 600})
}

func TestSubmitRequiresIdentity(t *testing.T) {
	store := &fakeStore{}
	sub := NewSubmitter(store)

	tests := []struct {
		name     string
		identity *model.Identity
	}{
		{"nil identity", nil},
		{"empty email", &model.Identity{Name: "anonymous"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := startMixedSession(t)
			_, err := sub.Submit(context.Background(), tc.identity, sess)
			if !errors.Is(err, ErrAuthRequired) {
				t.Fatalf("err = %v, want ErrAuthRequired", err)
			}
			if !sess.IsActive() {
				t.Fatal("failed submit must leave the session active")
			}
			if len(store.inserted) != 0 {
				t.Fatal("no rows may be written without an identity")
			}
		})
	}
}

func TestSubmitPersistenceFailureLeavesSessionActive(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	sub := NewSubmitter(store)
	sess := startMixedSession(t)

	_, err := sub.Submit(context.Background(), &model.Identity{Email: "u@example.com"}, sess)
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if errors.Is(err, ErrAuthRequired) {
		t.Fatalf("wrong error kind: %v", err)
	}
	if !sess.IsActive() {
		t.Fatal("session must stay active so the caller can retry")
	}
}

func TestSubmitBuildsOneResultPerSubject(t *testing.T) {
	store := &fakeStore{}
	sub := NewSubmitter(store)
	sess := startMixedSession(t)

	// Answer every question with its correct option.
	for i := range sess.Questions {
		if err := sess.SelectAnswer(sess.Questions[i].ID, sess.Questions[i].CorrectIndex); err != nil {
			t.Fatalf("SelectAnswer: %v", err)
		}
	}

	results, err := sub.Submit(context.Background(), &model.Identity{Email: "u@example.com"}, sess)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sess.IsActive() {
		t.Fatal("successful submit must end the session")
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected a single batch write, got %d", len(store.inserted))
	}

	bySubject := make(map[string]model.TestResult)
	for _, r := range results {
		bySubject[r.Subject] = r
	}
	if len(bySubject) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(bySubject))
	}

	total := 0
	for subject, r := range bySubject {
		if r.Email != "u@example.com" {
			t.Errorf("%s: email = %q", subject, r.Email)
		}
		if r.Score != 100 {
			t.Errorf("%s: score = %d, want 100", subject, r.Score)
		}
		if !r.TestTime.Equal(sess.StartedAt) {
			t.Errorf("%s: test time mismatch", subject)
		}
		if r.DurationSeconds < 0 {
			t.Errorf("%s: negative duration %d", subject, r.DurationSeconds)
		}

		var qs []model.Question
		var as []model.AnswerRecord
		if err := json.Unmarshal(r.Questions, &qs); err != nil {
			t.Fatalf("%s: questions snapshot: %v", subject, err)
		}
		if err := json.Unmarshal(r.Answers, &as); err != nil {
			t.Fatalf("%s: answers snapshot: %v", subject, err)
		}
		if len(qs) != len(as) {
			t.Fatalf("%s: snapshot misaligned: %d vs %d", subject, len(qs), len(as))
		}
		for i := range qs {
			if qs[i].Subject != subject {
				t.Errorf("%s: snapshot contains foreign subject %q", subject, qs[i].Subject)
			}
			if as[i].QuestionID != qs[i].ID {
				t.Errorf("%s: snapshot answer %d misaligned", subject, i)
			}
		}
		total += len(qs)
	}
	if total != len(sess.Questions) {
		t.Fatalf("snapshots cover %d questions, want %d", total, len(sess.Questions))
	}
}

func TestSubmitZeroStartTimeYieldsZeroDuration(t *testing.T) {
	store := &fakeStore{}
	sub := NewSubmitter(store)

	sess := &Session{
		Questions: makeQuestions(2, "Mathematics"),
		active:    true,
	}
	sess.Answers = make([]model.AnswerRecord, len(sess.Questions))
	for i := range sess.Questions {
		sess.Answers[i].QuestionID = sess.Questions[i].ID
	}

	results, err := sub.Submit(context.Background(), &model.Identity{Email: "u@example.com"}, sess)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	for _, r := range results {
		if r.DurationSeconds != 0 {
			t.Fatalf("duration = %d, want 0 for absent start time", r.DurationSeconds)
		}
	}
}
