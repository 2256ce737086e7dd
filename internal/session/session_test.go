package session

import (
	"context"
	"errors"
	"testing"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/google/uuid"
)

type staticSource struct {
	questions []model.Question
	err       error
}

func (s *staticSource) Fetch(_ context.Context, limit int) ([]model.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.questions) > limit {
		return s.questions[:limit], nil
	}
	return s.questions, nil
}

func makeQuestions(n int, subject string) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			ID:           uuid.New(),
			Subject:      subject,
			Prompt:       "prompt",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
			Difficulty:   model.DifficultyEasy,
		}
	}
	return qs
}

func mustStart(t *testing.T, src QuestionSource, cfg Config) *Session {
	t.Helper()
	sess, err := Start(context.Background(), src, cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return sess
}

func assertAligned(t *testing.T, sess *Session) {
	t.Helper()
	if len(sess.Answers) != len(sess.Questions) {
		t.Fatalf("answers/questions length mismatch: %d vs %d", len(sess.Answers), len(sess.Questions))
	}
	for i := range sess.Questions {
		if sess.Answers[i].QuestionID != sess.Questions[i].ID {
			t.Fatalf("answer %d misaligned: %s vs %s", i, sess.Answers[i].QuestionID, sess.Questions[i].ID)
		}
	}
}

func TestStartBuildsAlignedSession(t *testing.T) {
	src := &staticSource{questions: makeQuestions(20, "Mathematics")}
	sess := mustStart(t, src, Config{Size: 6, DurationSec: 600})

	if !sess.IsActive() {
		t.Fatal("session should be active after start")
	}
	if len(sess.Questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(sess.Questions))
	}
	if sess.Current != 0 {
		t.Fatalf("cursor should start at 0, got %d", sess.Current)
	}
	if sess.RemainingSec != 600 {
		t.Fatalf("expected full time budget, got %d", sess.RemainingSec)
	}
	if sess.StartedAt.IsZero() {
		t.Fatal("start timestamp not set")
	}
	assertAligned(t, sess)

	for i := range sess.Answers {
		a := sess.Answers[i]
		if a.Selected != nil || a.TimeSpentSec != 0 || a.Marked {
			t.Fatalf("answer %d not at defaults: %+v", i, a)
		}
	}
}

func TestStartFallsBackOnSourceFailure(t *testing.T) {
	tests := []struct {
		name string
		src  QuestionSource
	}{
		{"source error", &staticSource{err: errors.New("store unavailable")}},
		{"empty result", &staticSource{}},
		{"nil source", nil},
		{"all rows malformed", &staticSource{questions: []model.Question{
			{ID: uuid.New(), Subject: "Mathematics", Options: []string{"a", "b"}, CorrectIndex: 0},
		}}},
	}

	fallbackIDs := make(map[uuid.UUID]bool)
	for _, q := range Fallback() {
		fallbackIDs[q.ID] = true
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := mustStart(t, tc.src, Config{Size: 6, DurationSec: 60})
			want := 6
			if len(fallbackIDs) < want {
				want = len(fallbackIDs)
			}
			if len(sess.Questions) != want {
				t.Fatalf("expected %d questions, got %d", want, len(sess.Questions))
			}
			for _, q := range sess.Questions {
				if !fallbackIDs[q.ID] {
					t.Fatalf("question %s not from built-in set", q.ID)
				}
			}
			assertAligned(t, sess)
		})
	}
}

func TestStartSizeClampsToFallbackSize(t *testing.T) {
	sess := mustStart(t, &staticSource{}, Config{Size: 500, DurationSec: 60})
	if len(sess.Questions) != len(Fallback()) {
		t.Fatalf("expected full fallback set (%d), got %d", len(Fallback()), len(sess.Questions))
	}
}

func TestCursorClampsAtBounds(t *testing.T) {
	sess := mustStart(t, &staticSource{questions: makeQuestions(10, "Physics")}, Config{Size: 3, DurationSec: 60})

	for i := 0; i < 10; i++ {
		sess.Prev()
	}
	if sess.Current != 0 {
		t.Fatalf("Prev should clamp at 0, got %d", sess.Current)
	}

	for i := 0; i < 10; i++ {
		sess.Next()
	}
	if sess.Current != len(sess.Questions)-1 {
		t.Fatalf("Next should clamp at last index, got %d", sess.Current)
	}
}

func TestNavigateToRejectsOutOfRange(t *testing.T) {
	sess := mustStart(t, &staticSource{questions: makeQuestions(10, "Physics")}, Config{Size: 4, DurationSec: 60})

	if err := sess.NavigateTo(2); err != nil {
		t.Fatalf("in-range navigate failed: %v", err)
	}
	if sess.Current != 2 {
		t.Fatalf("cursor = %d, want 2", sess.Current)
	}
	if q := sess.CurrentQuestion(); q == nil || q.ID != sess.Questions[2].ID {
		t.Fatal("CurrentQuestion does not follow the cursor")
	}

	for _, idx := range []int{-1, 4, 100} {
		if err := sess.NavigateTo(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("NavigateTo(%d) = %v, want ErrIndexOutOfRange", idx, err)
		}
		if sess.Current != 2 {
			t.Fatalf("cursor moved on rejected navigate: %d", sess.Current)
		}
	}
}

func TestSelectAnswer(t *testing.T) {
	sess := mustStart(t, &staticSource{questions: makeQuestions(10, "Chemistry")}, Config{Size: 4, DurationSec: 60})
	qid := sess.Questions[1].ID

	if err := sess.SelectAnswer(qid, 3); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if sess.Answers[1].Selected == nil || *sess.Answers[1].Selected != 3 {
		t.Fatalf("selection not recorded: %+v", sess.Answers[1])
	}

	// Out-of-range option indexes are rejected.
	for _, opt := range []int{-1, 4} {
		if err := sess.SelectAnswer(qid, opt); !errors.Is(err, ErrOptionOutOfRange) {
			t.Fatalf("SelectAnswer(%d) = %v, want ErrOptionOutOfRange", opt, err)
		}
	}
	if *sess.Answers[1].Selected != 3 {
		t.Fatal("rejected select mutated the record")
	}

	// Unknown question id is a silent no-op.
	if err := sess.SelectAnswer(uuid.New(), 0); err != nil {
		t.Fatalf("unknown id should be a no-op, got %v", err)
	}
	assertAligned(t, sess)
}

func TestToggleMarkDoubleToggleRestores(t *testing.T) {
	sess := mustStart(t, &staticSource{questions: makeQuestions(10, "Biology")}, Config{Size: 4, DurationSec: 60})
	qid := sess.Questions[2].ID

	marked, err := sess.ToggleMark(qid)
	if err != nil || !marked {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", marked, err)
	}
	marked, err = sess.ToggleMark(qid)
	if err != nil || marked {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", marked, err)
	}
}

func TestTickCountsDownAndEndsAtZero(t *testing.T) {
	sess := mustStart(t, &staticSource{questions: makeQuestions(10, "Physics")}, Config{Size: 2, DurationSec: 3})
	sess.Next()

	if ended := sess.Tick(); ended {
		t.Fatal("ended too early")
	}
	if sess.RemainingSec != 2 {
		t.Fatalf("remaining = %d, want 2", sess.RemainingSec)
	}
	if sess.Answers[1].TimeSpentSec != 1 {
		t.Fatalf("time not accrued on current question: %+v", sess.Answers[1])
	}

	sess.Tick()
	if ended := sess.Tick(); !ended {
		t.Fatal("expected session to end at zero")
	}
	if sess.IsActive() {
		t.Fatal("session still active after countdown expired")
	}

	// Ticking an ended session is a no-op.
	if ended := sess.Tick(); ended {
		t.Fatal("tick on inactive session reported end")
	}
}

func TestMutationsRejectedWhenInactive(t *testing.T) {
	sess := mustStart(t, &staticSource{questions: makeQuestions(10, "Physics")}, Config{Size: 3, DurationSec: 60})
	qid := sess.Questions[0].ID
	sess.NavigateTo(1)
	sess.End()

	if err := sess.SelectAnswer(qid, 0); !errors.Is(err, ErrNotActive) {
		t.Fatalf("SelectAnswer on ended session = %v, want ErrNotActive", err)
	}
	if _, err := sess.ToggleMark(qid); !errors.Is(err, ErrNotActive) {
		t.Fatalf("ToggleMark on ended session = %v, want ErrNotActive", err)
	}
	if err := sess.NavigateTo(0); !errors.Is(err, ErrNotActive) {
		t.Fatalf("NavigateTo on ended session = %v, want ErrNotActive", err)
	}
	sess.Next()
	sess.Prev()

	// End leaves everything in place for post-mortem inspection.
	if sess.Current != 1 || len(sess.Questions) != 3 || len(sess.Answers) != 3 {
		t.Fatalf("ended session state disturbed: cursor=%d questions=%d answers=%d",
			sess.Current, len(sess.Questions), len(sess.Answers))
	}
}

func TestFallbackSetIsWellFormed(t *testing.T) {
	fb := Fallback()
	if len(fb) == 0 {
		t.Fatal("fallback set is empty")
	}
	ids := make(map[uuid.UUID]bool)
	subjects := make(map[string]bool)
	for _, q := range fb {
		if !q.Valid() {
			t.Fatalf("malformed fallback question %s", q.ID)
		}
		if ids[q.ID] {
			t.Fatalf("duplicate fallback id %s", q.ID)
		}
		ids[q.ID] = true
		subjects[q.Subject] = true
	}
	if len(subjects) < 2 {
		t.Fatalf("fallback should span multiple subjects, got %d", len(subjects))
	}

	// Mutating the returned copy must not leak into the package set.
	fb[0].Options[0] = "mutated"
	if Fallback()[0].Options[0] == "mutated" {
		t.Fatal("Fallback returned a shared options slice")
	}
}
