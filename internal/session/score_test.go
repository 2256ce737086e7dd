package session

import (
	"testing"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func TestScoreBySubject(t *testing.T) {
	q := func(subject string, correct int) model.Question {
		return model.Question{
			ID:           uuid.New(),
			Subject:      subject,
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: correct,
		}
	}

	tests := []struct {
		name      string
		questions []model.Question
		answers   []model.AnswerRecord
		want      map[string]model.SubjectScore
	}{
		{
			name:      "half correct single subject",
			questions: []model.Question{q("Math", 0), q("Math", 1)},
			answers: []model.AnswerRecord{
				{Selected: intPtr(0)},
				{Selected: intPtr(0)},
			},
			want: map[string]model.SubjectScore{
				"Math": {Correct: 1, Total: 2, Percentage: 50},
			},
		},
		{
			name:      "unanswered never counts as correct",
			questions: []model.Question{q("Math", 0)},
			answers:   []model.AnswerRecord{{Selected: nil}},
			want: map[string]model.SubjectScore{
				"Math": {Correct: 0, Total: 1, Percentage: 0},
			},
		},
		{
			name:      "multiple subjects partitioned",
			questions: []model.Question{q("Math", 1), q("Physics", 2), q("Physics", 3)},
			answers: []model.AnswerRecord{
				{Selected: intPtr(1)},
				{Selected: intPtr(2)},
				{Selected: intPtr(0)},
			},
			want: map[string]model.SubjectScore{
				"Math":    {Correct: 1, Total: 1, Percentage: 100},
				"Physics": {Correct: 1, Total: 2, Percentage: 50},
			},
		},
		{
			name:      "percentage rounds to nearest",
			questions: []model.Question{q("Math", 0), q("Math", 0), q("Math", 0)},
			answers: []model.AnswerRecord{
				{Selected: intPtr(0)},
				{Selected: intPtr(1)},
				{Selected: intPtr(1)},
			},
			want: map[string]model.SubjectScore{
				"Math": {Correct: 1, Total: 3, Percentage: 33},
			},
		},
		{
			name:      "empty session scores nothing",
			questions: nil,
			answers:   nil,
			want:      map[string]model.SubjectScore{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreBySubject(tc.questions, tc.answers)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d subjects, want %d: %v", len(got), len(tc.want), got)
			}
			for subject, want := range tc.want {
				if got[subject] != want {
					t.Errorf("%s: got %+v, want %+v", subject, got[subject], want)
				}
			}
		})
	}
}

func TestScoreOnlyPresentSubjectsAppear(t *testing.T) {
	questions := []model.Question{
		{ID: uuid.New(), Subject: "Biology", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
	}
	answers := []model.AnswerRecord{{Selected: intPtr(0)}}

	got := ScoreBySubject(questions, answers)
	if _, ok := got["Chemistry"]; ok {
		t.Fatal("absent subject produced a score entry")
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one subject, got %v", got)
	}
}
