package session

import (
	"math"

	"github.com/edumetrics/assess-backend/internal/model"
)

// ScoreBySubject partitions the positionally-aligned question and
// answer sequences by subject and computes correct/total/percentage per
// subject. Pure function of its inputs: no side effects, no I/O.
//
// An unanswered record (nil selection) never counts as correct. Only
// subjects actually present in the question set produce an entry.
func ScoreBySubject(questions []model.Question, answers []model.AnswerRecord) map[string]model.SubjectScore {
	scores := make(map[string]model.SubjectScore)

	for i := range questions {
		sc := scores[questions[i].Subject]
		sc.Total++
		if i < len(answers) && answers[i].Selected != nil &&
			*answers[i].Selected == questions[i].CorrectIndex {
			sc.Correct++
		}
		scores[questions[i].Subject] = sc
	}

	for subject, sc := range scores {
		if sc.Total > 0 {
			sc.Percentage = int(math.Round(100 * float64(sc.Correct) / float64(sc.Total)))
		}
		scores[subject] = sc
	}

	return scores
}
