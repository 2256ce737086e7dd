package session

import (
	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/google/uuid"
)

// fallbackSet is the built-in question pool used when the remote store
// is unavailable. It spans the same subjects as the seeded question
// bank. IDs are fixed so answer records stay stable across restarts.
var fallbackSet = []model.Question{
	{
		ID:           uuid.MustParse("0b38eb5c-1f68-4587-a101-fcb84566a1c1"),
		Subject:      "Mathematics",
		Prompt:       "What is the value of 7 × 8?",
		Options:      []string{"54", "56", "63", "64"},
		CorrectIndex: 1,
		Difficulty:   model.DifficultyEasy,
	},
	{
		ID:           uuid.MustParse("3d7c39c4-30a2-40a8-9cf0-1e01e52664d0"),
		Subject:      "Mathematics",
		Prompt:       "Solve for x: 2x + 6 = 14.",
		Options:      []string{"2", "3", "4", "5"},
		CorrectIndex: 2,
		Difficulty:   model.DifficultyMedium,
	},
	{
		ID:           uuid.MustParse("b0f0077c-23a9-44d9-b5a1-6e0fcbf4c4e2"),
		Subject:      "Mathematics",
		Prompt:       "What is the derivative of x² with respect to x?",
		Options:      []string{"x", "2x", "x²", "2"},
		CorrectIndex: 1,
		Difficulty:   model.DifficultyHard,
	},
	{
		ID:           uuid.MustParse("8a3a1f5e-9b1d-4b62-a86e-2f08c3f15f1a"),
		Subject:      "Physics",
		Prompt:       "What is the SI unit of force?",
		Options:      []string{"Joule", "Pascal", "Newton", "Watt"},
		CorrectIndex: 2,
		Difficulty:   model.DifficultyEasy,
	},
	{
		ID:           uuid.MustParse("5d2b7c81-45cd-4a10-9f6a-70a1f7e20dbb"),
		Subject:      "Physics",
		Prompt:       "A body moving at constant velocity has what net force acting on it?",
		Options:      []string{"Zero", "Constant non-zero", "Increasing", "Equal to its weight"},
		CorrectIndex: 0,
		Difficulty:   model.DifficultyMedium,
	},
	{
		ID:           uuid.MustParse("e9c4b7aa-63b5-4f3d-8417-9a2e61672a54"),
		Subject:      "Physics",
		Prompt:       "Which quantity is conserved in an elastic collision but not in an inelastic one?",
		Options:      []string{"Momentum", "Kinetic energy", "Mass", "Charge"},
		CorrectIndex: 1,
		Difficulty:   model.DifficultyHard,
	},
	{
		ID:           uuid.MustParse("76c5bfb0-2c3d-4be0-bb6d-27f2e9a7a911"),
		Subject:      "Chemistry",
		Prompt:       "What is the chemical symbol for sodium?",
		Options:      []string{"So", "Sd", "Na", "No"},
		CorrectIndex: 2,
		Difficulty:   model.DifficultyEasy,
	},
	{
		ID:           uuid.MustParse("12f9d8a6-8e0f-4d7c-9b32-5a1c3b88e6f3"),
		Subject:      "Chemistry",
		Prompt:       "How many electrons does a neutral carbon atom have?",
		Options:      []string{"4", "6", "8", "12"},
		CorrectIndex: 1,
		Difficulty:   model.DifficultyMedium,
	},
	{
		ID:           uuid.MustParse("ac81e5a9-00d4-4f05-8de2-41b3c2a6b0c7"),
		Subject:      "Chemistry",
		Prompt:       "Which of these is a noble gas?",
		Options:      []string{"Nitrogen", "Oxygen", "Argon", "Chlorine"},
		CorrectIndex: 2,
		Difficulty:   model.DifficultyHard,
	},
	{
		ID:           uuid.MustParse("f3a0c9d2-7b64-4e18-a54d-6c0d9e3f2b85"),
		Subject:      "Biology",
		Prompt:       "What is the powerhouse of the cell?",
		Options:      []string{"Nucleus", "Ribosome", "Mitochondrion", "Golgi apparatus"},
		CorrectIndex: 2,
		Difficulty:   model.DifficultyEasy,
	},
	{
		ID:           uuid.MustParse("64d1b2c5-91ae-4c07-b8f9-3e57a0d41c26"),
		Subject:      "Biology",
		Prompt:       "Which molecule carries genetic information?",
		Options:      []string{"Protein", "DNA", "Lipid", "Glucose"},
		CorrectIndex: 1,
		Difficulty:   model.DifficultyMedium,
	},
	{
		ID:           uuid.MustParse("91b7e0f8-56cd-4da2-a673-8f40b1c92d35"),
		Subject:      "Biology",
		Prompt:       "During which phase of mitosis do chromosomes align at the cell equator?",
		Options:      []string{"Prophase", "Metaphase", "Anaphase", "Telophase"},
		CorrectIndex: 1,
		Difficulty:   model.DifficultyHard,
	},
}

// Fallback returns a fresh copy of the built-in question set so callers
// may shuffle and truncate it without mutating the package state.
func Fallback() []model.Question {
	out := make([]model.Question, len(fallbackSet))
	copy(out, fallbackSet)
	for i := range out {
		opts := make([]string, len(fallbackSet[i].Options))
		copy(opts, fallbackSet[i].Options)
		out[i].Options = opts
	}
	return out
}
