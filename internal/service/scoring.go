package service

import (
	"math"
	"strings"

	"github.com/placeprep/backend/internal/model"
)

// CanonicalQuestion is the uniform server-side shape of a question,
// whether bank-sourced or generated.
type CanonicalQuestion struct {
	Text             string
	Options          model.OptionMap
	CorrectOption    string
	Explanation      *string
	Category         string
	Difficulty       model.DifficultyLevel
	SubTopic         *string
	Marks            int
	TimeLimitSeconds *int
}

// ScoredQuestion is the outcome for a single question reference.
type ScoredQuestion struct {
	Ref           model.QuestionRef
	Selected      *string
	IsCorrect     bool
	CorrectOption string
	Category      string
	Marks         int
}

// ScoreSummary is the result of scoring one attempt.
type ScoreSummary struct {
	Correct     int
	Wrong       int
	Skipped     int
	EarnedMarks int
	TotalMarks  int
	Score       float64
	Results     []ScoredQuestion
}

// ScoreAttempt evaluates merged answers against canonical correct
// options in the attempt's frozen order. It is a pure function of its
// inputs: identical refs and answers always yield the identical
// summary, so results are replayable for audit. Refs that resolve to
// no question are skipped entirely.
func ScoreAttempt(
	refs model.QuestionRefList,
	resolve func(ref model.QuestionRef) (*CanonicalQuestion, bool),
	answers map[model.QuestionRef]*string,
) ScoreSummary {
	var summary ScoreSummary
	for _, ref := range refs {
		question, ok := resolve(ref)
		if !ok {
			continue
		}
		marks := question.Marks
		if marks <= 0 {
			marks = 1
		}
		summary.TotalMarks += marks

		result := ScoredQuestion{
			Ref:           ref,
			CorrectOption: question.CorrectOption,
			Category:      question.Category,
			Marks:         marks,
		}
		selected := answers[ref]
		if selected != nil && *selected != "" {
			result.Selected = selected
			if strings.EqualFold(*selected, question.CorrectOption) {
				result.IsCorrect = true
				summary.Correct++
				summary.EarnedMarks += marks
			} else {
				summary.Wrong++
			}
		} else {
			summary.Skipped++
		}
		summary.Results = append(summary.Results, result)
	}

	if summary.TotalMarks > 0 {
		raw := float64(summary.EarnedMarks) / float64(summary.TotalMarks) * 100
		summary.Score = math.Round(raw*10) / 10
	}
	return summary
}
