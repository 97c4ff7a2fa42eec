package service

import (
	"github.com/placeprep/backend/internal/model"
)

// DefaultQuestionTimeLimitSeconds is applied in timed modes to any
// question without an explicit limit.
const DefaultQuestionTimeLimitSeconds = 60

// IsTimedMode reports whether per-question time budgets are enforced.
func IsTimedMode(mode model.AptitudeMode) bool {
	return mode == model.ModeTest || mode == model.ModeResumeOnly
}

// EffectiveTimeLimit resolves a question's limit: timed modes default
// missing limits to DefaultQuestionTimeLimitSeconds, untimed modes
// leave them as-is.
func EffectiveTimeLimit(rawLimit *int, timed bool) *int {
	if rawLimit == nil && timed {
		limit := DefaultQuestionTimeLimitSeconds
		return &limit
	}
	return rawLimit
}

// questionLookup resolves a question ref to its time limit. The attempt
// service backs this with the bank repository and the attempt's
// embedded generated questions.
type questionLookup func(ref model.QuestionRef) *int

// BuildDeadlines computes the cumulative per-question deadline schedule
// in the attempt's frozen presentation order: question k's deadline is
// the running sum of effective limits of questions 1..k. A nil entry
// means the question is not deadline-bound. Untimed modes never
// schedule; a question's explicit limit is advisory display there, so
// every entry comes back nil and no answer is ever rejected on time.
func BuildDeadlines(refs model.QuestionRefList, mode model.AptitudeMode, limitOf questionLookup) map[model.QuestionRef]*int {
	deadlines := make(map[model.QuestionRef]*int, len(refs))
	if !IsTimedMode(mode) {
		for _, ref := range refs {
			deadlines[ref] = nil
		}
		return deadlines
	}
	elapsed := 0
	for _, ref := range refs {
		limit := EffectiveTimeLimit(limitOf(ref), true)
		if limit == nil || *limit <= 0 {
			deadlines[ref] = nil
			continue
		}
		elapsed += *limit
		deadline := elapsed
		deadlines[ref] = &deadline
	}
	return deadlines
}

// MaxDeadline returns the largest scheduled deadline, or 0 when the
// attempt has no deadline-bound question.
func MaxDeadline(deadlines map[model.QuestionRef]*int) int {
	max := 0
	for _, d := range deadlines {
		if d != nil && *d > max {
			max = *d
		}
	}
	return max
}
