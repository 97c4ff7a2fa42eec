package dto

import (
	"time"
)

// OptionView is one answer option in its presented position. Keys stay
// canonical; only the ordering is randomized per attempt.
type OptionView struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// StartAssessmentRequest starts a new attempt. Mode defaults to
// PRACTICE; ResumeQuestionCount overrides the generated-question quota.
type StartAssessmentRequest struct {
	UserID              string   `json:"user_id" binding:"required,uuid"`
	Category            *string  `json:"category,omitempty" binding:"omitempty,oneof=QUANTITATIVE LOGICAL VERBAL TECHNICAL DATA_INTERPRETATION"`
	Difficulty          *string  `json:"difficulty,omitempty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	Count               int      `json:"count" binding:"required,min=5,max=50"`
	Mode                string   `json:"mode" binding:"omitempty,oneof=PRACTICE TEST RESUME_ONLY"`
	ResumeQuestionCount *int     `json:"resume_question_count,omitempty"`
	ExcludeCategories   []string `json:"exclude_categories,omitempty"`
}

// AutoSaveAssessmentRequest carries a partial answer map:
// question ref -> selected option key (nil clears the selection).
type AutoSaveAssessmentRequest struct {
	UserID      string             `json:"user_id" binding:"required,uuid"`
	UserAnswers map[string]*string `json:"user_answers" binding:"required"`
}

// SubmitAssessmentRequest finalizes an attempt. TimeTakenSeconds is
// accepted for diagnostics but never trusted; the server measures
// elapsed time itself.
type SubmitAssessmentRequest struct {
	UserID           string             `json:"user_id" binding:"required,uuid"`
	UserAnswers      map[string]*string `json:"user_answers"`
	TimeTakenSeconds int                `json:"time_taken_seconds" binding:"min=0"`
}

// QuestionBrief is a question as shown to the test runner. The correct
// option is never included.
type QuestionBrief struct {
	ID               string       `json:"id"`
	QuestionText     string       `json:"question_text"`
	Options          []OptionView `json:"options"`
	Category         string       `json:"category"`
	Difficulty       string       `json:"difficulty"`
	SubTopic         *string      `json:"sub_topic,omitempty"`
	Marks            int          `json:"marks"`
	TimeLimitSeconds *int         `json:"time_limit_seconds,omitempty"`
}

// AssessmentStartResponse is returned when an attempt is initialized.
type AssessmentStartResponse struct {
	AttemptID      string          `json:"attempt_id"`
	Questions      []QuestionBrief `json:"questions"`
	TotalQuestions int             `json:"total_questions"`
	StartedAt      time.Time       `json:"started_at"`
	Mode           string          `json:"mode"`
	Category       *string         `json:"category,omitempty"`
	Difficulty     *string         `json:"difficulty,omitempty"`
}

// ActiveAssessmentResponse resumes an in-progress attempt with the
// previously saved answers.
type ActiveAssessmentResponse struct {
	AttemptID      string             `json:"attempt_id"`
	Questions      []QuestionBrief    `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
	StartedAt      time.Time          `json:"started_at"`
	Mode           string             `json:"mode"`
	Category       *string            `json:"category,omitempty"`
	Difficulty     *string            `json:"difficulty,omitempty"`
	UserAnswers    map[string]*string `json:"user_answers"`
}

// AttemptSummary is brief attempt info for lists and the submit
// response.
type AttemptSummary struct {
	ID               string     `json:"id"`
	Category         *string    `json:"category,omitempty"`
	Difficulty       *string    `json:"difficulty,omitempty"`
	Mode             string     `json:"mode"`
	Status           string     `json:"status"`
	TotalQuestions   int        `json:"total_questions"`
	CorrectAnswers   int        `json:"correct_answers"`
	WrongAnswers     int        `json:"wrong_answers"`
	Skipped          int        `json:"skipped"`
	Score            float64    `json:"score"`
	TimeTakenSeconds int        `json:"time_taken_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// DetailedAnswer is one question in an attempt review, with options in
// the order the student saw them.
type DetailedAnswer struct {
	ID             string       `json:"id"`
	QuestionText   string       `json:"question_text"`
	Options        []OptionView `json:"options"`
	CorrectOption  string       `json:"correct_option"`
	SelectedOption *string      `json:"selected_option,omitempty"`
	IsCorrect      bool         `json:"is_correct"`
	Explanation    *string      `json:"explanation,omitempty"`
	Generated      bool         `json:"generated"`
	Marks          int          `json:"marks"`
	Category       string       `json:"category"`
}

// AttemptDetailResponse is the full review of a completed attempt.
type AttemptDetailResponse struct {
	AttemptSummary
	UserID          string           `json:"user_id"`
	DetailedAnswers []DetailedAnswer `json:"detailed_answers"`
}

// TopicAnalysisItem is category-level accuracy for the dashboard.
type TopicAnalysisItem struct {
	Category string  `json:"category"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// StudentAptitudeDashboard is the student's performance overview.
type StudentAptitudeDashboard struct {
	TotalAttempts int64               `json:"total_attempts"`
	AverageScore  float64             `json:"average_score"`
	BestScore     float64             `json:"best_score"`
	TopicAnalysis []TopicAnalysisItem `json:"topic_analysis"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
