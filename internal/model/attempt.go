package model

import (
	"time"
)

// AptitudeAttempt is one test-taking session. Exactly one IN_PROGRESS
// attempt may exist per user; the partial unique index created at
// migration time closes the concurrent-start race.
type AptitudeAttempt struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	// Configuration. Nil category/difficulty means mixed.
	Category   *AptitudeCategory `gorm:"type:varchar(30)" json:"category,omitempty"`
	Difficulty *DifficultyLevel  `gorm:"type:varchar(10)" json:"difficulty,omitempty"`
	Mode       AptitudeMode      `gorm:"type:varchar(15);not null;default:'PRACTICE'" json:"mode"`
	Status     AttemptStatus     `gorm:"type:varchar(15);not null;default:'IN_PROGRESS'" json:"status"`

	TotalQuestions int `gorm:"not null" json:"total_questions"`
	CorrectAnswers int `gorm:"not null;default:0" json:"correct_answers"`
	WrongAnswers   int `gorm:"not null;default:0" json:"wrong_answers"`
	Skipped        int `gorm:"not null;default:0" json:"skipped"`

	Score            float64 `gorm:"not null;default:0" json:"score"`
	TimeTakenSeconds int     `gorm:"not null;default:0" json:"time_taken_seconds"`

	// Composition frozen at start.
	QuestionRefs       QuestionRefList      `gorm:"type:jsonb" json:"question_refs,omitempty"`
	OptionOrders       OptionOrderMap       `gorm:"type:jsonb" json:"-"`
	GeneratedQuestions GeneratedQuestionMap `gorm:"type:jsonb" json:"-"`

	// Progress while IN_PROGRESS; Results set once at submission.
	Answers AnswerMap `gorm:"type:jsonb" json:"-"`
	Results ResultMap `gorm:"type:jsonb" json:"-"`

	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Details []AptitudeAttemptDetail `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AptitudeAttempt) TableName() string { return "aptitude_attempts" }

func (a *AptitudeAttempt) Completed() bool {
	return a.Status == AttemptCompleted || a.CompletedAt != nil
}
