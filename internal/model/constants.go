package model

// AptitudeCategory classifies bank questions. Generated questions use
// CategoryResume.
type AptitudeCategory string

const (
	CategoryQuantitative       AptitudeCategory = "QUANTITATIVE"
	CategoryLogical            AptitudeCategory = "LOGICAL"
	CategoryVerbal             AptitudeCategory = "VERBAL"
	CategoryTechnical          AptitudeCategory = "TECHNICAL"
	CategoryDataInterpretation AptitudeCategory = "DATA_INTERPRETATION"
	CategoryResume             AptitudeCategory = "RESUME"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

// AptitudeMode selects how an attempt is composed and timed.
// PRACTICE is untimed and bank-only; TEST is timed with a minority of
// resume-derived questions; RESUME_ONLY is timed and fully generated.
type AptitudeMode string

const (
	ModePractice   AptitudeMode = "PRACTICE"
	ModeTest       AptitudeMode = "TEST"
	ModeResumeOnly AptitudeMode = "RESUME_ONLY"
)

func (m AptitudeMode) Valid() bool {
	switch m {
	case ModePractice, ModeTest, ModeResumeOnly:
		return true
	}
	return false
}

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptCompleted  AttemptStatus = "COMPLETED"
)

type QuestionStatus string

const (
	QuestionDraft    QuestionStatus = "DRAFT"
	QuestionActive   QuestionStatus = "ACTIVE"
	QuestionArchived QuestionStatus = "ARCHIVED"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)
