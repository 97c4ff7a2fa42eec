package dto

import (
	"time"
)

// CreateQuestionRequest is the admin payload for authoring a bank
// question. Options must carry the four canonical keys.
type CreateQuestionRequest struct {
	Category         string            `json:"category" binding:"required,oneof=QUANTITATIVE LOGICAL VERBAL TECHNICAL DATA_INTERPRETATION"`
	Difficulty       string            `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	QuestionText     string            `json:"question_text" binding:"required"`
	Options          map[string]string `json:"options" binding:"required"`
	CorrectOption    string            `json:"correct_option" binding:"required,oneof=A B C D"`
	Explanation      *string           `json:"explanation,omitempty"`
	SubTopic         *string           `json:"sub_topic,omitempty"`
	RoleTag          *string           `json:"role_tag,omitempty"`
	Marks            int               `json:"marks" binding:"omitempty,min=1,max=10"`
	TimeLimitSeconds *int              `json:"time_limit_seconds,omitempty" binding:"omitempty,min=10,max=600"`
}

// UpdateQuestionRequest mirrors CreateQuestionRequest; all fields are
// optional and only supplied fields change.
type UpdateQuestionRequest struct {
	Category         *string           `json:"category,omitempty" binding:"omitempty,oneof=QUANTITATIVE LOGICAL VERBAL TECHNICAL DATA_INTERPRETATION"`
	Difficulty       *string           `json:"difficulty,omitempty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	QuestionText     *string           `json:"question_text,omitempty"`
	Options          map[string]string `json:"options,omitempty"`
	CorrectOption    *string           `json:"correct_option,omitempty" binding:"omitempty,oneof=A B C D"`
	Explanation      *string           `json:"explanation,omitempty"`
	SubTopic         *string           `json:"sub_topic,omitempty"`
	Marks            *int              `json:"marks,omitempty" binding:"omitempty,min=1,max=10"`
	TimeLimitSeconds *int              `json:"time_limit_seconds,omitempty" binding:"omitempty,min=10,max=600"`
}

// ReviewQuestionRequest approves or rejects a pending question.
type ReviewQuestionRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required,uuid"`
	Approve    bool   `json:"approve"`
}

// QuestionResponse is the admin-facing view of a bank question,
// including the correct option.
type QuestionResponse struct {
	ID               string            `json:"id"`
	Category         string            `json:"category"`
	Difficulty       string            `json:"difficulty"`
	QuestionText     string            `json:"question_text"`
	Options          map[string]string `json:"options"`
	CorrectOption    string            `json:"correct_option"`
	Explanation      *string           `json:"explanation,omitempty"`
	SubTopic         *string           `json:"sub_topic,omitempty"`
	RoleTag          *string           `json:"role_tag,omitempty"`
	Marks            int               `json:"marks"`
	TimeLimitSeconds *int              `json:"time_limit_seconds,omitempty"`
	Status           string            `json:"status"`
	ApprovalStatus   string            `json:"approval_status"`
	VersionNumber    int               `json:"version_number"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// QuestionListResponse is a paginated question listing.
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
